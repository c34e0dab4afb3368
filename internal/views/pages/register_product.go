package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"alerscan/internal/views/components"
	"alerscan/models"
)

// RegisterProductData populates the product registration form. Name, Lot and
// Selected echo a rejected submission back to the user.
type RegisterProductData struct {
	Allergens []models.Allergen
	Name      string
	Lot       string
	Selected  map[uint]bool
	Detected  []string
	Notice    components.Notice
}

// RegisterProduct renders the form used to create a product and tag its allergens.
func RegisterProduct(data RegisterProductData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<section class="space-y-4" data-page="register-product">`)
		hw.Raw(`<h1 class="text-2xl font-semibold">Register a product</h1>`)
		hw.Component(ctx, components.NoticeBanner(data.Notice))
		if len(data.Detected) > 0 {
			hw.Raw(`<p class="text-sm" data-detected>Detected on the label: `)
			hw.Text(strings.Join(data.Detected, ", "))
			hw.Raw(`</p>`)
		}

		hw.Raw(`<form method="post" action="/registrar" enctype="multipart/form-data" hx-post="/registrar" hx-encoding="multipart/form-data" hx-target="#main" class="space-y-3">`)
		hw.Raw(`<label class="flex flex-col gap-1 text-sm">Name`)
		hw.Rawf(`<input type="text" name="nombre" value="%s" required class="rounded-md border px-2 py-1">`, templ.EscapeString(data.Name))
		hw.Raw(`</label>`)
		hw.Raw(`<label class="flex flex-col gap-1 text-sm">Lot`)
		hw.Rawf(`<input type="text" name="lote" value="%s" required class="rounded-md border px-2 py-1">`, templ.EscapeString(data.Lot))
		hw.Raw(`</label>`)
		hw.Component(ctx, components.AllergenCheckboxes(data.Allergens, data.Selected))
		hw.Raw(`<label class="flex flex-col gap-1 text-sm">Label (PDF or text, optional)`)
		hw.Raw(`<input type="file" name="etiqueta" accept=".pdf,.txt,application/pdf,text/plain">`)
		hw.Raw(`<span class="text-xs text-stone-500">Allergens named on the label are tagged automatically.</span>`)
		hw.Raw(`</label>`)
		hw.Raw(`<button type="submit" class="rounded-md bg-stone-900 px-4 py-2 text-white">Register product</button>`)
		hw.Raw(`</form></section>`)
		return hw.Err()
	})
}
