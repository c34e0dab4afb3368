package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"alerscan/internal/views/components"
	"alerscan/models"
)

// ScanResult is the outcome of checking one allergen against one product,
// with the product's summary.
type ScanResult struct {
	Product  string
	Allergen string
	Contains bool
	Summary  string
}

func (r ScanResult) Verdict() string {
	if r.Contains {
		return r.Product + " contains " + r.Allergen + "."
	}
	return r.Product + " does not contain " + r.Allergen + "."
}

// ScanData populates the scan page.
type ScanData struct {
	Products   []models.Product
	Allergens  []models.Allergen
	ProductID  uint
	AllergenID uint
	Result     *ScanResult
	Notice     components.Notice
}

// Scan renders the verification form, the last result and the user's products.
func Scan(data ScanData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<section class="space-y-6" data-page="scan">`)
		hw.Raw(`<h1 class="text-2xl font-semibold">Scan a product</h1>`)
		hw.Component(ctx, components.NoticeBanner(data.Notice))

		if len(data.Products) == 0 {
			hw.Raw(`<p class="text-sm">You have no products yet. <a href="/registrar" class="underline">Register one</a> to start scanning.</p>`)
		} else {
			hw.Raw(`<form method="post" action="/escanear" hx-post="/escanear" hx-target="#main" class="grid gap-3 sm:grid-cols-3 sm:items-end">`)
			hw.Component(ctx, components.Select("producto", "Product", components.ProductOptions(data.Products), data.ProductID))
			hw.Component(ctx, components.Select("alergeno", "Allergen", components.AllergenOptions(data.Allergens), data.AllergenID))
			hw.Raw(`<button type="submit" class="rounded-md bg-stone-900 px-4 py-2 text-white">Check</button>`)
			hw.Raw(`</form>`)
		}

		if data.Result != nil {
			hw.Rawf(`<div class="rounded-md border px-4 py-3" data-result data-contains="%t">`, data.Result.Contains)
			hw.Raw(`<p class="font-medium">`)
			hw.Text(data.Result.Verdict())
			hw.Raw(`</p>`)
			if data.Result.Summary != "" {
				hw.Raw(`<p class="mt-2 whitespace-pre-line text-sm text-slate-600" data-summary>`)
				hw.Text(data.Result.Summary)
				hw.Raw(`</p>`)
			}
			hw.Raw(`</div>`)
		}

		if len(data.Products) > 0 {
			hw.Raw(`<h2 class="text-lg font-semibold">Your products</h2><ul class="space-y-2">`)
			for _, product := range data.Products {
				hw.Component(ctx, components.ProductCard(product))
			}
			hw.Raw(`</ul>`)
		}
		hw.Raw(`</section>`)
		return hw.Err()
	})
}
