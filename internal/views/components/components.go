// Package components holds the small building blocks shared by the pages.
package components

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"alerscan/models"
)

// Tones understood by Notice.
const (
	ToneInfo    = "info"
	ToneSuccess = "success"
	ToneError   = "error"
)

// Notice is a one-line status message shown above a form.
type Notice struct {
	Tone    string
	Message string
}

func (n Notice) Empty() bool {
	return strings.TrimSpace(n.Message) == ""
}

func Success(message string) Notice { return Notice{Tone: ToneSuccess, Message: message} }
func Failure(message string) Notice { return Notice{Tone: ToneError, Message: message} }

func noticeClass(tone string) string {
	switch tone {
	case ToneSuccess:
		return "rounded-md border border-emerald-300 bg-emerald-50 px-4 py-2 text-emerald-800"
	case ToneError:
		return "rounded-md border border-rose-300 bg-rose-50 px-4 py-2 text-rose-800"
	default:
		return "rounded-md border border-sky-300 bg-sky-50 px-4 py-2 text-sky-800"
	}
}

// NoticeBanner renders n, or nothing when it carries no message.
func NoticeBanner(n Notice) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if n.Empty() {
			return nil
		}
		tone := n.Tone
		if tone == "" {
			tone = ToneInfo
		}
		hw := NewWriter(w)
		hw.Rawf(`<div class="%s" role="status" data-tone="%s">`, noticeClass(tone), templ.EscapeString(tone))
		hw.Text(n.Message)
		hw.Raw(`</div>`)
		return hw.Err()
	})
}

func linkState(current, target string) string {
	if current == target {
		return "active"
	}
	return "inactive"
}

// NavLink renders a header link, marked active when current matches path.
func NavLink(label, path, current string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Rawf(`<a href="%s" class="px-3 py-1 text-sm" data-state="%s">`,
			templ.EscapeString(path), linkState(current, path))
		hw.Text(label)
		hw.Raw(`</a>`)
		return hw.Err()
	})
}

// AllergenCheckboxes renders one checkbox per allergen, submitted as "alergenos".
func AllergenCheckboxes(allergens []models.Allergen, selected map[uint]bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<fieldset class="grid gap-2 sm:grid-cols-2"><legend class="text-sm font-medium">Allergens</legend>`)
		if len(allergens) == 0 {
			hw.Raw(`<p class="text-sm text-slate-500">No allergens available.</p>`)
		}
		for _, allergen := range allergens {
			id := strconv.FormatUint(uint64(allergen.ID), 10)
			hw.Raw(`<label class="flex items-center gap-2 text-sm">`)
			hw.Rawf(`<input type="checkbox" name="alergenos" value="%s"`, id)
			if selected[allergen.ID] {
				hw.Raw(` checked`)
			}
			hw.Raw(`>`)
			hw.Rawf(`<span title="%s">`, templ.EscapeString(allergen.String()))
			hw.Text(allergen.Name)
			hw.Raw(`</span></label>`)
		}
		hw.Raw(`</fieldset>`)
		return hw.Err()
	})
}

// Option is a value/label pair for Select.
type Option struct {
	Value uint
	Label string
}

func ProductOptions(products []models.Product) []Option {
	options := make([]Option, 0, len(products))
	for _, p := range products {
		options = append(options, Option{Value: p.ID, Label: p.Name + " (" + p.Lot + ")"})
	}
	return options
}

func AllergenOptions(allergens []models.Allergen) []Option {
	options := make([]Option, 0, len(allergens))
	for _, a := range allergens {
		options = append(options, Option{Value: a.ID, Label: a.Name})
	}
	return options
}

// Select renders a labelled drop-down. A zero selected value picks nothing.
func Select(name, label string, options []Option, selected uint) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<label class="flex flex-col gap-1 text-sm">`)
		hw.Text(label)
		hw.Rawf(`<select name="%s" required class="rounded-md border px-2 py-1">`, templ.EscapeString(name))
		hw.Raw(`<option value="">Choose…</option>`)
		for _, opt := range options {
			hw.Rawf(`<option value="%d"`, opt.Value)
			if selected != 0 && opt.Value == selected {
				hw.Raw(` selected`)
			}
			hw.Raw(`>`)
			hw.Text(opt.Label)
			hw.Raw(`</option>`)
		}
		hw.Raw(`</select></label>`)
		return hw.Err()
	})
}

// ProductCard shows a product with its lot and tagged allergens. The full
// summary is available as the card tooltip.
func ProductCard(product models.Product) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Rawf(`<li class="rounded-md border px-3 py-2" data-product-id="%d" title="%s">`,
			product.ID, templ.EscapeString(product.Summary()))
		hw.Raw(`<p class="font-medium">`)
		hw.Text(product.Name)
		hw.Raw(`</p><p class="text-xs text-slate-500">Lot `)
		hw.Text(product.Lot)
		hw.Raw(`</p><p class="text-sm">`)
		if names := product.AllergenNames(); len(names) > 0 {
			hw.Text(strings.Join(names, ", "))
		} else {
			hw.Raw(`No allergens tagged`)
		}
		hw.Raw(`</p></li>`)
		return hw.Err()
	})
}
