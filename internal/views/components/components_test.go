package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"gorm.io/gorm"

	"alerscan/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return buf.String()
}

func TestLinkState(t *testing.T) {
	if got := linkState("/escanear", "/escanear"); got != "active" {
		t.Fatalf("expected active state when paths match, got %q", got)
	}
	if got := linkState("/registrar", "/escanear"); got != "inactive" {
		t.Fatalf("expected inactive state when paths differ, got %q", got)
	}
}

func TestNoticeBanner(t *testing.T) {
	if out := render(t, NoticeBanner(Notice{})); out != "" {
		t.Fatalf("expected empty notice to render nothing, got %q", out)
	}

	out := render(t, NoticeBanner(Failure("Passwords <do not> match.")))
	if !strings.Contains(out, `data-tone="error"`) {
		t.Fatalf("expected error tone: %s", out)
	}
	if !strings.Contains(out, "Passwords &lt;do not&gt; match.") {
		t.Fatalf("expected escaped message: %s", out)
	}

	if noticeClass(ToneSuccess) == noticeClass(ToneError) {
		t.Fatal("expected tones to render differently")
	}
}

func TestAllergenCheckboxesMarksSelection(t *testing.T) {
	allergens := []models.Allergen{
		{Model: gorm.Model{ID: 1}, Name: "Gluten", Description: "Protein found in wheat."},
		{Model: gorm.Model{ID: 3}, Name: "Milk"},
	}
	out := render(t, AllergenCheckboxes(allergens, map[uint]bool{3: true}))
	if !strings.Contains(out, `value="3" checked`) {
		t.Fatalf("expected Milk to be checked: %s", out)
	}
	if strings.Contains(out, `value="1" checked`) {
		t.Fatalf("expected Gluten unchecked: %s", out)
	}
	if !strings.Contains(out, `<span title="Gluten: Protein found in wheat.">Gluten</span>`) {
		t.Fatalf("expected description tooltip: %s", out)
	}
	if !strings.Contains(out, `<span title="Milk">Milk</span>`) {
		t.Fatalf("expected name tooltip without description: %s", out)
	}
	if !strings.Contains(render(t, AllergenCheckboxes(nil, nil)), "No allergens available.") {
		t.Fatal("expected empty state")
	}
}

func TestSelectRendersOptions(t *testing.T) {
	products := []models.Product{{Model: gorm.Model{ID: 7}, Name: "Bread", Lot: "L1"}}
	out := render(t, Select("producto_id", "Product", ProductOptions(products), 7))
	if !strings.Contains(out, `<option value="7" selected>Bread (L1)</option>`) {
		t.Fatalf("expected selected product option: %s", out)
	}
	if !strings.Contains(out, `name="producto_id"`) {
		t.Fatalf("expected select name: %s", out)
	}
}

func TestProductCard(t *testing.T) {
	bread := models.Product{Name: "Bread", Lot: "L1", Allergens: []models.Allergen{{Name: "Gluten"}, {Name: "Soy"}}}
	out := render(t, ProductCard(bread))
	for _, token := range []string{"Bread", "Lot L1", "Gluten, Soy", `title="Product: Bread` + "\nLot: L1\nAllergens: Gluten, Soy" + `"`} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
	if !strings.Contains(render(t, ProductCard(models.Product{Name: "Water", Lot: "W"})), "No allergens tagged") {
		t.Fatal("expected empty allergen message")
	}
}
