package models

import (
	"strings"

	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name      string     `gorm:"size:100;not null" json:"name"`
	Lot       string     `gorm:"size:50;not null" json:"lot"`
	UserID    uint       `gorm:"column:usuario_id;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Allergens []Allergen `gorm:"many2many:producto_alergeno;joinForeignKey:ProductoID;joinReferences:AlergenoID" json:"allergens"`
}

func (Product) TableName() string {
	return "producto"
}

// ContainsAllergen reports whether an allergen with exactly this name is
// tagged on the product. Allergens must be loaded.
func (p *Product) ContainsAllergen(name string) bool {
	for _, allergen := range p.Allergens {
		if allergen.Name == name {
			return true
		}
	}
	return false
}

// AllergenNames lists the tagged allergen names in association order.
func (p *Product) AllergenNames() []string {
	names := make([]string, 0, len(p.Allergens))
	for _, allergen := range p.Allergens {
		names = append(names, allergen.Name)
	}
	return names
}

// Summary renders the product as a short multi-line description.
func (p *Product) Summary() string {
	var b strings.Builder
	b.WriteString("Product: ")
	b.WriteString(p.Name)
	b.WriteString("\nLot: ")
	b.WriteString(p.Lot)
	b.WriteString("\nAllergens: ")
	b.WriteString(strings.Join(p.AllergenNames(), ", "))
	return b.String()
}
