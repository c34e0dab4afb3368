package models

import (
	"gorm.io/gorm"
)

// Allergen is a named substance a Product may contain. Allergens are reference
// data seeded once and read-only afterwards.
type Allergen struct {
	gorm.Model
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Allergen) TableName() string {
	return "allergen"
}

func (a Allergen) String() string {
	if a.Description == "" {
		return a.Name
	}
	return a.Name + ": " + a.Description
}

// SeedAllergens is the reference list inserted into an empty allergen table.
func SeedAllergens() []Allergen {
	return []Allergen{
		{Name: "Gluten", Description: "Protein found in wheat, rye, barley and oats."},
		{Name: "Egg"},
		{Name: "Milk"},
		{Name: "Soy"},
		{Name: "Tree nuts", Description: "Includes almonds, hazelnuts, walnuts, cashews, etc."},
		{Name: "Peanuts"},
		{Name: "Shellfish"},
	}
}
