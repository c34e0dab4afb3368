package mock

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alerscan/internal/db"
	applog "alerscan/internal/log"
	"alerscan/models"
)

const (
	// DemoUsername and DemoPassword identify the account seeded for local development.
	DemoUsername = "demo"
	DemoPassword = "demo-scanner"
)

// New returns an in-memory sqlite database seeded with the reference allergens,
// a demo account and a couple of tagged products.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:alerscan-mock-%d?mode=memory&cache=shared", time.Now().UnixNano())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if _, err := db.SeedAllergens(ctx, database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:     DemoUsername,
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	var allergens []models.Allergen
	if err := database.WithContext(ctx).Order("id").Find(&allergens).Error; err != nil {
		return err
	}
	byName := make(map[string]models.Allergen, len(allergens))
	for _, allergen := range allergens {
		byName[allergen.Name] = allergen
	}

	products := []models.Product{
		{
			Name:      "Sourdough Loaf",
			Lot:       "SD-2401",
			UserID:    user.ID,
			Allergens: []models.Allergen{byName["Gluten"]},
		},
		{
			Name:      "Praline Cookies",
			Lot:       "PC-0917",
			UserID:    user.ID,
			Allergens: []models.Allergen{byName["Gluten"], byName["Egg"], byName["Milk"], byName["Tree nuts"]},
		},
	}

	for i := range products {
		if err := database.WithContext(ctx).Omit("Allergens.*").Create(&products[i]).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
