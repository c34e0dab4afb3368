// Package store is the data-access layer over the relational catalog of
// allergens, products and users.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	applog "alerscan/internal/log"
	"alerscan/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if s == nil || s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	return s.db.WithContext(ctx), nil
}

// ListSeedAllergens returns the reference allergens offered for tagging and scanning.
func (s *Store) ListSeedAllergens(ctx context.Context) ([]models.Allergen, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	allergens := []models.Allergen{}
	if err := conn.Order("id").Find(&allergens).Error; err != nil {
		return nil, fmt.Errorf("list allergens: %w", err)
	}
	return allergens, nil
}

// ListProductsForUser returns the products owned by userID with their allergens loaded.
func (s *Store) ListProductsForUser(ctx context.Context, userID uint) ([]models.Product, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := conn.
		Preload("Allergens", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("usuario_id = ?", userID).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products for user %d: %w", userID, err)
	}
	return products, nil
}

// CreateProduct stores a product owned by ownerID and tags it with every id in
// allergenIDs that resolves to an allergen. Unknown ids are skipped.
func (s *Store) CreateProduct(ctx context.Context, name, lot string, ownerID uint, allergenIDs []uint) (*models.Product, error) {
	name = strings.TrimSpace(name)
	lot = strings.TrimSpace(lot)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if lot == "" {
		return nil, fmt.Errorf("%w: lot is required", ErrValidation)
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	}

	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:   name,
		Lot:    lot,
		UserID: ownerID,
	}

	err = conn.Transaction(func(tx *gorm.DB) error {
		ids := uniqueIDs(allergenIDs)
		if len(ids) > 0 {
			var allergens []models.Allergen
			if err := tx.Where("id IN ?", ids).Order("id").Find(&allergens).Error; err != nil {
				return fmt.Errorf("resolve allergens: %w", err)
			}
			if skipped := len(ids) - len(allergens); skipped > 0 {
				applog.Debug(ctx, "skipping unknown allergen ids", "requested", len(ids), "skipped", skipped)
			}
			product.Allergens = allergens
		}
		if err := tx.Omit("Allergens.*").Create(product).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	applog.Debug(ctx, "product created", "productID", product.ID, "ownerID", ownerID, "allergens", len(product.Allergens))
	return product, nil
}

// GetProductForUser loads a product with its allergens, provided ownerID owns it.
func (s *Store) GetProductForUser(ctx context.Context, productID, ownerID uint) (*models.Product, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	product := &models.Product{}
	err = conn.
		Preload("Allergens").
		Where("id = ? AND usuario_id = ?", productID, ownerID).
		First(product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	return product, nil
}

func (s *Store) GetAllergen(ctx context.Context, id uint) (*models.Allergen, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	allergen := &models.Allergen{}
	if err := conn.First(allergen, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("allergen %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load allergen %d: %w", id, err)
	}
	return allergen, nil
}

// CreateUser persists a new account. Usernames are compared exactly.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("%w: password hash is required", ErrValidation)
	}

	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.FindUserByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := conn.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	if err := conn.Where("username = ?", username).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("load user %q: %w", username, err)
	}
	return user, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
