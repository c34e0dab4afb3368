package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"alerscan/internal/config"
	"alerscan/internal/db/migrations"
	applog "alerscan/internal/log"
	"alerscan/models"
)

// goose keeps its base filesystem and dialect in package state.
var migrateMu sync.Mutex

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("database URL must not be empty")
	}

	gormCfg := &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(dialectorFor(cfg.URL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return db, nil
}

// dialectorFor selects SQLite for "sqlite:" and "file:" URLs or paths ending
// in .db, and Postgres for everything else.
func dialectorFor(url string) gorm.Dialector {
	trimmed := strings.TrimSpace(url)
	switch {
	case strings.HasPrefix(trimmed, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(trimmed, "sqlite:"))
	case strings.HasPrefix(trimmed, "file:"), strings.HasSuffix(trimmed, ".db"):
		return sqlite.Open(trimmed)
	default:
		return postgres.Open(trimmed)
	}
}

// AutoMigrate derives the schema from the gorm models. The mock database uses
// it; real deployments run the versioned migrations through Migrate.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	return db.AutoMigrate(
		&models.Allergen{},
		&models.User{},
		&models.Product{},
	)
}

// Migrate applies the embedded SQL migrations for the database dialect.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	dialect, dir, err := migrationDialect(db.Dialector.Name())
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("open %s migrations: %w", dir, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(fsys)
	goose.SetLogger(gooseLogger{ctx: ctx})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	applog.Debug(ctx, "applying schema migrations", "dialect", dialect)
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func migrationDialect(name string) (string, string, error) {
	switch name {
	case "postgres":
		return "postgres", "postgres", nil
	case "sqlite":
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for dialect %q", name)
	}
}

// gooseLogger routes goose progress output through the application logger.
type gooseLogger struct {
	ctx context.Context
}

func (l gooseLogger) Printf(format string, v ...any) {
	applog.Debug(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	applog.Error(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// SeedAllergens inserts the reference allergens when the table is empty and
// reports how many rows were written.
func SeedAllergens(ctx context.Context, db *gorm.DB) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("database handle is nil")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.Allergen{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count allergens: %w", err)
	}
	if count > 0 {
		applog.Debug(ctx, "allergen table already seeded", "count", count)
		return 0, nil
	}

	seeds := models.SeedAllergens()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&seeds).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another process seeded concurrently.
			return 0, nil
		}
		return 0, fmt.Errorf("seed allergens: %w", err)
	}

	applog.Info(ctx, "seeded allergens", "count", len(seeds))
	return len(seeds), nil
}

// Configure opens the database, applies migrations and seeds the allergens.
func Configure(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := Initialize(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := Migrate(ctx, database); err != nil {
		return nil, err
	}

	if _, err := SeedAllergens(ctx, database); err != nil {
		return nil, err
	}

	return database, nil
}
