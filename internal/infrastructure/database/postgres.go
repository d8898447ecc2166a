package database

import (
	"fmt"

	"github.com/opticadev/optica-api/internal/config"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log zerolog.Logger) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Master entities
		&entity.Store{},
		&entity.Supplier{},
		&entity.Customer{},
		&entity.Product{},

		// Customer order entities
		&entity.Order{},
		&entity.OrderLine{},

		// Purchasing entities
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderLine{},

		// Receiving entities
		&entity.Receiving{},
		&entity.ReceivingLine{},

		// Inventory entities
		&entity.SerializedItem{},
		&entity.StockLevel{},
		&entity.StockAdjustment{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}
