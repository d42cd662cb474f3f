package database

import (
	"fmt"
	"log"
	"pos_backend/pkg/config"
	"pos_backend/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDatabase initializes the database connection
func InitDatabase() error {
	var err error

	gormConfig := &gorm.Config{
		PrepareStmt: false,
	}

	// Development mode - verbose logging
	if config.IsDevelopment() {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		// Production mode - only errors
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	}

	// Connect to PostgreSQL with implicit prepared statements disabled
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.AppConfig.DatabaseURL,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Writes are fanned out by the write queue, so the pool must cover its workers.
	sqlDB.SetMaxOpenConns(config.AppConfig.WriteWorkers + 10)
	sqlDB.SetMaxIdleConns(5)

	log.Println("✅ Database connection established")

	return nil
}

// AutoMigrate creates or updates the six collections and the revoked session keys
func AutoMigrate() error {
	log.Println("🔄 Running database migrations...")

	err := DB.AutoMigrate(
		&models.Staff{},
		&models.MenuItem{},
		&models.Table{},
		&models.Order{},
		&models.Customer{},
		&models.Reservation{},
		&models.RevokedSession{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes()

	log.Println("✅ Database migrations completed")
	return nil
}

// createIndexes adds the lookups the reports and history screens lean on
func createIndexes() {
	DB.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_timestamp ON orders(timestamp)`)
	DB.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_staff_id ON orders(staff_id)`)
	DB.Exec(`CREATE INDEX IF NOT EXISTS idx_reservations_table_id ON reservations(table_id)`)
}

// CloseDatabase closes the database connection
func CloseDatabase() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("✅ Database connection closed")
	}
}
