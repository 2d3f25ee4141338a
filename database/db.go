package database

import (
	"fmt"
	"os"

	"care-connect/database/seeders"
	"care-connect/logger"
	beneficiaryModel "care-connect/models/beneficiary"
	donationModel "care-connect/models/donation"
	logModel "care-connect/models/log"
	verificationModel "care-connect/models/verification"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	seeders.SeedBeneficiaries(DB)

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: reference data and independent aggregates
	stage1Models := []interface{}{
		&beneficiaryModel.Beneficiary{},
		&donationModel.Donation{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: records owned by a donation
	stage2Models := []interface{}{
		&donationModel.Tracking{},
		&donationModel.TrackingEntry{},
		&donationModel.BookDetails{},
		&donationModel.Address{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: remaining models
	remainingModels := []interface{}{
		&verificationModel.VerifiedDonation{},
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Donation indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_donations_status ON donations(status)").Error; err != nil {
		return fmt.Errorf("failed to create donation status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_donations_created_at ON donations(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create donation created_at index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_donations_donor_id ON donations(donor_id)").Error; err != nil {
		return fmt.Errorf("failed to create donation donor_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_donations_volunteer_id ON donations(volunteer_id)").Error; err != nil {
		return fmt.Errorf("failed to create donation volunteer_id index: %w", err)
	}

	// Tracking indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_tracking_entries_tracking_id ON donation_tracking_entries(tracking_id)").Error; err != nil {
		return fmt.Errorf("failed to create tracking entry index: %w", err)
	}

	// Verification indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_verified_donations_verified_at ON verified_donations(verified_at)").Error; err != nil {
		return fmt.Errorf("failed to create verified_at index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_verified_donations_needy_person_id ON verified_donations(needy_person_id)").Error; err != nil {
		return fmt.Errorf("failed to create needy_person_id index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
