package database

import (
	"log"

	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Profile{},
		&model.NGO{},
		&model.Vendor{},
		&model.Package{},
		&model.Donation{},
		&model.Transaction{},
		&model.Ticket{},
		&model.VendorInvoice{},
		&model.ApplicationSettings{},
		&model.DonationPackage{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
