package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Contact{},
		&entity.Settings{},
		&entity.Document{},
		&entity.DocumentLine{},
		&entity.Sequence{},
		&entity.Transaction{},
		&entity.ProofBundle{},
		&entity.Proof{},
		&entity.Attachment{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedContact(t *testing.T, db *gorm.DB) *entity.Contact {
	t.Helper()

	contact := &entity.Contact{
		Type:        enum.ContactClient,
		DisplayName: "Jeanne Dupont",
		Country:     "FR",
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}
	return contact
}

func seedSettings(t *testing.T, db *gorm.DB) *entity.Settings {
	t.Helper()

	settings := &entity.Settings{
		Siret:               "12345678900011",
		CompanyName:         "Atelier Dupont",
		ActivityType:        enum.ActivityMixed,
		AddressLine1:        "1 rue de la Paix",
		PostalCode:          "75002",
		City:                "Paris",
		Email:               "contact@atelier-dupont.fr",
		VatExemptText:       entity.DefaultVatExemptText,
		DefaultPaymentTerms: entity.DefaultPaymentTermsDays,
	}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
	return settings
}

func seedIncome(t *testing.T, db *gorm.DB, date string, amount float64, category enum.FiscalCategory) *entity.Transaction {
	t.Helper()

	tx := &entity.Transaction{
		Date:           date,
		Amount:         amount,
		Direction:      enum.DirectionIncome,
		Label:          "Vente",
		FiscalCategory: &category,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	return tx
}

func strPtr(s string) *string { return &s }
