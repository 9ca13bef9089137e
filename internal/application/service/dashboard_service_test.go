package service

import (
	"context"
	"strings"
	"testing"

	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/infrastructure/repository"
)

func TestUrssafMonthlyPeriod(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(repository.NewTransactionRepository(db))

	seedIncome(t, db, "2025-02-03", 5000, enum.FiscalBicPresta)
	seedIncome(t, db, "2025-02-20", 3000, enum.FiscalBicPresta)
	seedIncome(t, db, "2025-02-28", 2000, enum.FiscalBicVente)
	// Outside the period but inside the year
	seedIncome(t, db, "2025-03-01", 1000, enum.FiscalBicPresta)
	// Expenses never count towards turnover
	expense := &entity.Transaction{Date: "2025-02-10", Amount: 400, Direction: enum.DirectionExpense, Label: "Achat"}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to seed expense: %v", err)
	}

	summary, err := svc.Urssaf(context.Background(), 2025, 2, false)
	if err != nil {
		t.Fatalf("Urssaf: %v", err)
	}

	if summary.Period != "02/2025" {
		t.Errorf("period = %q, want 02/2025", summary.Period)
	}
	if summary.StartDate != "2025-02-01" || summary.EndDate != "2025-02-28" {
		t.Errorf("range = %s..%s, want 2025-02-01..2025-02-28", summary.StartDate, summary.EndDate)
	}
	if summary.BicPresta != 8000 {
		t.Errorf("bic_presta = %v, want 8000", summary.BicPresta)
	}
	if summary.BicVente != 2000 {
		t.Errorf("bic_vente = %v, want 2000", summary.BicVente)
	}
	if summary.Bnc != 0 {
		t.Errorf("bnc = %v, want 0", summary.Bnc)
	}
	if summary.YearlyBicPresta != 9000 {
		t.Errorf("yearly_bic_presta = %v, want 9000", summary.YearlyBicPresta)
	}
	if len(summary.Alerts) != 0 {
		t.Errorf("alerts = %v, want none", summary.Alerts)
	}
}

func TestUrssafQuarterlyPeriod(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(repository.NewTransactionRepository(db))

	seedIncome(t, db, "2025-04-15", 1200, enum.FiscalBnc)
	seedIncome(t, db, "2025-06-30", 800, enum.FiscalBnc)
	seedIncome(t, db, "2025-07-01", 500, enum.FiscalBnc)

	summary, err := svc.Urssaf(context.Background(), 2025, 5, true)
	if err != nil {
		t.Fatalf("Urssaf: %v", err)
	}

	if summary.Period != "T2 2025" {
		t.Errorf("period = %q, want T2 2025", summary.Period)
	}
	if summary.StartDate != "2025-04-01" || summary.EndDate != "2025-06-30" {
		t.Errorf("range = %s..%s, want 2025-04-01..2025-06-30", summary.StartDate, summary.EndDate)
	}
	if summary.Bnc != 2000 {
		t.Errorf("bnc = %v, want 2000", summary.Bnc)
	}
	if summary.YearlyBnc != 2500 {
		t.Errorf("yearly_bnc = %v, want 2500", summary.YearlyBnc)
	}
}

func TestUrssafThresholdAlerts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(repository.NewTransactionRepository(db))

	// 80% of the 77700 BNC ceiling
	seedIncome(t, db, "2025-01-10", 62160, enum.FiscalBnc)
	// Above the 188700 BIC_VENTE ceiling
	seedIncome(t, db, "2025-03-10", 190000, enum.FiscalBicVente)
	// Well below the BIC_PRESTA ceiling
	seedIncome(t, db, "2025-04-10", 100, enum.FiscalBicPresta)

	summary, err := svc.Urssaf(context.Background(), 2025, 6, false)
	if err != nil {
		t.Fatalf("Urssaf: %v", err)
	}

	if len(summary.Alerts) != 2 {
		t.Fatalf("alerts = %d, want 2: %+v", len(summary.Alerts), summary.Alerts)
	}

	byCategory := map[enum.FiscalCategory]UrssafAlert{}
	for _, alert := range summary.Alerts {
		byCategory[alert.Category] = alert
	}

	bnc, ok := byCategory[enum.FiscalBnc]
	if !ok {
		t.Fatal("expected a BNC alert at 80%")
	}
	if bnc.Percent != 80 || bnc.Exceeded {
		t.Errorf("bnc alert = %d%% exceeded=%v, want 80%% not exceeded", bnc.Percent, bnc.Exceeded)
	}

	vente, ok := byCategory[enum.FiscalBicVente]
	if !ok {
		t.Fatal("expected a BIC_VENTE alert above the ceiling")
	}
	if !vente.Exceeded {
		t.Error("bic_vente alert must be flagged as exceeded")
	}
	if vente.Threshold != 188700 {
		t.Errorf("threshold = %v, want 188700", vente.Threshold)
	}
}

func TestUrssafRejectsInvalidMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(repository.NewTransactionRepository(db))

	if _, err := svc.Urssaf(context.Background(), 2025, 0, false); err == nil {
		t.Error("expected an error for month 0")
	}
	if _, err := svc.Urssaf(context.Background(), 2025, 13, false); err == nil {
		t.Error("expected an error for month 13")
	}
}

func TestExportCSV(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(repository.NewTransactionRepository(db))

	presta := enum.FiscalBicPresta
	card := enum.PaymentCard
	tx := &entity.Transaction{
		Date:           "2025-02-03",
		Amount:         1500.5,
		Direction:      enum.DirectionIncome,
		Label:          `Mission "hiver"`,
		FiscalCategory: &presta,
		PaymentMethod:  &card,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	expense := &entity.Transaction{Date: "2025-02-10", Amount: 89.9, Direction: enum.DirectionExpense, Label: "Fournitures"}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to seed expense: %v", err)
	}

	data, filename, err := svc.ExportCSV(context.Background(), "2025-02-01", "2025-02-28")
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	if filename != "facturio-export-2025-02-01-2025-02-28.csv" {
		t.Errorf("filename = %q", filename)
	}

	lines := strings.Split(string(data), "\n")
	if lines[0] != "Date;Libellé;Direction;Montant;Catégorie fiscale;Moyen de paiement;Notes" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus 2 rows", len(lines))
	}
	if lines[1] != `2025-02-03;"Mission ""hiver""";Recette;1500,5;BIC_PRESTA;CARD;""` {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != `2025-02-10;"Fournitures";Dépense;89,9;;;""` {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestExportCSVRequiresRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDashboardService(repository.NewTransactionRepository(db))

	if _, _, err := svc.ExportCSV(context.Background(), "", "2025-02-28"); err == nil {
		t.Error("expected an error without start_date")
	}
	if _, _, err := svc.ExportCSV(context.Background(), "2025-02-01", ""); err == nil {
		t.Error("expected an error without end_date")
	}
}
