package service

import (
	"context"
	"testing"

	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/infrastructure/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/pkg/pagination"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

func newTransactionService(db *gorm.DB) (*TransactionService, *storage.FileStore) {
	store := storage.NewFileStore(afero.NewMemMapFs(), "storage")
	svc := NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewAttachmentRepository(db),
		store,
	)
	return svc, store
}

func TestCreateTransactionValidation(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTransactionService(db)
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, &CreateTransactionInput{
		Amount: 0, Direction: enum.DirectionExpense, Label: "Achat",
	})
	if err == nil {
		t.Error("expected an error for a zero amount")
	}

	_, err = svc.CreateTransaction(ctx, &CreateTransactionInput{
		Amount: -10, Direction: enum.DirectionExpense, Label: "Achat",
	})
	if err == nil {
		t.Error("expected an error for a negative amount")
	}

	_, err = svc.CreateTransaction(ctx, &CreateTransactionInput{
		Amount: 10, Direction: "SIDEWAYS", Label: "Achat",
	})
	if err == nil {
		t.Error("expected an error for an unknown direction")
	}

	_, err = svc.CreateTransaction(ctx, &CreateTransactionInput{
		Amount: 10, Direction: enum.DirectionExpense,
	})
	if err == nil {
		t.Error("expected an error for a missing label")
	}
}

func TestCreateSecondHandTransactionOpensBundle(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTransactionService(db)

	tx, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Amount:       250,
		Direction:    enum.DirectionExpense,
		Label:        "Achat vélo d'occasion",
		IsSecondHand: true,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if tx.ProofBundle == nil {
		t.Fatal("second-hand purchase must open a proof bundle")
	}
	if tx.ProofBundle.TransactionID != tx.ID {
		t.Error("bundle must belong to the transaction")
	}
	if tx.ProofBundle.IsComplete {
		t.Error("fresh bundle must not be complete")
	}
	if tx.Date == "" {
		t.Error("date must default to today")
	}

	// Ordinary entries get no bundle
	plain, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Amount: 30, Direction: enum.DirectionExpense, Label: "Essence",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if plain.ProofBundle != nil {
		t.Error("ordinary entry must not open a bundle")
	}
}

func TestUpdateTransaction(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTransactionService(db)
	ctx := context.Background()

	tx, err := svc.CreateTransaction(ctx, &CreateTransactionInput{
		Date: "2025-05-01", Amount: 100, Direction: enum.DirectionExpense, Label: "Achat",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	amount := 120.0
	updated, err := svc.UpdateTransaction(ctx, &UpdateTransactionInput{
		ID:     tx.ID,
		Amount: &amount,
		Label:  strPtr("Achat corrigé"),
	})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}

	if updated.Amount != 120 || updated.Label != "Achat corrigé" {
		t.Errorf("updated = %v/%q", updated.Amount, updated.Label)
	}
	if updated.Date != "2025-05-01" {
		t.Errorf("date = %q, untouched fields must survive", updated.Date)
	}

	bad := -5.0
	if _, err := svc.UpdateTransaction(ctx, &UpdateTransactionInput{ID: tx.ID, Amount: &bad}); err == nil {
		t.Error("expected an error for a negative amount")
	}
}

func TestListTransactionsFilters(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTransactionService(db)

	seedIncome(t, db, "2025-01-10", 100, enum.FiscalBnc)
	seedIncome(t, db, "2025-02-10", 200, enum.FiscalBicPresta)
	expense := &entity.Transaction{Date: "2025-02-15", Amount: 50, Direction: enum.DirectionExpense, Label: "Achat"}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to seed expense: %v", err)
	}

	income := enum.DirectionIncome
	result, err := svc.ListTransactions(context.Background(), &ListTransactionsInput{
		Pagination: pagination.DefaultPagination(),
		Direction:  &income,
		StartDate:  "2025-02-01",
		EndDate:    "2025-02-28",
	})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}

	if result.Pagination.Total != 1 {
		t.Fatalf("total = %d, want 1", result.Pagination.Total)
	}
	if result.Items[0].Amount != 200 {
		t.Errorf("amount = %v, want 200", result.Items[0].Amount)
	}
}

func TestDeleteTransactionCascades(t *testing.T) {
	db := setupTestDB(t)
	svc, store := newTransactionService(db)
	ctx := context.Background()

	tx, err := svc.CreateTransaction(ctx, &CreateTransactionInput{
		Amount: 250, Direction: enum.DirectionExpense, Label: "Achat d'occasion", IsSecondHand: true,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	proofKey := "proofs/" + tx.ProofBundle.ID.String() + "/annonce.png"
	if err := store.Put(proofKey, []byte("png"), "image/png"); err != nil {
		t.Fatalf("store.Put: %v", err)
	}
	proof := &entity.Proof{
		BundleID: tx.ProofBundle.ID,
		Type:     enum.ProofScreenshotAd,
		FileKey:  proofKey,
		FileName: "annonce.png",
		FileSize: 3,
		MimeType: "image/png",
	}
	if err := db.Create(proof).Error; err != nil {
		t.Fatalf("failed to seed proof: %v", err)
	}

	attKey := "attachments/" + tx.ID.String() + "/recu.pdf"
	if err := store.Put(attKey, []byte("%PDF"), "application/pdf"); err != nil {
		t.Fatalf("store.Put: %v", err)
	}
	att := &entity.Attachment{
		TransactionID: tx.ID,
		FileKey:       attKey,
		FileName:      "recu.pdf",
		FileSize:      4,
		MimeType:      "application/pdf",
	}
	if err := db.Create(att).Error; err != nil {
		t.Fatalf("failed to seed attachment: %v", err)
	}

	if err := svc.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	var txs, bundles, proofs, atts int64
	db.Model(&entity.Transaction{}).Count(&txs)
	db.Model(&entity.ProofBundle{}).Count(&bundles)
	db.Model(&entity.Proof{}).Count(&proofs)
	db.Model(&entity.Attachment{}).Count(&atts)
	if txs != 0 || bundles != 0 || proofs != 0 || atts != 0 {
		t.Errorf("rows left after delete: tx=%d bundles=%d proofs=%d attachments=%d", txs, bundles, proofs, atts)
	}

	if _, _, err := store.Get(proofKey); err == nil {
		t.Error("proof file must be removed from the store")
	}
	if _, _, err := store.Get(attKey); err == nil {
		t.Error("attachment file must be removed from the store")
	}
}
