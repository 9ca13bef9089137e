package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/infrastructure/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

const testMaxAttachments = 3

func newAttachmentService(db *gorm.DB) (*AttachmentService, *storage.FileStore) {
	store := storage.NewFileStore(afero.NewMemMapFs(), "storage")
	svc := NewAttachmentService(
		repository.NewAttachmentRepository(db),
		repository.NewTransactionRepository(db),
		store,
		testUploadMaxSize,
		testMaxAttachments,
	)
	return svc, store
}

func seedExpense(t *testing.T, db *gorm.DB) *entity.Transaction {
	t.Helper()

	tx := &entity.Transaction{Date: "2025-03-12", Amount: 40, Direction: enum.DirectionExpense, Label: "Essence"}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	return tx
}

func TestUploadAttachment(t *testing.T) {
	db := setupTestDB(t)
	svc, store := newAttachmentService(db)
	tx := seedExpense(t, db)

	att, err := svc.UploadAttachment(context.Background(), &UploadAttachmentInput{
		TransactionID: tx.ID,
		FileName:      "recu.pdf",
		MimeType:      "application/pdf",
		Data:          []byte("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("UploadAttachment: %v", err)
	}

	if att.FileSize != 8 {
		t.Errorf("file size = %d, want 8", att.FileSize)
	}
	if _, _, err := store.Get(att.FileKey); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	list, err := svc.ListAttachments(context.Background(), tx.ID)
	if err != nil {
		t.Fatalf("ListAttachments: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("attachments = %d, want 1", len(list))
	}
}

func TestUploadAttachmentLimit(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAttachmentService(db)
	tx := seedExpense(t, db)
	ctx := context.Background()

	for i := 0; i < testMaxAttachments; i++ {
		_, err := svc.UploadAttachment(ctx, &UploadAttachmentInput{
			TransactionID: tx.ID,
			FileName:      fmt.Sprintf("recu-%d.pdf", i),
			MimeType:      "application/pdf",
			Data:          []byte("%PDF"),
		})
		if err != nil {
			t.Fatalf("UploadAttachment %d: %v", i, err)
		}
	}

	_, err := svc.UploadAttachment(ctx, &UploadAttachmentInput{
		TransactionID: tx.ID,
		FileName:      "de-trop.pdf",
		MimeType:      "application/pdf",
		Data:          []byte("%PDF"),
	})
	if !apperror.IsConflict(err) {
		t.Errorf("expected a conflict at the attachment cap, got %v", err)
	}
}

func TestDeleteAttachment(t *testing.T) {
	db := setupTestDB(t)
	svc, store := newAttachmentService(db)
	tx := seedExpense(t, db)
	ctx := context.Background()

	att, err := svc.UploadAttachment(ctx, &UploadAttachmentInput{
		TransactionID: tx.ID,
		FileName:      "recu.pdf",
		MimeType:      "application/pdf",
		Data:          []byte("%PDF"),
	})
	if err != nil {
		t.Fatalf("UploadAttachment: %v", err)
	}

	if err := svc.DeleteAttachment(ctx, att.ID); err != nil {
		t.Fatalf("DeleteAttachment: %v", err)
	}

	var count int64
	db.Model(&entity.Attachment{}).Count(&count)
	if count != 0 {
		t.Errorf("attachments = %d, want 0", count)
	}
	if _, _, err := store.Get(att.FileKey); err == nil {
		t.Error("stored file must be removed")
	}
}
