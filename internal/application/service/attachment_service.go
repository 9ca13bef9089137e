package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/pkg/apperror"
)

// AttachmentService manages receipt files linked to transactions
type AttachmentService struct {
	attRepo        repository.AttachmentRepository
	txRepo         repository.TransactionRepository
	store          storage.ObjectStore
	uploadMaxSize  int64
	maxAttachments int
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(
	attRepo repository.AttachmentRepository,
	txRepo repository.TransactionRepository,
	store storage.ObjectStore,
	uploadMaxSize int64,
	maxAttachments int,
) *AttachmentService {
	return &AttachmentService{
		attRepo:        attRepo,
		txRepo:         txRepo,
		store:          store,
		uploadMaxSize:  uploadMaxSize,
		maxAttachments: maxAttachments,
	}
}

// UploadAttachmentInput represents an uploaded receipt file
type UploadAttachmentInput struct {
	TransactionID uuid.UUID
	FileName      string
	MimeType      string
	Data          []byte
}

// UploadAttachment validates and stores a receipt for a transaction
func (s *AttachmentService) UploadAttachment(ctx context.Context, input *UploadAttachmentInput) (*entity.Attachment, error) {
	if len(input.Data) == 0 {
		return nil, apperror.NewFieldError("file", "Aucun fichier fourni")
	}
	if !AllowedUploadMimeTypes[input.MimeType] {
		return nil, apperror.NewFieldError("file",
			fmt.Sprintf("Type de fichier non autorisé (%s). Formats acceptés : JPEG, PNG, WebP, PDF", input.MimeType))
	}
	if int64(len(input.Data)) > s.uploadMaxSize {
		return nil, apperror.NewFieldError("file",
			fmt.Sprintf("Le fichier dépasse la taille maximale de %d Mo", s.uploadMaxSize/1024/1024))
	}

	tx, err := s.txRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	count, err := s.attRepo.CountByTransactionID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.maxAttachments) {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Nombre maximal de justificatifs atteint (%d)", s.maxAttachments))
	}

	key := fmt.Sprintf("attachments/%s/%s-%s", input.TransactionID, uuid.New(), input.FileName)
	if err := s.store.Put(key, input.Data, input.MimeType); err != nil {
		return nil, err
	}

	att := &entity.Attachment{
		TransactionID: input.TransactionID,
		FileKey:       key,
		FileName:      input.FileName,
		FileSize:      int64(len(input.Data)),
		MimeType:      input.MimeType,
	}
	if err := s.attRepo.Create(ctx, att); err != nil {
		_ = s.store.Delete(key)
		return nil, err
	}
	return att, nil
}

// ListAttachments returns the receipts of a transaction
func (s *AttachmentService) ListAttachments(ctx context.Context, transactionID uuid.UUID) ([]entity.Attachment, error) {
	return s.attRepo.ListByTransactionID(ctx, transactionID)
}

// DownloadAttachment streams a stored receipt
func (s *AttachmentService) DownloadAttachment(ctx context.Context, id uuid.UUID) ([]byte, string, string, error) {
	att, err := s.attRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	if att == nil {
		return nil, "", "", apperror.NewNotFoundError("Justificatif")
	}

	data, _, err := s.store.Get(att.FileKey)
	if err != nil {
		return nil, "", "", apperror.NewNotFoundError("Fichier")
	}
	return data, att.FileName, att.MimeType, nil
}

// DeleteAttachment removes a receipt row and its stored file
func (s *AttachmentService) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	att, err := s.attRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if att == nil {
		return apperror.NewNotFoundError("Justificatif")
	}

	if err := s.attRepo.Delete(ctx, id); err != nil {
		return err
	}
	// row is gone, a leftover file is only a warning
	_ = s.store.Delete(att.FileKey)
	return nil
}
