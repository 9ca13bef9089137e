package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	domainRepo "github.com/mlegall/facturio-api/internal/domain/repository"
	"gorm.io/gorm"
)

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *gorm.DB) domainRepo.AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, att *entity.Attachment) error {
	return r.db.WithContext(ctx).Create(att).Error
}

func (r *attachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Attachment, error) {
	var att entity.Attachment
	err := r.db.WithContext(ctx).First(&att, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &att, err
}

func (r *attachmentRepository) ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.Attachment, error) {
	var atts []entity.Attachment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("uploaded_at ASC").
		Find(&atts).Error
	return atts, err
}

func (r *attachmentRepository) CountByTransactionID(ctx context.Context, transactionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Attachment{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error
	return count, err
}

func (r *attachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Attachment{}, "id = ?", id).Error
}
