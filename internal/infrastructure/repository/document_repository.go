package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	domainRepo "github.com/mlegall/facturio-api/internal/domain/repository"
	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) domainRepo.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Preload("Contact").
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) GetStatus(ctx context.Context, id uuid.UUID) (*enum.DocStatus, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Select("status").
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Status, nil
}

func (r *documentRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.Document{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// UpdateStatusIf applies the transition only when the stored status still
// matches expected. RowsAffected tells whether this caller won the race.
func (r *documentRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next enum.DocStatus, extra map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": next}
	for k, v := range extra {
		updates[k] = v
	}

	result := r.db.WithContext(ctx).Model(&entity.Document{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.DocumentLine{}, "document_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Document{}, "id = ?", id).Error
	})
}

func (r *documentRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.Document, int64, error) {
	var docs []entity.Document
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Document{})

	if params.DocType != nil {
		query = query.Where("doc_type = ?", *params.DocType)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.ContactID != nil {
		query = query.Where("contact_id = ?", *params.ContactID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Contact").
		Order("created_at DESC").
		Find(&docs).Error

	return docs, total, err
}

func (r *documentRepository) ListAllWithLines(ctx context.Context) ([]entity.Document, error) {
	var docs []entity.Document
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("issued_date ASC, created_at ASC").
		Find(&docs).Error
	return docs, err
}

type documentLineRepository struct {
	db *gorm.DB
}

// NewDocumentLineRepository creates a new document line repository
func NewDocumentLineRepository(db *gorm.DB) domainRepo.DocumentLineRepository {
	return &documentLineRepository{db: db}
}

func (r *documentLineRepository) GetByDocumentID(ctx context.Context, documentID uuid.UUID) ([]entity.DocumentLine, error) {
	var lines []entity.DocumentLine
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("position ASC").
		Find(&lines).Error
	return lines, err
}

func (r *documentLineRepository) ReplaceForDocument(ctx context.Context, documentID uuid.UUID, lines []entity.DocumentLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.DocumentLine{}, "document_id = ?", documentID).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		for i := range lines {
			lines[i].DocumentID = documentID
		}
		return tx.Create(&lines).Error
	})
}

func (r *documentLineRepository) DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.DocumentLine{}, "document_id = ?", documentID).Error
}
