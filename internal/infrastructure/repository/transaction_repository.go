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

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new ledger transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) CreateWithBundle(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Create(tx).Error; err != nil {
			return err
		}
		bundle := &entity.ProofBundle{TransactionID: tx.ID}
		if err := db.Create(bundle).Error; err != nil {
			return err
		}
		tx.ProofBundle = bundle
		return nil
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Contact").
		First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) GetWithProofs(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("ProofBundle").
		Preload("ProofBundle.Proofs").
		First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var bundle entity.ProofBundle
		err := db.First(&bundle, "transaction_id = ?", id).Error
		if err == nil {
			if err := db.Delete(&entity.Proof{}, "bundle_id = ?", bundle.ID).Error; err != nil {
				return err
			}
			if err := db.Delete(&bundle).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Delete(&entity.Attachment{}, "transaction_id = ?", id).Error; err != nil {
			return err
		}
		return db.Delete(&entity.Transaction{}, "id = ?", id).Error
	})
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txs []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})

	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}
	if params.FiscalCategory != nil {
		query = query.Where("fiscal_category = ?", *params.FiscalCategory)
	}
	if params.StartDate != "" {
		query = query.Where("date >= ?", params.StartDate)
	}
	if params.EndDate != "" {
		query = query.Where("date <= ?", params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Contact").
		Preload("ProofBundle").
		Order("date DESC, created_at DESC").
		Find(&txs).Error

	return txs, total, err
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	err := r.db.WithContext(ctx).Order("date ASC, created_at ASC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) ListInRange(ctx context.Context, startDate, endDate string) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Order("date ASC, created_at ASC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) SumByCategory(ctx context.Context, direction enum.Direction, startDate, endDate string) (map[enum.FiscalCategory]float64, error) {
	var rows []struct {
		FiscalCategory enum.FiscalCategory
		Total          float64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT fiscal_category, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE direction = ?
		  AND fiscal_category IS NOT NULL
		  AND date >= ? AND date <= ?
		GROUP BY fiscal_category`,
		direction, startDate, endDate,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[enum.FiscalCategory]float64, len(rows))
	for _, row := range rows {
		sums[row.FiscalCategory] = row.Total
	}
	return sums, nil
}
