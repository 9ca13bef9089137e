package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	domainRepo "github.com/mlegall/facturio-api/internal/domain/repository"
	"gorm.io/gorm"
)

type proofRepository struct {
	db *gorm.DB
}

// NewProofRepository creates a new proof bundle repository
func NewProofRepository(db *gorm.DB) domainRepo.ProofRepository {
	return &proofRepository{db: db}
}

func (r *proofRepository) GetBundleByID(ctx context.Context, id uuid.UUID) (*entity.ProofBundle, error) {
	var bundle entity.ProofBundle
	err := r.db.WithContext(ctx).
		Preload("Proofs").
		First(&bundle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bundle, err
}

func (r *proofRepository) GetBundleByTransactionID(ctx context.Context, transactionID uuid.UUID) (*entity.ProofBundle, error) {
	var bundle entity.ProofBundle
	err := r.db.WithContext(ctx).
		Preload("Proofs").
		First(&bundle, "transaction_id = ?", transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bundle, err
}

func (r *proofRepository) UpdateBundle(ctx context.Context, bundle *entity.ProofBundle) error {
	return r.db.WithContext(ctx).Save(bundle).Error
}

func (r *proofRepository) CreateProof(ctx context.Context, proof *entity.Proof) error {
	return r.db.WithContext(ctx).Create(proof).Error
}

func (r *proofRepository) GetProofByID(ctx context.Context, id uuid.UUID) (*entity.Proof, error) {
	var proof entity.Proof
	err := r.db.WithContext(ctx).First(&proof, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proof, err
}

func (r *proofRepository) CountProofsByBundleID(ctx context.Context, bundleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Proof{}).
		Where("bundle_id = ?", bundleID).
		Count(&count).Error
	return count, err
}
