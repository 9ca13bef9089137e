package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
)

// ProofRepository defines the interface for proof bundle data operations
type ProofRepository interface {
	GetBundleByID(ctx context.Context, id uuid.UUID) (*entity.ProofBundle, error)
	// GetBundleByTransactionID eagerly loads the proofs of the bundle.
	GetBundleByTransactionID(ctx context.Context, transactionID uuid.UUID) (*entity.ProofBundle, error)
	UpdateBundle(ctx context.Context, bundle *entity.ProofBundle) error
	CreateProof(ctx context.Context, proof *entity.Proof) error
	GetProofByID(ctx context.Context, id uuid.UUID) (*entity.Proof, error)
	CountProofsByBundleID(ctx context.Context, bundleID uuid.UUID) (int64, error)
}

// AttachmentRepository defines the interface for receipt attachments
type AttachmentRepository interface {
	Create(ctx context.Context, att *entity.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Attachment, error)
	ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]entity.Attachment, error)
	CountByTransactionID(ctx context.Context, transactionID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
