package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"github.com/mlegall/facturio-api/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// TransactionService manages the ledger
type TransactionService struct {
	txRepo  repository.TransactionRepository
	attRepo repository.AttachmentRepository
	store   storage.ObjectStore
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txRepo repository.TransactionRepository,
	attRepo repository.AttachmentRepository,
	store storage.ObjectStore,
) *TransactionService {
	return &TransactionService{
		txRepo:  txRepo,
		attRepo: attRepo,
		store:   store,
	}
}

// CreateTransactionInput represents the input for creating a ledger entry
type CreateTransactionInput struct {
	Date           string
	Amount         float64
	Direction      enum.Direction
	Label          string
	FiscalCategory *enum.FiscalCategory
	PaymentMethod  *enum.PaymentMethod
	DocumentID     *uuid.UUID
	ContactID      *uuid.UUID
	IsSecondHand   bool
	Notes          *string
}

// CreateTransaction creates a ledger entry. Second-hand purchases get an
// empty proof bundle in the same database transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewFieldError("amount", "Le montant doit être strictement positif")
	}
	if !input.Direction.Valid() {
		return nil, apperror.NewFieldError("direction", "Sens de transaction inconnu")
	}
	if input.Label == "" {
		return nil, apperror.NewFieldError("label", "Le libellé est obligatoire")
	}

	tx := &entity.Transaction{
		Date:           input.Date,
		Amount:         input.Amount,
		Direction:      input.Direction,
		Label:          input.Label,
		FiscalCategory: input.FiscalCategory,
		PaymentMethod:  input.PaymentMethod,
		DocumentID:     input.DocumentID,
		ContactID:      input.ContactID,
		IsSecondHand:   input.IsSecondHand,
		Notes:          input.Notes,
	}
	if tx.Date == "" {
		tx.Date = today()
	}

	if input.IsSecondHand {
		if err := s.txRepo.CreateWithBundle(ctx, tx); err != nil {
			return nil, err
		}
	} else {
		if err := s.txRepo.Create(ctx, tx); err != nil {
			return nil, err
		}
	}

	return s.txRepo.GetWithProofs(ctx, tx.ID)
}

// GetTransaction retrieves a transaction with its proof bundle and proofs
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := s.txRepo.GetWithProofs(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// ListTransactionsInput represents the input for listing transactions
type ListTransactionsInput struct {
	Pagination     *pagination.PaginationParams
	Direction      *enum.Direction
	FiscalCategory *enum.FiscalCategory
	StartDate      string
	EndDate        string
}

// ListTransactions lists ledger entries with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, input *ListTransactionsInput) (*pagination.PaginatedResult[entity.Transaction], error) {
	params := &repository.TransactionFilterParams{
		Pagination:     input.Pagination,
		Direction:      input.Direction,
		FiscalCategory: input.FiscalCategory,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}

	txs, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txs, pag), nil
}

// UpdateTransactionInput represents the input for updating a ledger entry
type UpdateTransactionInput struct {
	ID             uuid.UUID
	Date           *string
	Amount         *float64
	Direction      *enum.Direction
	Label          *string
	FiscalCategory *enum.FiscalCategory
	PaymentMethod  *enum.PaymentMethod
	DocumentID     *uuid.UUID
	ContactID      *uuid.UUID
	Notes          *string
}

// UpdateTransaction patches a ledger entry
func (s *TransactionService) UpdateTransaction(ctx context.Context, input *UpdateTransactionInput) (*entity.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if input.Date != nil {
		tx.Date = *input.Date
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, apperror.NewFieldError("amount", "Le montant doit être strictement positif")
		}
		tx.Amount = *input.Amount
	}
	if input.Direction != nil {
		tx.Direction = *input.Direction
	}
	if input.Label != nil {
		tx.Label = *input.Label
	}
	if input.FiscalCategory != nil {
		tx.FiscalCategory = input.FiscalCategory
	}
	if input.PaymentMethod != nil {
		tx.PaymentMethod = input.PaymentMethod
	}
	if input.DocumentID != nil {
		tx.DocumentID = input.DocumentID
	}
	if input.ContactID != nil {
		tx.ContactID = input.ContactID
	}
	if input.Notes != nil {
		tx.Notes = input.Notes
	}

	tx.Contact = nil
	tx.ProofBundle = nil
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return s.txRepo.GetWithProofs(ctx, input.ID)
}

// DeleteTransaction removes a ledger entry, its proofs and attachments.
// Object store cleanup is best effort: orphaned files are only logged.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	tx, err := s.txRepo.GetWithProofs(ctx, id)
	if err != nil {
		return err
	}
	if tx == nil {
		return apperror.NewNotFoundError("Transaction")
	}

	attachments, err := s.attRepo.ListByTransactionID(ctx, id)
	if err != nil {
		return err
	}

	var keys []string
	if tx.ProofBundle != nil {
		for _, proof := range tx.ProofBundle.Proofs {
			keys = append(keys, proof.FileKey)
		}
	}
	for _, att := range attachments {
		keys = append(keys, att.FileKey)
	}

	if err := s.txRepo.Delete(ctx, id); err != nil {
		return err
	}

	var g errgroup.Group
	for _, key := range keys {
		key := key
		g.Go(func() error {
			if err := s.store.Delete(key); err != nil {
				log.Printf("Warning: failed to delete stored file %s: %v", key, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return nil
}
