package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"github.com/mlegall/facturio-api/pkg/pdfgen"
	"golang.org/x/sync/errgroup"
)

// AllowedUploadMimeTypes lists the accepted proof and attachment formats
var AllowedUploadMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// ProofService manages second-hand purchase proof bundles
type ProofService struct {
	proofRepo     repository.ProofRepository
	txRepo        repository.TransactionRepository
	settingsRepo  repository.SettingsRepository
	store         storage.ObjectStore
	renderer      pdfgen.Renderer
	uploadMaxSize int64
}

// NewProofService creates a new proof service
func NewProofService(
	proofRepo repository.ProofRepository,
	txRepo repository.TransactionRepository,
	settingsRepo repository.SettingsRepository,
	store storage.ObjectStore,
	renderer pdfgen.Renderer,
	uploadMaxSize int64,
) *ProofService {
	return &ProofService{
		proofRepo:     proofRepo,
		txRepo:        txRepo,
		settingsRepo:  settingsRepo,
		store:         store,
		renderer:      renderer,
		uploadMaxSize: uploadMaxSize,
	}
}

// UploadProofInput represents an uploaded evidentiary file
type UploadProofInput struct {
	BundleID uuid.UUID
	Type     enum.ProofType
	FileName string
	MimeType string
	Data     []byte
}

// UploadProof validates and stores a proof file, then flips the matching
// bundle flag. Completeness is recomputed on the bundle save.
func (s *ProofService) UploadProof(ctx context.Context, input *UploadProofInput) (*entity.Proof, error) {
	if len(input.Data) == 0 {
		return nil, apperror.NewFieldError("file", "Aucun fichier fourni")
	}
	if !input.Type.Valid() {
		return nil, apperror.NewFieldError("type", "Type de preuve requis")
	}
	if !AllowedUploadMimeTypes[input.MimeType] {
		return nil, apperror.NewFieldError("file",
			fmt.Sprintf("Type de fichier non autorisé (%s). Formats acceptés : JPEG, PNG, WebP, PDF", input.MimeType))
	}
	if int64(len(input.Data)) > s.uploadMaxSize {
		return nil, apperror.NewFieldError("file",
			fmt.Sprintf("Le fichier dépasse la taille maximale de %d Mo", s.uploadMaxSize/1024/1024))
	}

	bundle, err := s.proofRepo.GetBundleByID(ctx, input.BundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, apperror.NewNotFoundError("Dossier de preuves")
	}

	key := fmt.Sprintf("proofs/%s/%s-%s", input.BundleID, uuid.New(), input.FileName)
	if err := s.store.Put(key, input.Data, input.MimeType); err != nil {
		return nil, err
	}

	proof := &entity.Proof{
		BundleID: input.BundleID,
		Type:     input.Type,
		FileKey:  key,
		FileName: input.FileName,
		FileSize: int64(len(input.Data)),
		MimeType: input.MimeType,
	}
	if err := s.proofRepo.CreateProof(ctx, proof); err != nil {
		// orphaned file cleanup, best effort
		_ = s.store.Delete(key)
		return nil, err
	}

	switch input.Type {
	case enum.ProofScreenshotAd:
		bundle.HasAd = true
	case enum.ProofPayment:
		bundle.HasPayment = true
	case enum.ProofCessionCert:
		bundle.HasCession = true
	}
	bundle.Proofs = nil
	if err := s.proofRepo.UpdateBundle(ctx, bundle); err != nil {
		return nil, err
	}

	return proof, nil
}

// GetBundle returns the proof bundle of a transaction with its proofs
func (s *ProofService) GetBundle(ctx context.Context, transactionID uuid.UUID) (*entity.ProofBundle, error) {
	bundle, err := s.proofRepo.GetBundleByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, apperror.NewNotFoundError("Dossier de preuves")
	}
	return bundle, nil
}

// UpdateBundleInput represents manual bundle adjustments
type UpdateBundleInput struct {
	TransactionID uuid.UUID
	HasAd         *bool
	HasPayment    *bool
	HasCession    *bool
	Notes         *string
}

// UpdateBundle patches the bundle flags and notes
func (s *ProofService) UpdateBundle(ctx context.Context, input *UpdateBundleInput) (*entity.ProofBundle, error) {
	bundle, err := s.proofRepo.GetBundleByTransactionID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, apperror.NewNotFoundError("Dossier de preuves")
	}

	if input.HasAd != nil {
		bundle.HasAd = *input.HasAd
	}
	if input.HasPayment != nil {
		bundle.HasPayment = *input.HasPayment
	}
	if input.HasCession != nil {
		bundle.HasCession = *input.HasCession
	}
	if input.Notes != nil {
		bundle.Notes = input.Notes
	}

	bundle.Proofs = nil
	if err := s.proofRepo.UpdateBundle(ctx, bundle); err != nil {
		return nil, err
	}
	return s.proofRepo.GetBundleByID(ctx, bundle.ID)
}

// DownloadProof streams a stored proof file
func (s *ProofService) DownloadProof(ctx context.Context, id uuid.UUID) ([]byte, string, string, error) {
	proof, err := s.proofRepo.GetProofByID(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	if proof == nil {
		return nil, "", "", apperror.NewNotFoundError("Preuve")
	}

	data, _, err := s.store.Get(proof.FileKey)
	if err != nil {
		return nil, "", "", apperror.NewNotFoundError("Fichier")
	}
	return data, proof.FileName, proof.MimeType, nil
}

// CessionPdf renders the cession certificate of a second-hand purchase
func (s *ProofService) CessionPdf(ctx context.Context, transactionID uuid.UUID) ([]byte, string, error) {
	var tx *entity.Transaction
	var settings *entity.Settings

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tx, err = s.txRepo.GetByID(gctx, transactionID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settingsRepo.Get(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	if tx == nil {
		return nil, "", apperror.NewNotFoundError("Transaction")
	}
	if settings == nil {
		return nil, "", apperror.NewNotFoundError("Configuration")
	}
	if !tx.IsSecondHand {
		return nil, "", apperror.NewConflictError("Cette transaction n'est pas un achat d'occasion")
	}

	data := pdfgen.CessionData{
		Issuer: pdfgen.IssuerInfo{
			CompanyName:  settings.CompanyName,
			Siret:        settings.Siret,
			AddressLine1: settings.AddressLine1,
			AddressLine2: deref(settings.AddressLine2),
			PostalCode:   settings.PostalCode,
			City:         settings.City,
		},
		Date:   tx.Date,
		Amount: tx.Amount,
		Label:  tx.Label,
		Notes:  deref(tx.Notes),
	}
	if tx.Contact != nil {
		data.Seller = pdfgen.RecipientInfo{
			DisplayName:  tx.Contact.DisplayName,
			AddressLine1: deref(tx.Contact.AddressLine1),
			AddressLine2: deref(tx.Contact.AddressLine2),
			PostalCode:   deref(tx.Contact.PostalCode),
			City:         deref(tx.Contact.City),
		}
	}

	pdf, err := s.renderer.Cession(data)
	if err != nil {
		return nil, "", apperror.NewInternalError("Échec de la génération du certificat de cession")
	}
	return pdf, fmt.Sprintf("certificat-cession-%s.pdf", transactionID), nil
}
