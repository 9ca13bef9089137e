package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// allowed logo formats, a subset of the upload whitelist
var allowedLogoMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// SettingsService manages the issuer company profile
type SettingsService struct {
	settingsRepo  repository.SettingsRepository
	contactRepo   repository.ContactRepository
	documentRepo  repository.DocumentRepository
	txRepo        repository.TransactionRepository
	store         storage.ObjectStore
	uploadMaxSize int64
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	contactRepo repository.ContactRepository,
	documentRepo repository.DocumentRepository,
	txRepo repository.TransactionRepository,
	store storage.ObjectStore,
	uploadMaxSize int64,
) *SettingsService {
	return &SettingsService{
		settingsRepo:  settingsRepo,
		contactRepo:   contactRepo,
		documentRepo:  documentRepo,
		txRepo:        txRepo,
		store:         store,
		uploadMaxSize: uploadMaxSize,
	}
}

// GetSettings returns the company profile
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Configuration")
	}
	return settings, nil
}

// UpdateSettingsInput represents the input for updating the profile
type UpdateSettingsInput struct {
	Siret                *string
	CompanyName          *string
	ActivityType         *enum.ActivityType
	AddressLine1         *string
	AddressLine2         *string
	PostalCode           *string
	City                 *string
	Phone                *string
	Email                *string
	BankIban             *string
	BankBic              *string
	VatExemptText        *string
	ActivityStartDate    *string
	DeclarationFrequency *enum.DeclarationFrequency
	DefaultPaymentTerms  *int
	DefaultPaymentMethod *enum.PaymentMethod
}

// UpdateSettings patches the company profile
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Configuration")
	}

	if input.Siret != nil {
		settings.Siret = *input.Siret
	}
	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.ActivityType != nil {
		if !input.ActivityType.Valid() {
			return nil, apperror.NewFieldError("activity_type", "Type d'activité inconnu")
		}
		settings.ActivityType = *input.ActivityType
	}
	if input.AddressLine1 != nil {
		settings.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		settings.AddressLine2 = input.AddressLine2
	}
	if input.PostalCode != nil {
		settings.PostalCode = *input.PostalCode
	}
	if input.City != nil {
		settings.City = *input.City
	}
	if input.Phone != nil {
		settings.Phone = input.Phone
	}
	if input.Email != nil {
		settings.Email = *input.Email
	}
	if input.BankIban != nil {
		settings.BankIban = input.BankIban
	}
	if input.BankBic != nil {
		settings.BankBic = input.BankBic
	}
	if input.VatExemptText != nil {
		settings.VatExemptText = *input.VatExemptText
	}
	if input.ActivityStartDate != nil {
		settings.ActivityStartDate = input.ActivityStartDate
	}
	if input.DeclarationFrequency != nil {
		if !input.DeclarationFrequency.Valid() {
			return nil, apperror.NewFieldError("declaration_frequency", "Fréquence de déclaration inconnue")
		}
		settings.DeclarationFrequency = *input.DeclarationFrequency
	}
	if input.DefaultPaymentTerms != nil {
		settings.DefaultPaymentTerms = *input.DefaultPaymentTerms
	}
	if input.DefaultPaymentMethod != nil {
		if !input.DefaultPaymentMethod.Valid() {
			return nil, apperror.NewFieldError("default_payment_method", "Moyen de paiement inconnu")
		}
		settings.DefaultPaymentMethod = *input.DefaultPaymentMethod
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UploadLogo stores the company logo and records its key
func (s *SettingsService) UploadLogo(ctx context.Context, fileName, mimeType string, data []byte) (*entity.Settings, error) {
	if len(data) == 0 {
		return nil, apperror.NewFieldError("file", "Aucun fichier fourni")
	}
	if !allowedLogoMimeTypes[mimeType] {
		return nil, apperror.NewFieldError("file",
			fmt.Sprintf("Type de fichier non autorisé (%s). Formats acceptés : JPEG, PNG, WebP", mimeType))
	}
	if int64(len(data)) > s.uploadMaxSize {
		return nil, apperror.NewFieldError("file",
			fmt.Sprintf("Le fichier dépasse la taille maximale de %d Mo", s.uploadMaxSize/1024/1024))
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Configuration")
	}

	key := fmt.Sprintf("logos/%s-%s", uuid.New(), fileName)
	if err := s.store.Put(key, data, mimeType); err != nil {
		return nil, err
	}

	oldKey := settings.LogoKey
	settings.LogoKey = &key
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		_ = s.store.Delete(key)
		return nil, err
	}
	if oldKey != nil {
		_ = s.store.Delete(*oldKey)
	}

	return settings, nil
}

// GetLogo streams the stored company logo
func (s *SettingsService) GetLogo(ctx context.Context) ([]byte, string, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	if settings == nil || settings.LogoKey == nil {
		return nil, "", apperror.NewNotFoundError("Logo")
	}

	data, mime, err := s.store.Get(*settings.LogoKey)
	if err != nil {
		return nil, "", apperror.NewNotFoundError("Fichier")
	}
	return data, mime, nil
}

// DataExport is a full snapshot of the account data, served as a JSON file
type DataExport struct {
	ExportedAt   string               `json:"exported_at"`
	Settings     *entity.Settings     `json:"settings"`
	Contacts     []entity.Contact     `json:"contacts"`
	Documents    []entity.Document    `json:"documents"`
	Transactions []entity.Transaction `json:"transactions"`
}

// ExportData gathers the company profile, contacts, documents with their
// lines and ledger transactions into one snapshot.
func (s *SettingsService) ExportData(ctx context.Context) (*DataExport, error) {
	export := &DataExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		export.Settings, err = s.settingsRepo.Get(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		export.Contacts, err = s.contactRepo.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		export.Documents, err = s.documentRepo.ListAllWithLines(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		export.Transactions, err = s.txRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return export, nil
}

// PurgeExpiredIdempotencyKeys removes stale idempotency rows. Meant to be
// run periodically from the main process.
func PurgeExpiredIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Printf("Warning: failed to purge idempotency keys: %v", err)
			}
		}
	}
}
