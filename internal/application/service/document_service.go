package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"github.com/mlegall/facturio-api/pkg/pagination"
	"github.com/mlegall/facturio-api/pkg/pdfgen"
	"golang.org/x/sync/errgroup"
)

// DocumentService drives the quote/invoice/credit-note lifecycle
type DocumentService struct {
	docRepo      repository.DocumentRepository
	lineRepo     repository.DocumentLineRepository
	seqRepo      repository.SequenceRepository
	contactRepo  repository.ContactRepository
	txRepo       repository.TransactionRepository
	settingsRepo repository.SettingsRepository
	store        storage.ObjectStore
	renderer     pdfgen.Renderer
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repository.DocumentRepository,
	lineRepo repository.DocumentLineRepository,
	seqRepo repository.SequenceRepository,
	contactRepo repository.ContactRepository,
	txRepo repository.TransactionRepository,
	settingsRepo repository.SettingsRepository,
	store storage.ObjectStore,
	renderer pdfgen.Renderer,
) *DocumentService {
	return &DocumentService{
		docRepo:      docRepo,
		lineRepo:     lineRepo,
		seqRepo:      seqRepo,
		contactRepo:  contactRepo,
		txRepo:       txRepo,
		settingsRepo: settingsRepo,
		store:        store,
		renderer:     renderer,
	}
}

// DocumentLineInput represents one billed line
type DocumentLineInput struct {
	Description    string
	Quantity       float64
	Unit           *string
	UnitPrice      float64
	FiscalCategory enum.FiscalCategory
}

// CreateDocumentInput represents the input for creating a draft document
type CreateDocumentInput struct {
	ContactID        uuid.UUID
	DocType          enum.DocType
	IssuedDate       string
	DueDate          *string
	PaymentMethod    *enum.PaymentMethod
	PaymentTermsDays *int
	Notes            *string
	Terms            *string
	FooterText       *string
	Lines            []DocumentLineInput
}

// CreateDocument creates a new draft document with its lines
func (s *DocumentService) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*entity.Document, error) {
	contact, err := s.contactRepo.GetByID(ctx, input.ContactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}

	issuedDate := input.IssuedDate
	if issuedDate == "" {
		issuedDate = today()
	}

	lines := buildLines(input.Lines)
	totalHT, byCategory := computeTotals(lines)

	doc := &entity.Document{
		ContactID:        input.ContactID,
		DocType:          input.DocType,
		Status:           enum.DocStatusDraft,
		IssuedDate:       issuedDate,
		DueDate:          input.DueDate,
		PaymentMethod:    input.PaymentMethod,
		PaymentTermsDays: input.PaymentTermsDays,
		TotalHT:          totalHT,
		TotalBicVente:    byCategory[enum.FiscalBicVente],
		TotalBicPresta:   byCategory[enum.FiscalBicPresta],
		TotalBnc:         byCategory[enum.FiscalBnc],
		Notes:            input.Notes,
		Terms:            input.Terms,
		FooterText:       input.FooterText,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.lineRepo.ReplaceForDocument(ctx, doc.ID, lines); err != nil {
		return nil, err
	}

	return s.docRepo.GetWithLines(ctx, doc.ID)
}

// GetDocument retrieves a document with its lines and contact
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.docRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return doc, nil
}

// ListDocumentsInput represents the input for listing documents
type ListDocumentsInput struct {
	Pagination *pagination.PaginationParams
	DocType    *enum.DocType
	Status     *enum.DocStatus
	ContactID  *uuid.UUID
}

// ListDocuments lists documents with filtering
func (s *DocumentService) ListDocuments(ctx context.Context, input *ListDocumentsInput) (*pagination.PaginatedResult[entity.Document], error) {
	params := &repository.DocumentFilterParams{
		Pagination: input.Pagination,
		DocType:    input.DocType,
		Status:     input.Status,
		ContactID:  input.ContactID,
	}

	docs, total, err := s.docRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(docs, pag), nil
}

// UpdateDocumentInput represents the input for updating a draft document
type UpdateDocumentInput struct {
	ID               uuid.UUID
	ContactID        *uuid.UUID
	IssuedDate       *string
	DueDate          *string
	PaymentMethod    *enum.PaymentMethod
	PaymentTermsDays *int
	Notes            *string
	Terms            *string
	FooterText       *string
	Lines            []DocumentLineInput
	ReplaceLines     bool
}

// UpdateDocument updates a draft document. Sent, paid and cancelled
// documents are immutable.
func (s *DocumentService) UpdateDocument(ctx context.Context, input *UpdateDocumentInput) (*entity.Document, error) {
	status, err := s.docRepo.GetStatus(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	if *status != enum.DocStatusDraft {
		return nil, apperror.NewConflictError("Seul un document en brouillon peut être modifié")
	}

	fields := map[string]interface{}{}
	if input.ContactID != nil {
		contact, err := s.contactRepo.GetByID(ctx, *input.ContactID)
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, apperror.NewNotFoundError("Contact")
		}
		fields["contact_id"] = *input.ContactID
	}
	if input.IssuedDate != nil {
		fields["issued_date"] = *input.IssuedDate
	}
	if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}
	if input.PaymentMethod != nil {
		fields["payment_method"] = *input.PaymentMethod
	}
	if input.PaymentTermsDays != nil {
		fields["payment_terms_days"] = *input.PaymentTermsDays
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if input.Terms != nil {
		fields["terms"] = *input.Terms
	}
	if input.FooterText != nil {
		fields["footer_text"] = *input.FooterText
	}

	if input.ReplaceLines {
		lines := buildLines(input.Lines)
		totalHT, byCategory := computeTotals(lines)
		fields["total_ht"] = totalHT
		fields["total_bic_vente"] = byCategory[enum.FiscalBicVente]
		fields["total_bic_presta"] = byCategory[enum.FiscalBicPresta]
		fields["total_bnc"] = byCategory[enum.FiscalBnc]

		if err := s.lineRepo.ReplaceForDocument(ctx, input.ID, lines); err != nil {
			return nil, err
		}
	}

	if len(fields) > 0 {
		if err := s.docRepo.UpdateFields(ctx, input.ID, fields); err != nil {
			return nil, err
		}
	}

	return s.docRepo.GetWithLines(ctx, input.ID)
}

// SendDocument transitions a draft to SENT, assigning its legal reference.
// The reference is drawn before the conditional status update; if the
// update loses the race the number stays burned but the document is
// untouched.
func (s *DocumentService) SendDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	if doc.Status != enum.DocStatusDraft {
		return nil, apperror.NewConflictError("Seul un brouillon peut être envoyé")
	}

	reference, err := s.seqRepo.NextReference(ctx, doc.DocType)
	if err != nil {
		return nil, err
	}

	ok, err := s.docRepo.UpdateStatusIf(ctx, id, enum.DocStatusDraft, enum.DocStatusSent,
		map[string]interface{}{"reference": reference})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Seul un brouillon peut être envoyé")
	}

	var updated *entity.Document
	var settings *entity.Settings

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		updated, err = s.docRepo.GetWithLines(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settingsRepo.Get(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The PDF snapshot is best effort: the transition is already committed
	if updated != nil && settings != nil {
		if err := s.renderAndStorePdf(updated, settings); err != nil {
			log.Printf("Warning: failed to store PDF for document %s: %v", id, err)
		}
	}

	return updated, nil
}

// PayDocument transitions a sent document to PAID and records the income
func (s *DocumentService) PayDocument(ctx context.Context, id uuid.UUID) (*entity.Document, *entity.Transaction, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, apperror.NewNotFoundError("Document")
	}
	switch doc.Status {
	case enum.DocStatusSent:
	case enum.DocStatusPaid:
		return nil, nil, apperror.NewConflictError("Ce document est déjà payé")
	case enum.DocStatusCancelled:
		return nil, nil, apperror.NewConflictError("Ce document est annulé")
	default:
		return nil, nil, apperror.NewConflictError("Seul un document envoyé peut être marqué comme payé")
	}

	ok, err := s.docRepo.UpdateStatusIf(ctx, id, enum.DocStatusSent, enum.DocStatusPaid, nil)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, apperror.NewConflictError("Seul un document envoyé peut être marqué comme payé")
	}

	reference := ""
	if doc.Reference != nil {
		reference = *doc.Reference
	}
	income := enum.DirectionIncome
	tx := &entity.Transaction{
		Date:           today(),
		Amount:         doc.TotalHT,
		Direction:      income,
		Label:          fmt.Sprintf("Paiement %s", reference),
		PaymentMethod:  doc.PaymentMethod,
		DocumentID:     &doc.ID,
		ContactID:      &doc.ContactID,
		FiscalCategory: mainCategory(doc),
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, nil, err
	}

	updated, err := s.docRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, tx, nil
}

// CancelResult is the outcome of a cancel operation
type CancelResult struct {
	Deleted    bool             `json:"deleted"`
	Document   *entity.Document `json:"document,omitempty"`
	CreditNote *entity.Document `json:"credit_note,omitempty"`
}

// CancelDocument cancels a document. Drafts are hard deleted; sent and
// paid documents become CANCELLED and spawn a draft credit note.
func (s *DocumentService) CancelDocument(ctx context.Context, id uuid.UUID) (*CancelResult, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}

	if doc.Status == enum.DocStatusDraft {
		if err := s.docRepo.Delete(ctx, id); err != nil {
			return nil, err
		}
		return &CancelResult{Deleted: true}, nil
	}

	if doc.Status == enum.DocStatusCancelled {
		return nil, apperror.NewConflictError("Ce document est déjà annulé")
	}

	ok, err := s.docRepo.UpdateStatusIf(ctx, id, doc.Status, enum.DocStatusCancelled, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Ce document est déjà annulé")
	}
	doc.Status = enum.DocStatusCancelled

	reference := ""
	if doc.Reference != nil {
		reference = *doc.Reference
	}
	notes := fmt.Sprintf("Avoir pour annulation de %s", reference)
	creditNote := &entity.Document{
		ContactID:      doc.ContactID,
		DocType:        enum.DocTypeCreditNote,
		Status:         enum.DocStatusDraft,
		QuoteID:        &doc.ID,
		IssuedDate:     today(),
		TotalHT:        doc.TotalHT,
		TotalBicVente:  doc.TotalBicVente,
		TotalBicPresta: doc.TotalBicPresta,
		TotalBnc:       doc.TotalBnc,
		Notes:          &notes,
	}
	if err := s.docRepo.Create(ctx, creditNote); err != nil {
		return nil, err
	}

	return &CancelResult{Document: doc, CreditNote: creditNote}, nil
}

// ConvertQuote creates a draft invoice from a quote, copying its lines
func (s *DocumentService) ConvertQuote(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	quote, err := s.docRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Devis")
	}
	if quote.DocType != enum.DocTypeQuote {
		return nil, apperror.NewConflictError("Seul un devis peut être converti en facture")
	}

	invoice := &entity.Document{
		ContactID:        quote.ContactID,
		DocType:          enum.DocTypeInvoice,
		Status:           enum.DocStatusDraft,
		QuoteID:          &quote.ID,
		IssuedDate:       today(),
		PaymentMethod:    quote.PaymentMethod,
		PaymentTermsDays: quote.PaymentTermsDays,
		TotalHT:          quote.TotalHT,
		TotalBicVente:    quote.TotalBicVente,
		TotalBicPresta:   quote.TotalBicPresta,
		TotalBnc:         quote.TotalBnc,
		Notes:            quote.Notes,
		Terms:            quote.Terms,
		FooterText:       quote.FooterText,
	}
	if err := s.docRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if len(quote.Lines) > 0 {
		lines := make([]entity.DocumentLine, 0, len(quote.Lines))
		for i, line := range quote.Lines {
			lines = append(lines, entity.DocumentLine{
				Position:       i + 1,
				Description:    line.Description,
				Quantity:       line.Quantity,
				Unit:           line.Unit,
				UnitPrice:      line.UnitPrice,
				Total:          line.Total,
				FiscalCategory: line.FiscalCategory,
			})
		}
		if err := s.lineRepo.ReplaceForDocument(ctx, invoice.ID, lines); err != nil {
			return nil, err
		}
	}

	return s.docRepo.GetWithLines(ctx, invoice.ID)
}

// GetDocumentPdf returns the stored PDF snapshot of a sent document
func (s *DocumentService) GetDocumentPdf(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if doc == nil {
		return nil, "", apperror.NewNotFoundError("Document")
	}
	if doc.Status == enum.DocStatusDraft {
		return nil, "", apperror.NewConflictError("Le PDF n'est disponible qu'après l'envoi du document")
	}

	data, _, err := s.store.Get(fmt.Sprintf("documents/%s.pdf", id))
	if err != nil {
		return nil, "", apperror.NewNotFoundError("Fichier PDF")
	}

	filename := fmt.Sprintf("%s.pdf", id)
	if doc.Reference != nil {
		filename = fmt.Sprintf("%s.pdf", *doc.Reference)
	}
	return data, filename, nil
}

func (s *DocumentService) renderAndStorePdf(doc *entity.Document, settings *entity.Settings) error {
	data := buildPdfData(doc, settings)

	if settings.LogoKey != nil {
		logo, mime, err := s.store.Get(*settings.LogoKey)
		if err == nil {
			data.Logo = logo
			data.LogoMime = mime
		}
	}

	pdf, err := s.renderer.Document(data)
	if err != nil {
		return err
	}
	return s.store.Put(fmt.Sprintf("documents/%s.pdf", doc.ID), pdf, "application/pdf")
}

func buildPdfData(doc *entity.Document, settings *entity.Settings) pdfgen.DocumentData {
	data := pdfgen.DocumentData{
		TypeLabel:      doc.DocType.Label(),
		IsInvoice:      doc.DocType == enum.DocTypeInvoice,
		IssuedDate:     doc.IssuedDate,
		TotalHT:        doc.TotalHT,
		TotalBicVente:  doc.TotalBicVente,
		TotalBicPresta: doc.TotalBicPresta,
		TotalBnc:       doc.TotalBnc,
		Issuer: pdfgen.IssuerInfo{
			CompanyName:   settings.CompanyName,
			Siret:         settings.Siret,
			AddressLine1:  settings.AddressLine1,
			AddressLine2:  deref(settings.AddressLine2),
			PostalCode:    settings.PostalCode,
			City:          settings.City,
			Phone:         deref(settings.Phone),
			Email:         settings.Email,
			BankIban:      deref(settings.BankIban),
			BankBic:       deref(settings.BankBic),
			VatExemptText: settings.VatExemptText,
		},
	}
	if data.Issuer.VatExemptText == "" {
		data.Issuer.VatExemptText = entity.DefaultVatExemptText
	}
	if doc.Reference != nil {
		data.Reference = *doc.Reference
	}
	if doc.DueDate != nil {
		data.DueDate = *doc.DueDate
	}
	if doc.PaymentMethod != nil {
		data.PaymentMethod = doc.PaymentMethod.Label()
	}
	if doc.PaymentTermsDays != nil {
		data.PaymentTermsDays = *doc.PaymentTermsDays
	}
	data.Notes = deref(doc.Notes)
	data.Terms = deref(doc.Terms)
	data.FooterText = deref(doc.FooterText)

	if doc.Contact != nil {
		data.Recipient = pdfgen.RecipientInfo{
			DisplayName:  doc.Contact.DisplayName,
			LegalName:    deref(doc.Contact.LegalName),
			AddressLine1: deref(doc.Contact.AddressLine1),
			AddressLine2: deref(doc.Contact.AddressLine2),
			PostalCode:   deref(doc.Contact.PostalCode),
			City:         deref(doc.Contact.City),
			Siren:        deref(doc.Contact.Siren),
		}
	}

	for _, line := range doc.Lines {
		data.Lines = append(data.Lines, pdfgen.LineData{
			Description:   line.Description,
			Quantity:      line.Quantity,
			Unit:          deref(line.Unit),
			UnitPrice:     line.UnitPrice,
			Total:         line.Total,
			CategoryLabel: line.FiscalCategory.Label(),
		})
	}

	return data
}

func buildLines(inputs []DocumentLineInput) []entity.DocumentLine {
	lines := make([]entity.DocumentLine, 0, len(inputs))
	for i, in := range inputs {
		lines = append(lines, entity.DocumentLine{
			Position:       i + 1,
			Description:    in.Description,
			Quantity:       in.Quantity,
			Unit:           in.Unit,
			UnitPrice:      in.UnitPrice,
			Total:          round2(in.Quantity * in.UnitPrice),
			FiscalCategory: in.FiscalCategory,
		})
	}
	return lines
}

func computeTotals(lines []entity.DocumentLine) (float64, map[enum.FiscalCategory]float64) {
	byCategory := map[enum.FiscalCategory]float64{}
	var total float64
	for _, line := range lines {
		total += line.Total
		byCategory[line.FiscalCategory] += line.Total
	}
	for cat, sum := range byCategory {
		byCategory[cat] = round2(sum)
	}
	return round2(total), byCategory
}

// mainCategory is the dominant fiscal category of a document, used when
// the payment transaction is created. Ties go to the first category in
// declaration order.
func mainCategory(doc *entity.Document) *enum.FiscalCategory {
	totals := map[enum.FiscalCategory]float64{
		enum.FiscalBicVente:  doc.TotalBicVente,
		enum.FiscalBicPresta: doc.TotalBicPresta,
		enum.FiscalBnc:       doc.TotalBnc,
	}

	best := enum.FiscalCategory("")
	bestAmount := 0.0
	for _, cat := range enum.FiscalCategories {
		if totals[cat] > bestAmount {
			best = cat
			bestAmount = totals[cat]
		}
	}
	if best == "" {
		return nil
	}
	return &best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
