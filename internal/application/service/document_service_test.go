package service

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	domainRepo "github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"github.com/mlegall/facturio-api/pkg/pdfgen"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

func newDocumentService(db *gorm.DB) *DocumentService {
	store := storage.NewFileStore(afero.NewMemMapFs(), "storage")
	return NewDocumentService(
		repository.NewDocumentRepository(db),
		repository.NewDocumentLineRepository(db),
		repository.NewSequenceRepository(db),
		repository.NewContactRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewSettingsRepository(db),
		store,
		pdfgen.NewRenderer(),
	)
}

func createDraft(t *testing.T, svc *DocumentService, contact *entity.Contact, docType enum.DocType) *entity.Document {
	t.Helper()

	doc, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ContactID: contact.ID,
		DocType:   docType,
		Lines: []DocumentLineInput{
			{Description: "Prestation de développement", Quantity: 2, UnitPrice: 450, FiscalCategory: enum.FiscalBicPresta},
			{Description: "Vente de matériel", Quantity: 1, UnitPrice: 120.50, FiscalCategory: enum.FiscalBicVente},
		},
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	return doc
}

func TestCreateDocumentComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)

	if doc.Status != enum.DocStatusDraft {
		t.Errorf("status = %s, want DRAFT", doc.Status)
	}
	if doc.Reference != nil {
		t.Errorf("reference = %q, want nil on a draft", *doc.Reference)
	}
	if doc.TotalHT != 1020.50 {
		t.Errorf("total_ht = %v, want 1020.50", doc.TotalHT)
	}
	if doc.TotalBicPresta != 900 {
		t.Errorf("total_bic_presta = %v, want 900", doc.TotalBicPresta)
	}
	if doc.TotalBicVente != 120.50 {
		t.Errorf("total_bic_vente = %v, want 120.50", doc.TotalBicVente)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(doc.Lines))
	}
	if doc.Lines[0].Position != 1 || doc.Lines[1].Position != 2 {
		t.Errorf("line positions = %d, %d, want 1, 2", doc.Lines[0].Position, doc.Lines[1].Position)
	}
}

func TestCreateDocumentUnknownContact(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)

	_, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ContactID: uuid.New(),
		DocType:   enum.DocTypeInvoice,
		Lines:     []DocumentLineInput{{Description: "x", Quantity: 1, UnitPrice: 10, FiscalCategory: enum.FiscalBnc}},
	})
	if err == nil {
		t.Fatal("expected an error for an unknown contact")
	}
}

func TestSendDocumentAssignsSequentialReferences(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)

	year := time.Now().Year()
	pattern := regexp.MustCompile(fmt.Sprintf(`^FAC-%d-\d{4}$`, year))

	first := createDraft(t, svc, contact, enum.DocTypeInvoice)
	second := createDraft(t, svc, contact, enum.DocTypeInvoice)

	sent1, err := svc.SendDocument(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}
	sent2, err := svc.SendDocument(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}

	if sent1.Reference == nil || sent2.Reference == nil {
		t.Fatal("sent documents must carry a reference")
	}
	if !pattern.MatchString(*sent1.Reference) {
		t.Errorf("reference %q does not match %s", *sent1.Reference, pattern)
	}
	want1 := fmt.Sprintf("FAC-%d-0001", year)
	want2 := fmt.Sprintf("FAC-%d-0002", year)
	if *sent1.Reference != want1 || *sent2.Reference != want2 {
		t.Errorf("references = %q, %q, want %q, %q", *sent1.Reference, *sent2.Reference, want1, want2)
	}
	if sent1.Status != enum.DocStatusSent {
		t.Errorf("status = %s, want SENT", sent1.Status)
	}
}

func TestSendDocumentUsesTypePrefix(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)

	year := time.Now().Year()

	quote := createDraft(t, svc, contact, enum.DocTypeQuote)
	invoice := createDraft(t, svc, contact, enum.DocTypeInvoice)

	sentQuote, err := svc.SendDocument(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("SendDocument quote: %v", err)
	}
	sentInvoice, err := svc.SendDocument(context.Background(), invoice.ID)
	if err != nil {
		t.Fatalf("SendDocument invoice: %v", err)
	}

	// Counters are independent per type: both start at 0001
	if want := fmt.Sprintf("DEV-%d-0001", year); *sentQuote.Reference != want {
		t.Errorf("quote reference = %q, want %q", *sentQuote.Reference, want)
	}
	if want := fmt.Sprintf("FAC-%d-0001", year); *sentInvoice.Reference != want {
		t.Errorf("invoice reference = %q, want %q", *sentInvoice.Reference, want)
	}
}

func TestSendDocumentRejectsNonDraft(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)
	if _, err := svc.SendDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("SendDocument: %v", err)
	}

	_, err := svc.SendDocument(context.Background(), doc.ID)
	if !apperror.IsConflict(err) {
		t.Fatalf("expected a conflict, got %v", err)
	}

	reloaded, _ := svc.GetDocument(context.Background(), doc.ID)
	if reloaded.Status != enum.DocStatusSent {
		t.Errorf("status = %s, want SENT untouched", reloaded.Status)
	}
}

func TestMainCategoryTieBreaksInDeclarationOrder(t *testing.T) {
	doc := &entity.Document{TotalBicPresta: 500, TotalBnc: 500}
	if got := mainCategory(doc); got == nil || *got != enum.FiscalBicPresta {
		t.Errorf("mainCategory = %v, want BIC_PRESTA on a tie", got)
	}

	doc = &entity.Document{TotalBicVente: 100, TotalBnc: 100}
	if got := mainCategory(doc); got == nil || *got != enum.FiscalBicVente {
		t.Errorf("mainCategory = %v, want BIC_VENTE on a tie", got)
	}

	if got := mainCategory(&entity.Document{}); got != nil {
		t.Errorf("mainCategory = %v, want nil for an empty document", got)
	}
}

// staleDocumentRepo serves one document from a stale snapshot, the way a
// concurrent sender sees it before the other transition commits.
type staleDocumentRepo struct {
	domainRepo.DocumentRepository
	stale *entity.Document
}

func (r *staleDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	if id == r.stale.ID {
		snapshot := *r.stale
		return &snapshot, nil
	}
	return r.DocumentRepository.GetByID(ctx, id)
}

func TestSendDocumentLostRaceLeavesDocumentUntouched(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)
	sent, err := svc.SendDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}

	// A second sender still holds the draft snapshot, so the pre-check
	// passes and the conflict only surfaces at the conditional write.
	docRepo := repository.NewDocumentRepository(db)
	racer := NewDocumentService(
		&staleDocumentRepo{DocumentRepository: docRepo, stale: doc},
		repository.NewDocumentLineRepository(db),
		repository.NewSequenceRepository(db),
		repository.NewContactRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewSettingsRepository(db),
		storage.NewFileStore(afero.NewMemMapFs(), "storage"),
		pdfgen.NewRenderer(),
	)

	_, err = racer.SendDocument(context.Background(), doc.ID)
	if !apperror.IsConflict(err) {
		t.Fatalf("expected the losing sender to get a conflict, got %v", err)
	}

	after, err := docRepo.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if after.Status != enum.DocStatusSent {
		t.Errorf("status = %s, want SENT untouched", after.Status)
	}
	if after.Reference == nil || *after.Reference != *sent.Reference {
		t.Errorf("reference = %v, want %q untouched", after.Reference, *sent.Reference)
	}

	// the loser drew a reference before losing; that number stays burned
	next := createDraft(t, svc, contact, enum.DocTypeInvoice)
	resent, err := svc.SendDocument(context.Background(), next.ID)
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}
	if want := fmt.Sprintf("FAC-%d-0003", time.Now().Year()); *resent.Reference != want {
		t.Errorf("reference = %q, want %q", *resent.Reference, want)
	}
}

func TestPayDocumentCreatesIncomeTransaction(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)
	sent, err := svc.SendDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}

	paid, tx, err := svc.PayDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("PayDocument: %v", err)
	}

	if paid.Status != enum.DocStatusPaid {
		t.Errorf("status = %s, want PAID", paid.Status)
	}
	if tx == nil {
		t.Fatal("expected a payment transaction")
	}
	if tx.Direction != enum.DirectionIncome {
		t.Errorf("direction = %s, want INCOME", tx.Direction)
	}
	if tx.Amount != doc.TotalHT {
		t.Errorf("amount = %v, want %v", tx.Amount, doc.TotalHT)
	}
	if want := "Paiement " + *sent.Reference; tx.Label != want {
		t.Errorf("label = %q, want %q", tx.Label, want)
	}
	if tx.DocumentID == nil || *tx.DocumentID != doc.ID {
		t.Error("payment transaction must link back to the document")
	}
	// Dominant category of the test draft is BIC_PRESTA (900 over 120.50)
	if tx.FiscalCategory == nil || *tx.FiscalCategory != enum.FiscalBicPresta {
		t.Errorf("fiscal_category = %v, want BIC_PRESTA", tx.FiscalCategory)
	}

	var count int64
	db.Model(&entity.Transaction{}).Count(&count)
	if count != 1 {
		t.Errorf("transactions = %d, want exactly 1", count)
	}
}

func TestPayDocumentConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)
	ctx := context.Background()

	draft := createDraft(t, svc, contact, enum.DocTypeInvoice)
	if _, _, err := svc.PayDocument(ctx, draft.ID); !apperror.IsConflict(err) {
		t.Errorf("paying a draft: expected a conflict, got %v", err)
	}

	if _, err := svc.SendDocument(ctx, draft.ID); err != nil {
		t.Fatalf("SendDocument: %v", err)
	}
	if _, _, err := svc.PayDocument(ctx, draft.ID); err != nil {
		t.Fatalf("PayDocument: %v", err)
	}
	if _, _, err := svc.PayDocument(ctx, draft.ID); !apperror.IsConflict(err) {
		t.Errorf("paying twice: expected a conflict, got %v", err)
	}

	var count int64
	db.Model(&entity.Transaction{}).Count(&count)
	if count != 1 {
		t.Errorf("transactions = %d, want 1 despite the retries", count)
	}
}

func TestCancelDraftDeletes(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)

	result, err := svc.CancelDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("CancelDocument: %v", err)
	}
	if !result.Deleted {
		t.Error("cancelling a draft must delete it")
	}

	var docs, lines int64
	db.Model(&entity.Document{}).Count(&docs)
	db.Model(&entity.DocumentLine{}).Count(&lines)
	if docs != 0 || lines != 0 {
		t.Errorf("documents = %d, lines = %d, want both 0", docs, lines)
	}
}

func TestCancelSentCreatesCreditNote(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)
	ctx := context.Background()

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)
	sent, err := svc.SendDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}

	result, err := svc.CancelDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("CancelDocument: %v", err)
	}
	if result.Deleted {
		t.Fatal("a sent document must not be deleted")
	}
	if result.Document.Status != enum.DocStatusCancelled {
		t.Errorf("status = %s, want CANCELLED", result.Document.Status)
	}

	note := result.CreditNote
	if note == nil {
		t.Fatal("expected a draft credit note")
	}
	if note.DocType != enum.DocTypeCreditNote || note.Status != enum.DocStatusDraft {
		t.Errorf("credit note = %s/%s, want CREDIT_NOTE/DRAFT", note.DocType, note.Status)
	}
	if note.Reference != nil {
		t.Error("credit note must stay unnumbered until sent")
	}
	if note.TotalHT != doc.TotalHT {
		t.Errorf("credit note total = %v, want %v", note.TotalHT, doc.TotalHT)
	}
	if note.QuoteID == nil || *note.QuoteID != doc.ID {
		t.Error("credit note must link back to the cancelled document")
	}
	if want := "Avoir pour annulation de " + *sent.Reference; note.Notes == nil || *note.Notes != want {
		t.Errorf("notes = %v, want %q", note.Notes, want)
	}
}

func TestCancelCancelledConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)
	ctx := context.Background()

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)
	if _, err := svc.SendDocument(ctx, doc.ID); err != nil {
		t.Fatalf("SendDocument: %v", err)
	}
	if _, err := svc.CancelDocument(ctx, doc.ID); err != nil {
		t.Fatalf("CancelDocument: %v", err)
	}

	if _, err := svc.CancelDocument(ctx, doc.ID); !apperror.IsConflict(err) {
		t.Errorf("expected a conflict, got %v", err)
	}
}

func TestConvertQuoteCopiesLines(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)

	quote := createDraft(t, svc, contact, enum.DocTypeQuote)

	invoice, err := svc.ConvertQuote(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("ConvertQuote: %v", err)
	}

	if invoice.DocType != enum.DocTypeInvoice || invoice.Status != enum.DocStatusDraft {
		t.Errorf("invoice = %s/%s, want INVOICE/DRAFT", invoice.DocType, invoice.Status)
	}
	if invoice.QuoteID == nil || *invoice.QuoteID != quote.ID {
		t.Error("invoice must link back to its quote")
	}
	if invoice.TotalHT != quote.TotalHT {
		t.Errorf("total = %v, want %v", invoice.TotalHT, quote.TotalHT)
	}
	if len(invoice.Lines) != len(quote.Lines) {
		t.Fatalf("lines = %d, want %d", len(invoice.Lines), len(quote.Lines))
	}
	for i, line := range invoice.Lines {
		if line.Description != quote.Lines[i].Description || line.Total != quote.Lines[i].Total {
			t.Errorf("line %d differs from the quote", i)
		}
		if line.ID == quote.Lines[i].ID {
			t.Errorf("line %d must be a fresh row", i)
		}
	}

	// The quote itself is untouched
	reloaded, _ := svc.GetDocument(context.Background(), quote.ID)
	if reloaded.DocType != enum.DocTypeQuote {
		t.Errorf("quote doc_type = %s, want QUOTE", reloaded.DocType)
	}
}

func TestConvertRejectsNonQuote(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)

	invoice := createDraft(t, svc, contact, enum.DocTypeInvoice)

	if _, err := svc.ConvertQuote(context.Background(), invoice.ID); !apperror.IsConflict(err) {
		t.Errorf("expected a conflict, got %v", err)
	}
}

func TestUpdateDocumentReplacesLines(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)

	updated, err := svc.UpdateDocument(context.Background(), &UpdateDocumentInput{
		ID:    doc.ID,
		Notes: strPtr("Acompte reçu"),
		Lines: []DocumentLineInput{
			{Description: "Forfait unique", Quantity: 1, UnitPrice: 300, FiscalCategory: enum.FiscalBnc},
		},
		ReplaceLines: true,
	})
	if err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}

	if len(updated.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(updated.Lines))
	}
	if updated.TotalHT != 300 || updated.TotalBnc != 300 {
		t.Errorf("totals = %v/%v, want 300/300", updated.TotalHT, updated.TotalBnc)
	}
	if updated.TotalBicPresta != 0 || updated.TotalBicVente != 0 {
		t.Error("old category totals must be reset")
	}
	if updated.Notes == nil || *updated.Notes != "Acompte reçu" {
		t.Errorf("notes = %v, want Acompte reçu", updated.Notes)
	}
}

func TestUpdateDocumentRejectsNonDraft(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)
	ctx := context.Background()

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)
	if _, err := svc.SendDocument(ctx, doc.ID); err != nil {
		t.Fatalf("SendDocument: %v", err)
	}

	_, err := svc.UpdateDocument(ctx, &UpdateDocumentInput{ID: doc.ID, Notes: strPtr("après coup")})
	if !apperror.IsConflict(err) {
		t.Errorf("expected a conflict, got %v", err)
	}
}

func TestGetDocumentPdf(t *testing.T) {
	db := setupTestDB(t)
	svc := newDocumentService(db)
	contact := seedContact(t, db)
	seedSettings(t, db)
	ctx := context.Background()

	doc := createDraft(t, svc, contact, enum.DocTypeInvoice)

	// Draft first: no PDF before the send transition
	if _, _, err := svc.GetDocumentPdf(ctx, doc.ID); !apperror.IsConflict(err) {
		t.Fatalf("expected a conflict on a draft, got %v", err)
	}

	sent, err := svc.SendDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}

	data, filename, err := svc.GetDocumentPdf(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocumentPdf: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("stored snapshot is not a PDF")
	}
	if want := *sent.Reference + ".pdf"; filename != want {
		t.Errorf("filename = %q, want %q", filename, want)
	}
}
