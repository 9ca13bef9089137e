package pdfgen

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234.56, "1 234,56 EUR"},
		{0, "0,00 EUR"},
		{-50, "-50,00 EUR"},
		{1500.5, "1 500,50 EUR"},
		{1000000, "1 000 000,00 EUR"},
		{999.999, "1 000,00 EUR"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-02-07"); got != "07/02/2026" {
		t.Errorf("FormatDate = %q, want 07/02/2026", got)
	}
	if got := FormatDate("garbage"); got != "garbage" {
		t.Errorf("FormatDate should pass through non-ISO input, got %q", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := FormatQuantity(3); got != "3" {
		t.Errorf("FormatQuantity(3) = %q", got)
	}
	if got := FormatQuantity(2.5); got != "2,50" {
		t.Errorf("FormatQuantity(2.5) = %q", got)
	}
}

func TestDocumentRendersPdf(t *testing.T) {
	r := NewRenderer()
	data := DocumentData{
		TypeLabel:  "FACTURE",
		IsInvoice:  true,
		Reference:  "FAC-2026-0001",
		IssuedDate: "2026-02-07",
		TotalHT:    150,
		Issuer: IssuerInfo{
			CompanyName:   "Atelier Dupont",
			Siret:         "12345678900012",
			AddressLine1:  "1 rue de la Paix",
			PostalCode:    "75001",
			City:          "Paris",
			Email:         "contact@atelier.fr",
			VatExemptText: "TVA non applicable, art. 293 B du CGI",
		},
		Recipient: RecipientInfo{DisplayName: "Client Test"},
		Lines: []LineData{
			{Description: "Prestation", Quantity: 1, UnitPrice: 150, Total: 150, CategoryLabel: "BIC Presta"},
		},
	}
	out, err := r.Document(data)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if len(out) < 4 || string(out[:4]) != "%PDF" {
		t.Fatalf("output is not a PDF, got %d bytes", len(out))
	}
}

func TestCessionRendersPdf(t *testing.T) {
	r := NewRenderer()
	out, err := r.Cession(CessionData{
		Issuer: IssuerInfo{CompanyName: "Atelier Dupont", Siret: "12345678900012", AddressLine1: "1 rue de la Paix", PostalCode: "75001", City: "Paris"},
		Seller: RecipientInfo{DisplayName: "Jean Martin"},
		Date:   "2026-01-15",
		Amount: 80,
		Label:  "Vélo d'occasion",
	})
	if err != nil {
		t.Fatalf("Cession: %v", err)
	}
	if len(out) < 4 || string(out[:4]) != "%PDF" {
		t.Fatalf("output is not a PDF, got %d bytes", len(out))
	}
}
