// Package pdfgen renders commercial documents and cession certificates as PDF.
package pdfgen

// IssuerInfo carries the company profile printed on every document.
type IssuerInfo struct {
	CompanyName   string
	Siret         string
	AddressLine1  string
	AddressLine2  string
	PostalCode    string
	City          string
	Phone         string
	Email         string
	BankIban      string
	BankBic       string
	VatExemptText string
}

// RecipientInfo carries the contact block of a document.
type RecipientInfo struct {
	DisplayName  string
	LegalName    string
	AddressLine1 string
	AddressLine2 string
	PostalCode   string
	City         string
	Siren        string
}

// LineData is one billing line of a document.
type LineData struct {
	Description   string
	Quantity      float64
	Unit          string
	UnitPrice     float64
	Total         float64
	CategoryLabel string
}

// DocumentData carries everything needed to render an invoice, quote or credit note.
type DocumentData struct {
	TypeLabel        string
	IsInvoice        bool
	Reference        string
	IssuedDate       string
	DueDate          string
	PaymentMethod    string
	PaymentTermsDays int
	TotalHT          float64
	TotalBicVente    float64
	TotalBicPresta   float64
	TotalBnc         float64
	Notes            string
	Terms            string
	FooterText       string

	Issuer    IssuerInfo
	Recipient RecipientInfo
	Lines     []LineData

	Logo     []byte
	LogoMime string
}

// CessionData carries everything needed to render a cession certificate.
type CessionData struct {
	Issuer IssuerInfo
	Seller RecipientInfo

	Date   string
	Amount float64
	Label  string
	Notes  string
}

// Renderer produces PDF bytes for the documents the application emits.
type Renderer interface {
	Document(data DocumentData) ([]byte, error)
	Cession(data CessionData) ([]byte, error)
}
