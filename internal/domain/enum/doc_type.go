package enum

// DocType represents the kind of commercial document
type DocType string

const (
	DocTypeQuote      DocType = "QUOTE"
	DocTypeInvoice    DocType = "INVOICE"
	DocTypeCreditNote DocType = "CREDIT_NOTE"
)

// Valid reports whether the value is a known document type
func (t DocType) Valid() bool {
	switch t {
	case DocTypeQuote, DocTypeInvoice, DocTypeCreditNote:
		return true
	}
	return false
}

// Prefix returns the legal numbering prefix for the document type
func (t DocType) Prefix() string {
	switch t {
	case DocTypeInvoice:
		return "FAC-"
	case DocTypeQuote:
		return "DEV-"
	case DocTypeCreditNote:
		return "AV-"
	}
	return ""
}

// Label returns the French heading printed on PDFs
func (t DocType) Label() string {
	switch t {
	case DocTypeInvoice:
		return "FACTURE"
	case DocTypeQuote:
		return "DEVIS"
	case DocTypeCreditNote:
		return "AVOIR"
	}
	return string(t)
}
