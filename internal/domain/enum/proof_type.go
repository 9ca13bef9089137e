package enum

// ProofType classifies an evidentiary file in a second-hand proof bundle
type ProofType string

const (
	ProofScreenshotAd ProofType = "SCREENSHOT_AD"
	ProofPayment      ProofType = "PAYMENT_PROOF"
	ProofCessionCert  ProofType = "CESSION_CERT"
	ProofInvoice      ProofType = "INVOICE"
	ProofOther        ProofType = "OTHER"
)

// Valid reports whether the value is a known proof type
func (t ProofType) Valid() bool {
	switch t {
	case ProofScreenshotAd, ProofPayment, ProofCessionCert, ProofInvoice, ProofOther:
		return true
	}
	return false
}
