package enum

// PaymentMethod represents how a document or transaction is settled
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCash         PaymentMethod = "CASH"
	PaymentCheck        PaymentMethod = "CHECK"
	PaymentCard         PaymentMethod = "CARD"
	PaymentPaypal       PaymentMethod = "PAYPAL"
	PaymentOther        PaymentMethod = "OTHER"
)

// Valid reports whether the value is a known payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentBankTransfer, PaymentCash, PaymentCheck, PaymentCard, PaymentPaypal, PaymentOther:
		return true
	}
	return false
}

// Label returns the French label printed on PDFs
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentBankTransfer:
		return "Virement bancaire"
	case PaymentCash:
		return "Espèces"
	case PaymentCheck:
		return "Chèque"
	case PaymentCard:
		return "Carte bancaire"
	case PaymentPaypal:
		return "PayPal"
	case PaymentOther:
		return "Autre"
	}
	return ""
}
