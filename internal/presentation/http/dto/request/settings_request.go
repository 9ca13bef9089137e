package request

import "github.com/mlegall/facturio-api/internal/domain/enum"

// UpdateSettingsRequest is the payload for patching the company profile
type UpdateSettingsRequest struct {
	Siret                *string                    `json:"siret"`
	CompanyName          *string                    `json:"company_name"`
	ActivityType         *enum.ActivityType         `json:"activity_type" binding:"omitempty,oneof=BIC_VENTE BIC_PRESTA BNC MIXED"`
	AddressLine1         *string                    `json:"address_line1"`
	AddressLine2         *string                    `json:"address_line2"`
	PostalCode           *string                    `json:"postal_code"`
	City                 *string                    `json:"city"`
	Phone                *string                    `json:"phone"`
	Email                *string                    `json:"email" binding:"omitempty,email"`
	BankIban             *string                    `json:"bank_iban"`
	BankBic              *string                    `json:"bank_bic"`
	VatExemptText        *string                    `json:"vat_exempt_text"`
	ActivityStartDate    *string                    `json:"activity_start_date"`
	DeclarationFrequency *enum.DeclarationFrequency `json:"declaration_frequency" binding:"omitempty,oneof=MONTHLY QUARTERLY"`
	DefaultPaymentTerms  *int                       `json:"default_payment_terms"`
	DefaultPaymentMethod *enum.PaymentMethod        `json:"default_payment_method"`
}
