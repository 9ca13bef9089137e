package pdfgen

import (
	"fmt"
	"math"
	"strings"
)

// LatePenaltyText is the mandatory late payment notice on invoices.
const LatePenaltyText = "En cas de retard de paiement, une pénalité égale à 3 fois le taux d'intérêt légal sera exigée (article L.441-10 du Code de commerce). Une indemnité forfaitaire de 40€ pour frais de recouvrement sera également due (article D.441-5 du Code de commerce)."

// FormatCurrency renders an amount as "1 234,56 EUR"
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 || (amount == 0 && math.Signbit(amount)) {
		sign = "-"
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}

	return fmt.Sprintf("%s%s,%02d EUR", sign, b.String(), frac)
}

// FormatDate converts an ISO date (YYYY-MM-DD) to the French DD/MM/YYYY form.
// Inputs that are not ISO dates are returned unchanged.
func FormatDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return fmt.Sprintf("%s/%s/%s", parts[2], parts[1], parts[0])
}

// FormatQuantity renders a quantity without decimals when whole, with two otherwise
func FormatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return fmt.Sprintf("%d", int64(q))
	}
	return strings.Replace(fmt.Sprintf("%.2f", q), ".", ",", 1)
}
