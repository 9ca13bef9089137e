package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

const (
	pageMargin   = 15.0
	contentWidth = 210.0 - 2*pageMargin
)

type fpdfRenderer struct{}

// NewRenderer returns a Renderer backed by gofpdf.
func NewRenderer() Renderer {
	return &fpdfRenderer{}
}

func newPage() (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return pdf, tr
}

func setPrimary(pdf *gofpdf.Fpdf) { pdf.SetTextColor(30, 64, 150) }
func setGray(pdf *gofpdf.Fpdf)    { pdf.SetTextColor(110, 110, 110) }
func setBlack(pdf *gofpdf.Fpdf)   { pdf.SetTextColor(0, 0, 0) }

func (r *fpdfRenderer) Document(data DocumentData) ([]byte, error) {
	pdf, tr := newPage()

	topY := pdf.GetY()

	// Logo, scaled into a 40x20mm box
	leftY := topY
	if len(data.Logo) > 0 {
		imgType := ""
		switch data.LogoMime {
		case "image/png":
			imgType = "PNG"
		case "image/jpeg", "image/jpg":
			imgType = "JPG"
		}
		if imgType != "" {
			opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
			info := pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data.Logo))
			if info != nil && pdf.Ok() {
				w, h := fitBox(info.Width(), info.Height(), 40, 20)
				pdf.ImageOptions("logo", pageMargin, leftY, w, h, false, opts, 0, "")
				leftY += h + 3
			}
		}
	}

	// Issuer block
	pdf.SetXY(pageMargin, leftY)
	pdf.SetFont("Helvetica", "B", 13)
	setPrimary(pdf)
	pdf.CellFormat(100, 6, tr(data.Issuer.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	setGray(pdf)
	issuerLines := []string{data.Issuer.AddressLine1}
	if data.Issuer.AddressLine2 != "" {
		issuerLines = append(issuerLines, data.Issuer.AddressLine2)
	}
	issuerLines = append(issuerLines, data.Issuer.PostalCode+" "+data.Issuer.City)
	issuerLines = append(issuerLines, "SIRET : "+data.Issuer.Siret)
	if data.Issuer.Phone != "" {
		issuerLines = append(issuerLines, "Tél : "+data.Issuer.Phone)
	}
	issuerLines = append(issuerLines, data.Issuer.Email)
	for _, line := range issuerLines {
		pdf.CellFormat(100, 4.5, tr(line), "", 1, "L", false, 0, "")
	}
	leftY = pdf.GetY()

	// Type and reference, right aligned
	pdf.SetXY(pageMargin, topY)
	pdf.SetFont("Helvetica", "B", 17)
	setPrimary(pdf)
	pdf.CellFormat(contentWidth, 8, tr(data.TypeLabel), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	setBlack(pdf)
	ref := data.Reference
	if ref == "" {
		ref = "Brouillon"
	}
	pdf.CellFormat(contentWidth, 6, tr("N° "+ref), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	setGray(pdf)
	pdf.CellFormat(contentWidth, 5, tr("Date : "+FormatDate(data.IssuedDate)), "", 1, "R", false, 0, "")
	if data.DueDate != "" {
		pdf.CellFormat(contentWidth, 5, tr("Échéance : "+FormatDate(data.DueDate)), "", 1, "R", false, 0, "")
	}
	rightY := pdf.GetY()

	y := leftY
	if rightY > y {
		y = rightY
	}
	y += 8

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pageMargin, y, pageMargin+contentWidth, y)
	y += 6

	// Recipient block, indented right
	recipientX := pageMargin + contentWidth - 80
	pdf.SetXY(recipientX, y)
	pdf.SetFont("Helvetica", "B", 9)
	setGray(pdf)
	pdf.CellFormat(80, 4.5, tr("Destinataire"), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	setBlack(pdf)
	pdf.CellFormat(80, 5.5, tr(data.Recipient.DisplayName), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if data.Recipient.LegalName != "" && data.Recipient.LegalName != data.Recipient.DisplayName {
		setGray(pdf)
		pdf.CellFormat(80, 4.5, tr(data.Recipient.LegalName), "", 2, "L", false, 0, "")
		setBlack(pdf)
	}
	if data.Recipient.AddressLine1 != "" {
		pdf.CellFormat(80, 4.5, tr(data.Recipient.AddressLine1), "", 2, "L", false, 0, "")
	}
	if data.Recipient.AddressLine2 != "" {
		pdf.CellFormat(80, 4.5, tr(data.Recipient.AddressLine2), "", 2, "L", false, 0, "")
	}
	if data.Recipient.PostalCode != "" || data.Recipient.City != "" {
		pdf.CellFormat(80, 4.5, tr(trimJoin(data.Recipient.PostalCode, data.Recipient.City)), "", 2, "L", false, 0, "")
	}
	if data.Recipient.Siren != "" {
		setGray(pdf)
		pdf.CellFormat(80, 4.5, tr("SIREN : "+data.Recipient.Siren), "", 2, "L", false, 0, "")
	}
	y = pdf.GetY() + 10

	// Line table
	colW := []float64{68, 16, 16, 26, 28, 26}
	headers := []string{"Description", "Qté", "Unité", "Prix unit.", "Catégorie", "Total HT"}

	pdf.SetXY(pageMargin, y)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(30, 64, 150)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 7, tr(h), "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	setBlack(pdf)
	pdf.SetFillColor(243, 244, 246)
	for i, line := range data.Lines {
		fill := i%2 == 0
		pdf.CellFormat(colW[0], 7, tr(line.Description), "", 0, "L", fill, 0, "")
		pdf.CellFormat(colW[1], 7, FormatQuantity(line.Quantity), "", 0, "L", fill, 0, "")
		pdf.CellFormat(colW[2], 7, tr(line.Unit), "", 0, "L", fill, 0, "")
		pdf.CellFormat(colW[3], 7, tr(FormatCurrency(line.UnitPrice)), "", 0, "L", fill, 0, "")
		pdf.CellFormat(colW[4], 7, tr(line.CategoryLabel), "", 0, "L", fill, 0, "")
		pdf.CellFormat(colW[5], 7, tr(FormatCurrency(line.Total)), "", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetDrawColor(30, 64, 150)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.Ln(2)

	// Per-category subtotals, only for mixed documents
	nonZero := 0
	for _, t := range []float64{data.TotalBicVente, data.TotalBicPresta, data.TotalBnc} {
		if t > 0 {
			nonZero++
		}
	}
	labelX := pageMargin + colW[0] + colW[1] + colW[2] + colW[3]
	if nonZero > 1 {
		subtotals := []struct {
			label string
			value float64
		}{
			{"BIC Vente :", data.TotalBicVente},
			{"BIC Presta :", data.TotalBicPresta},
			{"BNC :", data.TotalBnc},
		}
		for _, st := range subtotals {
			if st.value <= 0 {
				continue
			}
			pdf.SetX(labelX)
			pdf.SetFont("Helvetica", "", 9)
			setGray(pdf)
			pdf.CellFormat(colW[4], 5.5, tr(st.label), "", 0, "L", false, 0, "")
			setBlack(pdf)
			pdf.CellFormat(colW[5], 5.5, tr(FormatCurrency(st.value)), "", 1, "R", false, 0, "")
		}
		pdf.Ln(1)
	}

	pdf.SetX(labelX)
	pdf.SetFont("Helvetica", "B", 11)
	setPrimary(pdf)
	pdf.CellFormat(colW[4], 8, "TOTAL HT", "", 0, "L", false, 0, "")
	setBlack(pdf)
	pdf.CellFormat(colW[5], 8, tr(FormatCurrency(data.TotalHT)), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.Ln(4)

	// Legal notices
	pdf.SetFont("Helvetica", "B", 9)
	setBlack(pdf)
	pdf.MultiCell(contentWidth, 4.5, tr(data.Issuer.VatExemptText), "", "L", false)
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 9)
	if data.PaymentMethod != "" {
		pdf.CellFormat(contentWidth, 4.5, tr("Mode de paiement : "+data.PaymentMethod), "", 1, "L", false, 0, "")
	}
	if data.PaymentTermsDays > 0 {
		pdf.CellFormat(contentWidth, 4.5, tr(fmt.Sprintf("Conditions de paiement : %d jours", data.PaymentTermsDays)), "", 1, "L", false, 0, "")
	}
	if data.IsInvoice && data.Issuer.BankIban != "" {
		bank := "IBAN : " + data.Issuer.BankIban
		if data.Issuer.BankBic != "" {
			bank += "  |  BIC : " + data.Issuer.BankBic
		}
		pdf.CellFormat(contentWidth, 4.5, tr(bank), "", 1, "L", false, 0, "")
	}
	if data.IsInvoice {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 7)
		setGray(pdf)
		pdf.MultiCell(contentWidth, 3.5, tr(LatePenaltyText), "", "L", false)
		setBlack(pdf)
	}

	if data.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentWidth, 4.5, tr("Notes :"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentWidth, 4.5, tr(data.Notes), "", "L", false)
	}
	if data.Terms != "" {
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentWidth, 4.5, tr("Conditions particulières :"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentWidth, 4.5, tr(data.Terms), "", "L", false)
	}

	// Footer
	pdf.SetY(-pageMargin - 14)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 8)
	setGray(pdf)
	if data.FooterText != "" {
		pdf.CellFormat(contentWidth, 4, tr(data.FooterText), "", 1, "L", false, 0, "")
	}
	footer := data.Issuer.CompanyName + " - SIRET " + data.Issuer.Siret
	pdf.CellFormat(contentWidth, 4, tr(footer), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	return w * scale, h * scale
}

func trimJoin(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
