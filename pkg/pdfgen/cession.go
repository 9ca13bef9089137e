package pdfgen

import (
	"bytes"
	"fmt"
)

func (r *fpdfRenderer) Cession(data CessionData) ([]byte, error) {
	pdf, tr := newPage()

	pdf.SetFont("Helvetica", "B", 19)
	setPrimary(pdf)
	pdf.CellFormat(contentWidth, 10, tr("CERTIFICAT DE CESSION"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	setGray(pdf)
	pdf.CellFormat(contentWidth, 6, tr("Achat d'occasion auprès d'un particulier"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(30, 64, 150)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	setBlack(pdf)
	pdf.CellFormat(contentWidth, 6, tr("Entre les soussignés :"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	setPrimary(pdf)
	pdf.CellFormat(contentWidth, 6, tr("LE VENDEUR :"), "", 1, "L", false, 0, "")
	setBlack(pdf)
	pdf.SetX(pageMargin + 8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth-8, 5, tr(data.Seller.DisplayName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		data.Seller.AddressLine1,
		data.Seller.AddressLine2,
		trimJoin(data.Seller.PostalCode, data.Seller.City),
	} {
		if line == "" {
			continue
		}
		pdf.SetX(pageMargin + 8)
		pdf.CellFormat(contentWidth-8, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	setPrimary(pdf)
	pdf.CellFormat(contentWidth, 6, tr("L'ACHETEUR :"), "", 1, "L", false, 0, "")
	setBlack(pdf)
	pdf.SetX(pageMargin + 8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth-8, 5, tr(data.Issuer.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		"SIRET : " + data.Issuer.Siret,
		data.Issuer.AddressLine1,
		data.Issuer.AddressLine2,
		data.Issuer.PostalCode + " " + data.Issuer.City,
	} {
		if line == "" {
			continue
		}
		pdf.SetX(pageMargin + 8)
		pdf.CellFormat(contentWidth-8, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth, 6, tr("Il a été convenu ce qui suit :"), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentWidth, 5.5, tr("Le vendeur cède à l'acheteur le bien suivant :"), "", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.SetX(pageMargin + 8)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(contentWidth-8, 5.5, tr(data.Label), "", "L", false)
	if data.Notes != "" {
		pdf.SetX(pageMargin + 8)
		pdf.SetFont("Helvetica", "", 10)
		setGray(pdf)
		pdf.MultiCell(contentWidth-8, 5, tr(data.Notes), "", "L", false)
		setBlack(pdf)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentWidth, 7, tr("Pour le prix de : "+FormatCurrency(data.Amount)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentWidth, 6, tr("Date de la transaction : "+FormatDate(data.Date)), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.Ln(8)

	pdf.CellFormat(contentWidth, 6, tr(fmt.Sprintf("Fait à %s, le %s", data.Issuer.City, FormatDate(data.Date))), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	half := contentWidth / 2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, 5, tr("Signature du vendeur :"), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, tr("Signature de l'acheteur :"), "", 1, "L", false, 0, "")
	pdf.Ln(24)
	pdf.SetDrawColor(0, 0, 0)
	y := pdf.GetY()
	pdf.Line(pageMargin, y, pageMargin+60, y)
	pdf.Line(pageMargin+half, y, pageMargin+half+60, y)

	pdf.SetY(-pageMargin - 12)
	pdf.SetFont("Helvetica", "", 8)
	setGray(pdf)
	pdf.CellFormat(contentWidth, 4, tr("Ce document atteste de la cession du bien décrit ci-dessus entre les parties mentionnées."), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, 4, tr("Article 321-1 du Code pénal - Tout achat d'occasion doit être traçable."), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
