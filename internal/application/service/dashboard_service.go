package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// URSSAF yearly turnover ceilings per fiscal category (2024 figures)
var UrssafThresholds = map[enum.FiscalCategory]float64{
	enum.FiscalBicVente:  188700,
	enum.FiscalBicPresta: 77700,
	enum.FiscalBnc:       77700,
}

// UrssafWarningPercent is the ratio above which a threshold alert fires
const UrssafWarningPercent = 80.0

// DashboardService aggregates turnover for URSSAF declarations
type DashboardService struct {
	txRepo repository.TransactionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(txRepo repository.TransactionRepository) *DashboardService {
	return &DashboardService{txRepo: txRepo}
}

// UrssafAlert signals a fiscal category close to or above its ceiling
type UrssafAlert struct {
	Category  enum.FiscalCategory `json:"category"`
	Threshold float64             `json:"threshold"`
	Current   float64             `json:"current"`
	Percent   int                 `json:"percent"`
	Exceeded  bool                `json:"exceeded"`
}

// UrssafSummary is the declaration dashboard payload
type UrssafSummary struct {
	Period          string        `json:"period"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	BicVente        float64       `json:"bic_vente"`
	BicPresta       float64       `json:"bic_presta"`
	Bnc             float64       `json:"bnc"`
	YearlyBicVente  float64       `json:"yearly_bic_vente"`
	YearlyBicPresta float64       `json:"yearly_bic_presta"`
	YearlyBnc       float64       `json:"yearly_bnc"`
	Alerts          []UrssafAlert `json:"alerts"`
}

// Urssaf computes income per fiscal category for the declaration period
// (month or quarter) plus the cumulated yearly totals and threshold alerts.
func (s *DashboardService) Urssaf(ctx context.Context, year, month int, quarterly bool) (*UrssafSummary, error) {
	if month < 1 || month > 12 {
		return nil, apperror.NewFieldError("month", "Le mois doit être compris entre 1 et 12")
	}

	var startDate, endDate, period string
	if quarterly {
		quarter := (month + 2) / 3
		startMonth := (quarter-1)*3 + 1
		endMonth := startMonth + 2
		startDate = fmt.Sprintf("%d-%02d-01", year, startMonth)
		endDate = fmt.Sprintf("%d-%02d-%02d", year, endMonth, lastDayOfMonth(year, endMonth))
		period = fmt.Sprintf("T%d %d", quarter, year)
	} else {
		startDate = fmt.Sprintf("%d-%02d-01", year, month)
		endDate = fmt.Sprintf("%d-%02d-%02d", year, month, lastDayOfMonth(year, month))
		period = fmt.Sprintf("%02d/%d", month, year)
	}

	var periodTotals, yearTotals map[enum.FiscalCategory]float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		periodTotals, err = s.txRepo.SumByCategory(gctx, enum.DirectionIncome, startDate, endDate)
		return err
	})
	g.Go(func() error {
		var err error
		yearTotals, err = s.txRepo.SumByCategory(gctx, enum.DirectionIncome,
			fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-12-31", year))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &UrssafSummary{
		Period:          period,
		StartDate:       startDate,
		EndDate:         endDate,
		BicVente:        periodTotals[enum.FiscalBicVente],
		BicPresta:       periodTotals[enum.FiscalBicPresta],
		Bnc:             periodTotals[enum.FiscalBnc],
		YearlyBicVente:  yearTotals[enum.FiscalBicVente],
		YearlyBicPresta: yearTotals[enum.FiscalBicPresta],
		YearlyBnc:       yearTotals[enum.FiscalBnc],
		Alerts:          []UrssafAlert{},
	}

	for _, category := range enum.FiscalCategories {
		threshold := UrssafThresholds[category]
		current := yearTotals[category]
		percent := current / threshold * 100
		if percent >= UrssafWarningPercent {
			summary.Alerts = append(summary.Alerts, UrssafAlert{
				Category:  category,
				Threshold: threshold,
				Current:   current,
				Percent:   int(math.Round(percent)),
				Exceeded:  percent >= 100,
			})
		}
	}

	return summary, nil
}

// ExportCSV renders all transactions in the date range as a
// semicolon-separated file with French column headers.
func (s *DashboardService) ExportCSV(ctx context.Context, startDate, endDate string) ([]byte, string, error) {
	if startDate == "" || endDate == "" {
		return nil, "", apperror.NewFieldError("dates", "Les paramètres start_date et end_date sont requis")
	}

	txs, err := s.txRepo.ListInRange(ctx, startDate, endDate)
	if err != nil {
		return nil, "", err
	}

	var b strings.Builder
	b.WriteString("Date;Libellé;Direction;Montant;Catégorie fiscale;Moyen de paiement;Notes\n")
	for i, tx := range txs {
		if i > 0 {
			b.WriteByte('\n')
		}
		category := ""
		if tx.FiscalCategory != nil {
			category = string(*tx.FiscalCategory)
		}
		method := ""
		if tx.PaymentMethod != nil {
			method = string(*tx.PaymentMethod)
		}
		notes := ""
		if tx.Notes != nil {
			notes = *tx.Notes
		}
		fields := []string{
			tx.Date,
			csvQuote(tx.Label),
			tx.Direction.Label(),
			csvAmount(tx.Amount),
			category,
			method,
			csvQuote(notes),
		}
		b.WriteString(strings.Join(fields, ";"))
	}

	filename := fmt.Sprintf("facturio-export-%s-%s.csv", startDate, endDate)
	return []byte(b.String()), filename, nil
}

// csvAmount renders the amount with a French decimal comma and no
// trailing zero padding ("1500.5" becomes "1500,5").
func csvAmount(amount float64) string {
	return strings.Replace(strconv.FormatFloat(amount, 'f', -1, 64), ".", ",", 1)
}

// csvQuote wraps a text field in double quotes, doubling internal ones
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func lastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
