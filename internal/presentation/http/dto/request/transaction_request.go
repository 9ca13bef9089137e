package request

import (
	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
)

// CreateTransactionRequest is the payload for creating a ledger entry
type CreateTransactionRequest struct {
	Date           string               `json:"date"`
	Amount         float64              `json:"amount" binding:"required"`
	Direction      enum.Direction       `json:"direction" binding:"required,oneof=INCOME EXPENSE"`
	Label          string               `json:"label" binding:"required"`
	FiscalCategory *enum.FiscalCategory `json:"fiscal_category" binding:"omitempty,oneof=BIC_VENTE BIC_PRESTA BNC"`
	PaymentMethod  *enum.PaymentMethod  `json:"payment_method"`
	DocumentID     *uuid.UUID           `json:"document_id"`
	ContactID      *uuid.UUID           `json:"contact_id"`
	IsSecondHand   bool                 `json:"is_second_hand"`
	Notes          *string              `json:"notes"`
}

// UpdateTransactionRequest is the payload for patching a ledger entry
type UpdateTransactionRequest struct {
	Date           *string              `json:"date"`
	Amount         *float64             `json:"amount"`
	Direction      *enum.Direction      `json:"direction" binding:"omitempty,oneof=INCOME EXPENSE"`
	Label          *string              `json:"label"`
	FiscalCategory *enum.FiscalCategory `json:"fiscal_category" binding:"omitempty,oneof=BIC_VENTE BIC_PRESTA BNC"`
	PaymentMethod  *enum.PaymentMethod  `json:"payment_method"`
	DocumentID     *uuid.UUID           `json:"document_id"`
	ContactID      *uuid.UUID           `json:"contact_id"`
	Notes          *string              `json:"notes"`
}

// ListTransactionsRequest holds the query filters of the ledger list
type ListTransactionsRequest struct {
	Page           int     `form:"page"`
	PerPage        int     `form:"per_page"`
	Direction      *string `form:"direction"`
	FiscalCategory *string `form:"fiscal_category"`
	StartDate      string  `form:"start_date"`
	EndDate        string  `form:"end_date"`
}
