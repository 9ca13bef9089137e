package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mlegall/facturio-api/internal/application/service"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/request"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/response"
	"github.com/mlegall/facturio-api/pkg/pagination"
)

// TransactionHandler handles ledger-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles listing ledger entries with filters
func (h *TransactionHandler) List(c *gin.Context) {
	var req request.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Paramètres de requête invalides")
		return
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	params.Validate()

	input := &service.ListTransactionsInput{
		Pagination: params,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if req.Direction != nil {
		direction := enum.Direction(*req.Direction)
		if !direction.Valid() {
			response.BadRequest(c, "Sens de transaction inconnu")
			return
		}
		input.Direction = &direction
	}
	if req.FiscalCategory != nil {
		category := enum.FiscalCategory(*req.FiscalCategory)
		if !category.Valid() {
			response.BadRequest(c, "Catégorie fiscale inconnue")
			return
		}
		input.FiscalCategory = &category
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions récupérées", result)
}

// Create handles creating a ledger entry
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	input := &service.CreateTransactionInput{
		Date:           req.Date,
		Amount:         req.Amount,
		Direction:      req.Direction,
		Label:          req.Label,
		FiscalCategory: req.FiscalCategory,
		PaymentMethod:  req.PaymentMethod,
		DocumentID:     req.DocumentID,
		ContactID:      req.ContactID,
		IsSecondHand:   req.IsSecondHand,
		Notes:          req.Notes,
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction créée", tx)
}

// Get handles retrieving a single ledger entry
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction récupérée", tx)
}

// Update handles patching a ledger entry
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	input := &service.UpdateTransactionInput{
		ID:             id,
		Date:           req.Date,
		Amount:         req.Amount,
		Direction:      req.Direction,
		Label:          req.Label,
		FiscalCategory: req.FiscalCategory,
		PaymentMethod:  req.PaymentMethod,
		DocumentID:     req.DocumentID,
		ContactID:      req.ContactID,
		Notes:          req.Notes,
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction mise à jour", tx)
}

// Delete handles removing a ledger entry and its files
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
