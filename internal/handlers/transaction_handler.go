package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the payload for creating or replacing a transaction.
type TransactionRequest struct {
	Amount      float64                `json:"amount" binding:"gt=0"`
	Date        string                 `json:"date" binding:"required,iso_date"`
	Description string                 `json:"description" binding:"required"`
	Category    string                 `json:"category" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
}

func (r TransactionRequest) input() services.TransactionInput {
	return services.TransactionInput{
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
		CategoryID:  r.Category,
		Type:        r.Type,
	}
}

// TransactionQuery holds the list filters shared by listing and export.
type TransactionQuery struct {
	Month    string `form:"month" binding:"omitempty,month"`
	From     string `form:"from" binding:"omitempty,iso_date"`
	To       string `form:"to" binding:"omitempty,iso_date"`
	Type     string `form:"type" binding:"omitempty,transaction_type"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// Filter converts the query into a store filter.
func (q TransactionQuery) Filter() store.TransactionFilter {
	return store.TransactionFilter{
		Month:      q.Month,
		From:       q.From,
		To:         q.To,
		Type:       models.TransactionType(q.Type),
		CategoryID: q.Category,
		Search:     q.Search,
	}
}

// TransactionResponse wraps a single transaction.
type TransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Description Record an income or expense. Type defaults to expense.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Transaction: tx})
}

// GetTransactions handles listing transactions.
// @Summary     List transactions
// @Description List transactions sorted by date, newest first, with optional filters
// @Tags        transactions
// @Produce     json
// @Param       month     query string false "Month (YYYY-MM)"
// @Param       from      query string false "Earliest date (YYYY-MM-DD)"
// @Param       to        query string false "Latest date (YYYY-MM-DD)"
// @Param       type      query string false "income or expense"
// @Param       category  query string false "Category ID"
// @Param       search    query string false "Description substring"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default all, max 500)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var query TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), query.Filter(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaction handles fetching a single transaction.
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	tx, err := h.transactionService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: tx})
}

// UpdateTransaction handles replacing a transaction.
// @Summary     Update a transaction
// @Description Replace every field of a transaction. An omitted type keeps the stored one.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} TransactionResponse "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: tx})
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}
