package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/export"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// ExportHandler streams transactions as CSV.
type ExportHandler struct {
	transactionService services.TransactionServicer
	categoryService    services.CategoryServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(transactionService services.TransactionServicer, categoryService services.CategoryServicer) *ExportHandler {
	return &ExportHandler{transactionService: transactionService, categoryService: categoryService}
}

// ExportTransactions handles the CSV download of transactions.
// @Summary     Export transactions
// @Description Download the filtered transactions as CSV, newest first
// @Tags        export
// @Produce     text/csv
// @Param       month    query string false "Month (YYYY-MM)"
// @Param       from     query string false "Earliest date (YYYY-MM-DD)"
// @Param       to       query string false "Latest date (YYYY-MM-DD)"
// @Param       type     query string false "income or expense"
// @Param       category query string false "Category ID"
// @Param       search   query string false "Description substring"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/transactions.csv [get]
func (h *ExportHandler) ExportTransactions(c *gin.Context) {
	var query TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	ctx := c.Request.Context()
	result, err := h.transactionService.ListTransactions(ctx, query.Filter(), pagination.PageRequest{})
	if err != nil {
		respondWithError(c, err)
		return
	}
	idx, err := h.categoryService.Index(ctx)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteTransactions(&buf, result.Data, idx); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	name := "transactions.csv"
	if query.Month != "" {
		name = fmt.Sprintf("transactions-%s.csv", query.Month)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
