package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the payload for setting a budget. A zero,
// null or missing amount removes the budget.
type SetBudgetRequest struct {
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"gte=0"`
	Month    string  `json:"month" binding:"required,month"`
}

// BudgetQuery holds the optional month filter.
type BudgetQuery struct {
	Month string `form:"month" binding:"omitempty,month"`
}

// BudgetResponse wraps a single budget and what the upsert did.
type BudgetResponse struct {
	Budget *models.Budget `json:"budget"`
	Status string         `json:"status"`
}

// BudgetsResponse wraps a list of budgets.
type BudgetsResponse struct {
	Budgets []models.Budget `json:"budgets"`
}

// SetBudget handles creating, overwriting or removing a monthly budget.
// @Summary     Set a budget
// @Description Upsert the budget of a category for a month. A zero or empty amount removes it.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body SetBudgetRequest true "Budget details"
// @Success     201 {object} BudgetResponse "Budget created"
// @Success     200 {object} BudgetResponse "Budget updated or removed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	budget, outcome, err := h.budgetService.SetBudget(c.Request.Context(), req.Category, req.Month, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	if outcome == services.BudgetCreated {
		status = http.StatusCreated
	}
	c.JSON(status, BudgetResponse{Budget: budget, Status: string(outcome)})
}

// GetBudgets handles listing budgets.
// @Summary     List budgets
// @Tags        budgets
// @Produce     json
// @Param       month query string false "Month (YYYY-MM); all months when omitted"
// @Success     200 {object} BudgetsResponse "Budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var query BudgetQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetsResponse{Budgets: budgets})
}

// DeleteBudget handles removing a budget.
// @Summary     Delete a budget
// @Tags        budgets
// @Produce     json
// @Param       month    path string true "Month (YYYY-MM)"
// @Param       category path string true "Category ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{month}/{category} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.DeleteBudget(c.Request.Context(), c.Param("category"), c.Param("month")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted successfully"})
}
