package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/analytics"
	"fintrack/internal/services"
)

// AnalyticsHandler serves the derived views. Monetary values are rounded to
// cents here and nowhere earlier.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// MonthQuery holds the optional month selector of the analytics endpoints.
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,month"`
}

// InsightsResponse wraps the insight sentences of a month.
type InsightsResponse struct {
	Month    string   `json:"month"`
	Insights []string `json:"insights"`
}

func bindMonth(c *gin.Context) (string, bool) {
	var query MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return "", false
	}
	return query.Month, true
}

// GetMonthly handles the per-month income/expense rollup.
// @Summary     Monthly totals
// @Description Income, expenses and net per month, oldest first
// @Tags        analytics
// @Produce     json
// @Success     200 {array}  analytics.MonthlyAggregate "Monthly totals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/monthly [get]
func (h *AnalyticsHandler) GetMonthly(c *gin.Context) {
	months, err := h.analyticsService.Monthly(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]analytics.MonthlyAggregate, len(months))
	for i, m := range months {
		out[i] = m.Rounded()
	}
	c.JSON(http.StatusOK, out)
}

// GetCategories handles the expense breakdown by category.
// @Summary     Spending by category
// @Description Expense totals per category, largest first. All time when month is omitted.
// @Tags        analytics
// @Produce     json
// @Param       month query string false "Month (YYYY-MM)"
// @Success     200 {object} analytics.CategoryBreakdown "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/categories [get]
func (h *AnalyticsHandler) GetCategories(c *gin.Context) {
	month, ok := bindMonth(c)
	if !ok {
		return
	}

	breakdown, err := h.analyticsService.Categories(c.Request.Context(), month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown.Rounded())
}

// GetBudgetComparison handles budget-vs-actual for a month.
// @Summary     Budget comparison
// @Description Budget, spend and status per category. Defaults to the current month.
// @Tags        analytics
// @Produce     json
// @Param       month query string false "Month (YYYY-MM)"
// @Success     200 {object} analytics.BudgetComparison "Comparison"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/budget [get]
func (h *AnalyticsHandler) GetBudgetComparison(c *gin.Context) {
	month, ok := bindMonth(c)
	if !ok {
		return
	}

	comparison, err := h.analyticsService.BudgetComparison(c.Request.Context(), month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison.Rounded())
}

// GetInsights handles the insight sentences for a month.
// @Summary     Insights
// @Description Short observations about spending. Defaults to the current month.
// @Tags        analytics
// @Produce     json
// @Param       month query string false "Month (YYYY-MM)"
// @Success     200 {object} InsightsResponse "Insights"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/insights [get]
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	month, ok := bindMonth(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.Insights(c.Request.Context(), month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	insights := result.Insights
	if insights == nil {
		insights = []string{}
	}

	c.JSON(http.StatusOK, InsightsResponse{Month: result.Month, Insights: insights})
}

// GetDashboard handles the monthly overview.
// @Summary     Dashboard
// @Description Month income, expenses, net, top category and the most recent transactions
// @Tags        analytics
// @Produce     json
// @Param       month query string false "Month (YYYY-MM)"
// @Success     200 {object} analytics.Dashboard "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	month, ok := bindMonth(c)
	if !ok {
		return
	}

	dashboard, err := h.analyticsService.Dashboard(c.Request.Context(), month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard.Rounded())
}
