package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

func setupAnalyticsRouter(handler *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/analytics/monthly", handler.GetMonthly)
	r.GET("/analytics/categories", handler.GetCategories)
	r.GET("/analytics/budget", handler.GetBudgetComparison)
	r.GET("/analytics/insights", handler.GetInsights)
	r.GET("/analytics/dashboard", handler.GetDashboard)
	return r
}

func TestAnalyticsHandler_GetMonthly(t *testing.T) {
	svc := &mockAnalyticsService{
		monthlyFn: func(context.Context) ([]analytics.MonthlyAggregate, error) {
			return []analytics.MonthlyAggregate{
				{Month: "2024-01", Income: 0.1 + 0.2, Expenses: 10.005, Net: -9.705},
			}, nil
		},
	}
	r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

	rec := doRequest(r, "GET", "/analytics/monthly", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `[{"month":"2024-01","income":0.3,"expenses":10.01,"net":-9.71}]` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestAnalyticsHandler_GetCategories(t *testing.T) {
	t.Run("passes the month and rounds totals", func(t *testing.T) {
		var gotMonth string
		svc := &mockAnalyticsService{
			categoriesFn: func(_ context.Context, month string) (*analytics.CategoryBreakdown, error) {
				gotMonth = month
				return &analytics.CategoryBreakdown{
					Categories:    []analytics.CategoryAggregate{{CategoryID: "food", Total: 33.333, Count: 3, Percentage: 100}},
					TotalExpenses: 33.333,
				}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

		rec := doRequest(r, "GET", "/analytics/categories?month=2024-02", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth != "2024-02" {
			t.Errorf("expected month 2024-02, got %q", gotMonth)
		}
		result := parseJSON(t, rec)
		if result["total_expenses"].(float64) != 33.33 {
			t.Errorf("expected 33.33, got %v", result["total_expenses"])
		}
		row := result["categories"].([]interface{})[0].(map[string]interface{})
		if row["total"].(float64) != 33.33 {
			t.Errorf("expected 33.33, got %v", row["total"])
		}
	})

	t.Run("omitted month means all time", func(t *testing.T) {
		gotMonth := "unset"
		svc := &mockAnalyticsService{
			categoriesFn: func(_ context.Context, month string) (*analytics.CategoryBreakdown, error) {
				gotMonth = month
				return &analytics.CategoryBreakdown{}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

		rec := doRequest(r, "GET", "/analytics/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth != "" {
			t.Errorf("expected empty month, got %q", gotMonth)
		}
	})
}

func TestAnalyticsHandler_GetBudgetComparison(t *testing.T) {
	svc := &mockAnalyticsService{
		budgetComparisonFn: func(_ context.Context, month string) (*analytics.BudgetComparison, error) {
			return &analytics.BudgetComparison{
				Month: month,
				Rows: []analytics.BudgetRow{{
					CategoryID: "food", BudgetAmount: 100, Spent: 120.456, Remaining: -20.456,
					PercentUsed: 120, Status: analytics.BudgetStatusOver,
				}},
				Summary: analytics.BudgetSummary{TotalBudget: 100, TotalSpent: 120.456, TotalRemaining: -20.456, OverallPercentage: 120},
			}, nil
		},
	}
	r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

	rec := doRequest(r, "GET", "/analytics/budget?month=2024-03", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["month"] != "2024-03" {
		t.Errorf("expected month 2024-03, got %v", result["month"])
	}
	row := result["budget_comparison"].([]interface{})[0].(map[string]interface{})
	if row["status"] != "over" || row["remaining"].(float64) != -20.46 || row["percentage"].(float64) != 120 {
		t.Errorf("unexpected row %v", row)
	}
	summary := result["summary"].(map[string]interface{})
	if summary["total_spent"].(float64) != 120.46 {
		t.Errorf("expected 120.46, got %v", summary["total_spent"])
	}
}

func TestAnalyticsHandler_GetInsights(t *testing.T) {
	t.Run("returns the sentences", func(t *testing.T) {
		svc := &mockAnalyticsService{
			insightsFn: func(_ context.Context, month string) (*services.MonthInsights, error) {
				return &services.MonthInsights{Month: month, Insights: []string{"You're over budget in 1 category this month."}}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

		rec := doRequest(r, "GET", "/analytics/insights?month=2024-03", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		insights := parseJSON(t, rec)["insights"].([]interface{})
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %v", insights)
		}
	})

	t.Run("reports the resolved month with an empty list", func(t *testing.T) {
		r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}))

		rec := doRequest(r, "GET", "/analytics/insights", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != `{"month":"2024-03","insights":[]}` {
			t.Errorf("unexpected body %s", body)
		}
	})
}

func TestAnalyticsHandler_GetDashboard(t *testing.T) {
	svc := &mockAnalyticsService{
		dashboardFn: func(_ context.Context, month string) (*analytics.Dashboard, error) {
			return &analytics.Dashboard{
				Month: month, Income: 1000, Expenses: 250.555, Net: 749.445,
				TopCategory: &analytics.CategoryAggregate{CategoryID: "food", Total: 250.555},
			}, nil
		},
	}
	r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

	rec := doRequest(r, "GET", "/analytics/dashboard?month=2024-03", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["expenses"].(float64) != 250.56 || result["net"].(float64) != 749.45 {
		t.Errorf("unexpected totals %v", result)
	}
	top := result["top_category"].(map[string]interface{})
	if top["total"].(float64) != 250.56 {
		t.Errorf("expected 250.56, got %v", top["total"])
	}
}

func TestAnalyticsHandler_InvalidMonth(t *testing.T) {
	r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}))

	for _, path := range []string{
		"/analytics/categories?month=2024",
		"/analytics/budget?month=2024-00",
		"/analytics/insights?month=abc",
		"/analytics/dashboard?month=2024-1",
	} {
		rec := doRequest(r, "GET", path, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
		assertFieldError(t, parseJSON(t, rec), "month")
	}
}

func TestAnalyticsHandler_ServiceError(t *testing.T) {
	svc := &mockAnalyticsService{
		monthlyFn: func(context.Context) ([]analytics.MonthlyAggregate, error) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, context.Canceled)
		},
	}
	r := setupAnalyticsRouter(NewAnalyticsHandler(svc))

	rec := doRequest(r, "GET", "/analytics/monthly", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
}
