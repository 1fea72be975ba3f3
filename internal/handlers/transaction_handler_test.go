package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransaction)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.TransactionInput
		svc := &mockTransactionService{
			createTransactionFn: func(_ context.Context, in services.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{
					Base:        models.Base{ID: "tx-1"},
					Amount:      in.Amount,
					Date:        in.Date,
					Description: in.Description,
					CategoryID:  in.CategoryID,
					Type:        models.TransactionTypeExpense,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":12.5,"date":"2024-03-05","description":"Lunch","category":"food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Type != "" {
			t.Errorf("expected omitted type to reach the service empty, got %q", got.Type)
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["id"] != "tx-1" {
			t.Errorf("expected id tx-1, got %v", tx["id"])
		}
		if tx["category"] != "food" {
			t.Errorf("expected category food, got %v", tx["category"])
		}
		if tx["type"] != "expense" {
			t.Errorf("expected type expense, got %v", tx["type"])
		}
	})

	t.Run("returns 400 with field details on invalid input", func(t *testing.T) {
		tests := []struct {
			name  string
			body  string
			field string
		}{
			{"zero amount", `{"amount":0,"date":"2024-03-05","description":"x","category":"food"}`, "amount"},
			{"negative amount", `{"amount":-3,"date":"2024-03-05","description":"x","category":"food"}`, "amount"},
			{"bad date", `{"amount":3,"date":"05/03/2024","description":"x","category":"food"}`, "date"},
			{"missing description", `{"amount":3,"date":"2024-03-05","category":"food"}`, "description"},
			{"missing category", `{"amount":3,"date":"2024-03-05","description":"x"}`, "category"},
			{"bad type", `{"amount":3,"date":"2024-03-05","description":"x","category":"food","type":"transfer"}`, "type"},
			{"amount not a number", `{"amount":"lots","date":"2024-03-05","description":"x","category":"food"}`, "amount"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				called := false
				svc := &mockTransactionService{
					createTransactionFn: func(context.Context, services.TransactionInput) (*models.Transaction, error) {
						called = true
						return nil, nil
					},
				}
				r := setupTransactionRouter(NewTransactionHandler(svc))

				rec := doRequest(r, "POST", "/transactions", tt.body)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
				}
				assertFieldError(t, parseJSON(t, rec), tt.field)
				if called {
					t.Error("service must not be called on invalid input")
				}
			})
		}
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions", `{not json`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("forwards service validation errors", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(context.Context, services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.FieldError("category", "unknown category")
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":3,"date":"2024-03-05","description":"x","category":"pets"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertFieldError(t, parseJSON(t, rec), "category")
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes filters and page to the service", func(t *testing.T) {
		var gotFilter store.TransactionFilter
		var gotPage pagination.PageRequest
		svc := &mockTransactionService{
			listTransactionsFn: func(_ context.Context, filter store.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				gotPage = page
				resp := pagination.NewPageResponse([]models.Transaction{{Base: models.Base{ID: "a"}}}, 2, 10, 11)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions?month=2024-03&type=income&category=food&search=lun&page=2&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		want := store.TransactionFilter{Month: "2024-03", Type: models.TransactionTypeIncome, CategoryID: "food", Search: "lun"}
		if gotFilter != want {
			t.Errorf("expected filter %+v, got %+v", want, gotFilter)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 10 {
			t.Errorf("unexpected page %+v", gotPage)
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 11 {
			t.Errorf("expected total_items 11, got %v", result["total_items"])
		}
		if len(result["data"].([]interface{})) != 1 {
			t.Errorf("expected one item, got %v", result["data"])
		}
	})

	t.Run("returns 400 on invalid filters", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		for path, field := range map[string]string{
			"/transactions?month=March":      "month",
			"/transactions?from=2024-3-1":    "from",
			"/transactions?type=transfer":    "type",
			"/transactions?page_size=100000": "page_size",
		} {
			rec := doRequest(r, "GET", path, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("%s: expected 400, got %d", path, rec.Code)
			}
			assertFieldError(t, parseJSON(t, rec), field)
		}
	})

	t.Run("returns 500 on store failure", func(t *testing.T) {
		svc := &mockTransactionService{
			listTransactionsFn: func(context.Context, store.TransactionFilter, pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, context.DeadlineExceeded)
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns 200 with the transaction", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions/abc", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["id"] != "abc" {
			t.Errorf("expected id abc, got %v", tx["id"])
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		svc := &mockTransactionService{
			getTransactionFn: func(context.Context, string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("replaces the transaction", func(t *testing.T) {
		var gotID string
		var got services.TransactionInput
		svc := &mockTransactionService{
			updateTransactionFn: func(_ context.Context, id string, in services.TransactionInput) (*models.Transaction, error) {
				gotID, got = id, in
				return &models.Transaction{Base: models.Base{ID: id}, Amount: in.Amount, Type: in.Type}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/tx-9",
			`{"amount":99.99,"date":"2024-04-01","description":"Salary","category":"other","type":"income"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != "tx-9" {
			t.Errorf("expected id tx-9, got %s", gotID)
		}
		if got.Type != models.TransactionTypeIncome || got.Amount != 99.99 {
			t.Errorf("unexpected input %+v", got)
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		svc := &mockTransactionService{
			updateTransactionFn: func(context.Context, string, services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/nope",
			`{"amount":1,"date":"2024-04-01","description":"x","category":"food"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "DELETE", "/transactions/tx-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["message"] != "Transaction deleted successfully" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("returns 404 when absent", func(t *testing.T) {
		svc := &mockTransactionService{
			deleteTransactionFn: func(context.Context, string) error { return apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "DELETE", "/transactions/tx-1", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}
