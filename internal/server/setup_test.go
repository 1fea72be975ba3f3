package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fintrack/internal/logger"
	"fintrack/internal/server"
	"fintrack/internal/testutil"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for end-to-end tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	s := testutil.SetupTestStore(t, db)
	router := server.NewRouter(server.NewServices(s), server.Options{CORSOrigin: "*"})

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createTransaction posts a transaction and returns its id.
func (app *testApp) createTransaction(t *testing.T, txType string, amount float64, category, date, description string) string {
	t.Helper()
	body := fmt.Sprintf(`{"type":%q,"amount":%v,"category":%q,"date":%q,"description":%q}`,
		txType, amount, category, date, description)
	rec := app.request("POST", "/api/v1/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return tx["id"].(string)
}

// setBudget posts a budget and returns the response status.
func (app *testApp) setBudget(t *testing.T, category, month string, amount float64) int {
	t.Helper()
	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"category":%q,"month":%q,"amount":%v}`, category, month, amount))
	if rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
		t.Fatalf("set budget failed: %d %s", rec.Code, rec.Body.String())
	}
	return rec.Code
}
