package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(r *gin.Engine, method string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/test", http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger.Set(zap.New(core).Sugar())
	t.Cleanup(func() { logger.Init("test") })
	return logs
}

func TestErrorHandler(t *testing.T) {
	t.Run("renders app errors with details", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/test", func(c *gin.Context) {
			_ = c.Error(apperrors.FieldError("month", "must be a month in YYYY-MM format"))
		})

		rec := doRequest(r, http.MethodGet, nil)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		errObj := parseBody(t, rec)["error"].(map[string]interface{})
		if errObj["code"] != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %v", errObj["code"])
		}
		details := errObj["details"].(map[string]interface{})
		if details["month"] != "must be a month in YYYY-MM format" {
			t.Errorf("unexpected details %v", details)
		}
	})

	t.Run("hides unexpected errors", func(t *testing.T) {
		logs := observeLogs(t)
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/test", func(c *gin.Context) {
			_ = c.Error(errors.New("disk on fire"))
		})

		rec := doRequest(r, http.MethodGet, nil)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		errObj := parseBody(t, rec)["error"].(map[string]interface{})
		if errObj["message"] != apperrors.ErrInternalServer.Message {
			t.Errorf("unexpected message %v", errObj["message"])
		}
		if logs.FilterMessage("unexpected error").Len() != 1 {
			t.Errorf("expected the error to be logged, got %v", logs.All())
		}
	})

	t.Run("leaves written responses alone", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusTeapot, gin.H{"ok": true})
			_ = c.Error(errors.New("late"))
		})

		rec := doRequest(r, http.MethodGet, nil)

		if rec.Code != http.StatusTeapot {
			t.Fatalf("expected 418, got %d", rec.Code)
		}
	})
}

func TestRequestLogging(t *testing.T) {
	t.Run("assigns and logs a request id", func(t *testing.T) {
		logs := observeLogs(t)
		var seen string
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/test", func(c *gin.Context) {
			seen = RequestID(c)
			c.Status(http.StatusOK)
		})

		rec := doRequest(r, http.MethodGet, nil)

		id := rec.Header().Get("X-Request-ID")
		if id == "" || id != seen {
			t.Fatalf("expected matching request id, header %q context %q", id, seen)
		}
		entries := logs.FilterMessage("request").All()
		if len(entries) != 1 {
			t.Fatalf("expected 1 log entry, got %d", len(entries))
		}
		fields := entries[0].ContextMap()
		if fields["request_id"] != id || fields["path"] != "/test" {
			t.Errorf("unexpected fields %v", fields)
		}
		if entries[0].LoggerName != "http" {
			t.Errorf("expected logger http, got %q", entries[0].LoggerName)
		}
	})

	t.Run("reuses an incoming request id", func(t *testing.T) {
		observeLogs(t)
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := doRequest(r, http.MethodGet, http.Header{"X-Request-Id": {"abc-123"}})

		if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
			t.Errorf("expected abc-123, got %q", got)
		}
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"default origin", "", http.MethodGet, "*", http.StatusOK},
		{"configured origin", "http://localhost:3000", http.MethodGet, "http://localhost:3000", http.StatusOK},
		{"preflight", "*", http.MethodOptions, "*", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.origin))
			r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

			rec := doRequest(r, tt.method, nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected origin %q, got %q", tt.wantOrigin, got)
			}
		})
	}
}
