package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spotigod/internal/shared"
)

func newTestRouter(h Handler) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Logging(shared.NewLogger(io.Discard)))
	router.Handler(h)
	return router
}

func TestCallbackHandler(t *testing.T) {
	t.Run("Delivers Code", func(t *testing.T) {
		handler := NewCallbackHandler("test_state", shared.NewLogger(io.Discard))
		router := newTestRouter(handler)

		req := httptest.NewRequest("GET", "/callback?code=test_code&state=test_state", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Autenticación exitosa") {
			t.Error("expected confirmation page in response body")
		}

		result := <-handler.Result()
		if result.Err() != nil {
			t.Fatalf("expected no error, got %v", result.Err())
		}
		if result.Code != "test_code" {
			t.Errorf("expected code test_code, got %s", result.Code)
		}
	})

	t.Run("State Mismatch", func(t *testing.T) {
		handler := NewCallbackHandler("test_state", shared.NewLogger(io.Discard))
		router := newTestRouter(handler)

		req := httptest.NewRequest("GET", "/callback?code=test_code&state=forged", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Err() == nil {
			t.Error("expected error for state mismatch")
		}
	})

	t.Run("Provider Error", func(t *testing.T) {
		handler := NewCallbackHandler("test_state", shared.NewLogger(io.Discard))
		router := newTestRouter(handler)

		req := httptest.NewRequest("GET", "/callback?error=access_denied&error_description=User+denied", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		result := <-handler.Result()
		if result.Err() == nil {
			t.Fatal("expected error when provider reports one")
		}
		if !strings.Contains(result.Err().Error(), "access_denied") {
			t.Errorf("expected error to carry the provider code, got %v", result.Err())
		}
	})

	t.Run("Probe Keeps Waiting", func(t *testing.T) {
		handler := NewCallbackHandler("test_state", shared.NewLogger(io.Discard))
		router := newTestRouter(handler)

		// A bare /callback hit has neither code nor error; it must not
		// consume the one-shot result.
		req := httptest.NewRequest("GET", "/callback", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		select {
		case <-handler.Result():
			t.Fatal("probe should not produce a result")
		default:
		}

		req = httptest.NewRequest("GET", "/callback?code=late_code&state=test_state", nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		result := <-handler.Result()
		if result.Code != "late_code" {
			t.Errorf("expected late_code after probe, got %s", result.Code)
		}
	})

	t.Run("Second Redirect Rejected", func(t *testing.T) {
		handler := NewCallbackHandler("test_state", shared.NewLogger(io.Discard))
		router := newTestRouter(handler)

		req := httptest.NewRequest("GET", "/callback?code=first&state=test_state", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		req = httptest.NewRequest("GET", "/callback?code=second&state=test_state", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected replayed callback to be rejected, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Code != "first" {
			t.Errorf("expected first code to win, got %s", result.Code)
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("Method Filtering", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("GET", "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for wrong method, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle("GET", "/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", nil))

		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("expected middleware applied in registration order, got %v", order)
		}
	})
}
