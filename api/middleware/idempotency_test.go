package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	pkgredis "github.com/dreshoplabs/dreshop-backend/pkg/redis"
	"github.com/go-chi/chi/v5"
	redislib "github.com/redis/go-redis/v9"
)

func newIdempotencyStore(t *testing.T) pkgredis.IdempotencyStore {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { raw.Close() })
	return pkgredis.NewWithClient(raw)
}

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"reference":"order-1"}}`))
	})
}

func checkoutRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", "key-1")
	return req
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newIdempotencyStore(t)
	calls := 0
	handler := Idempotency(store, newQuietLogger())(countingHandler(&calls))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, checkoutRequest(`{}`))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, checkoutRequest(`{}`))

	if calls != 1 {
		t.Fatalf("handler should run once, ran %d times", calls)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", second.Body.String(), first.Body.String())
	}
	if ct := second.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("replay lost content type, got %q", ct)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newIdempotencyStore(t)
	calls := 0
	handler := Idempotency(store, newQuietLogger())(countingHandler(&calls))

	handler.ServeHTTP(httptest.NewRecorder(), checkoutRequest(`{}`))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest(`{"other":true}`))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("handler should not rerun, ran %d times", calls)
	}
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	store := newIdempotencyStore(t)
	calls := 0
	handler := Idempotency(store, newQuietLogger())(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run without a key")
	}
}

func TestIdempotencyIgnoresUnlistedRoutes(t *testing.T) {
	store := newIdempotencyStore(t)
	calls := 0
	handler := Idempotency(store, newQuietLogger())(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if calls != 1 {
		t.Fatal("unlisted routes should pass through")
	}
}

// Mounts the middleware the way the real router does, via Use inside a
// nested Route, where the inner route pattern is not yet resolved when the
// middleware runs.
func TestIdempotencyEngagesUnderNestedRouter(t *testing.T) {
	store := newIdempotencyStore(t)
	calls := 0

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Idempotency(store, newQuietLogger()))
		r.Post("/checkout", countingHandler(&calls).ServeHTTP)
	})

	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`)))
	if missing.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a key, got %d", missing.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run without a key")
	}

	r.ServeHTTP(httptest.NewRecorder(), checkoutRequest(`{}`))
	r.ServeHTTP(httptest.NewRecorder(), checkoutRequest(`{}`))
	if calls != 1 {
		t.Fatalf("handler should run once behind the router, ran %d times", calls)
	}
}

func TestIdempotencyScopesBySession(t *testing.T) {
	store := newIdempotencyStore(t)
	calls := 0
	handler := Idempotency(store, newQuietLogger())(countingHandler(&calls))

	reqA := checkoutRequest(`{}`)
	reqA = reqA.WithContext(WithSessionID(reqA.Context(), "session-a"))
	handler.ServeHTTP(httptest.NewRecorder(), reqA)

	reqB := checkoutRequest(`{}`)
	reqB = reqB.WithContext(WithSessionID(reqB.Context(), "session-b"))
	handler.ServeHTTP(httptest.NewRecorder(), reqB)

	if calls != 2 {
		t.Fatalf("different sessions must not share records, ran %d times", calls)
	}
}
