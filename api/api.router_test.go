// FilePath: api/api.router_test.go
package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/verdantlabs/gardenhub/api/middleware"
	"github.com/verdantlabs/gardenhub/internal/config"
	"github.com/verdantlabs/gardenhub/internal/gardenservice"
	"github.com/verdantlabs/gardenhub/internal/models"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		Issuer:    "gardenhub-test",
	}
}

func newTestRouter() *Router {
	svc := gardenservice.New(nil, nil, nil, nil, nil)
	return NewRouter(svc, nil, testAuthConfig())
}

func TestHealthEndpointIsPublic(t *testing.T) {
	router := newTestRouter()
	router.Resources().SetHealthCheck(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 from health endpoint, got %d", rec.Code)
	}
}

func TestHealthEndpointWithoutHandlerReturns404(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without wired health handler, got %d", rec.Code)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/plants"},
		{http.MethodGet, "/api/v1/garden"},
		{http.MethodGet, "/api/v1/weather"},
		{http.MethodPost, "/api/v1/garden/plants/gpl_x/watering"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", p.method, p.path, rec.Code)
		}
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plants", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestIssuedTokenPassesAuthentication(t *testing.T) {
	auth := middleware.NewJWTMiddleware(testAuthConfig())
	token, err := auth.GenerateToken(&models.User{
		ID:       "usr_1",
		Username: "ana",
		Email:    "ana@example.com",
	})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	var captured *middleware.UserContext
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = middleware.GetUserContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plants", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
	if captured == nil || captured.ID != "usr_1" || captured.Username != "ana" {
		t.Errorf("expected user context for usr_1/ana, got %+v", captured)
	}
}
