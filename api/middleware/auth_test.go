package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/mateovilla/tradein-backend/pkg/auth"
	"github.com/mateovilla/tradein-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "tradein-test",
		ExpirationMinutes: 60,
	}
}

func protectedEndpoint(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seenSubject string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSubject = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	chain := Auth(jwtTestConfig(), nil)(RequireAdmin(nil)(inner))
	return chain, &seenSubject
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler, _ := protectedEndpoint(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler, _ := protectedEndpoint(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsAdminToken(t *testing.T) {
	handler, seenSubject := protectedEndpoint(t)

	token, err := pkgauth.MintAccessToken(jwtTestConfig(), time.Now(), pkgauth.AccessTokenPayload{
		Subject: "ops@example.com",
		Role:    pkgauth.RoleAdmin,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "ops@example.com", *seenSubject)
}

func TestRequireAdminRejectsOtherRoles(t *testing.T) {
	handler, _ := protectedEndpoint(t)

	token, err := pkgauth.MintAccessToken(jwtTestConfig(), time.Now(), pkgauth.AccessTokenPayload{
		Subject: "customer@example.com",
		Role:    "customer",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
