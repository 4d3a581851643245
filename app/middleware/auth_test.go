package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	jwtutil "userbase/app/jwt"
	"userbase/app/session"
)

func testSigner() *jwtutil.Signer {
	return &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "userbase", Expiry: time.Hour}
}

func claimsEcho(t *testing.T, wantRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		require.NotNil(t, claims)
		require.Equal(t, wantRole, claims.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_Cookie(t *testing.T) {
	t.Parallel()

	signer := testSigner()
	token, err := signer.Sign("Ann", "ann@x.com", "user")
	require.NoError(t, err)

	a := &Auth{Signer: signer}
	h := a.RequireAuth(claimsEcho(t, "user"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_BearerFallback(t *testing.T) {
	t.Parallel()

	signer := testSigner()
	token, err := signer.Sign("Ann", "ann@x.com", "user")
	require.NoError(t, err)

	a := &Auth{Signer: signer}
	h := a.RequireAuth(claimsEcho(t, "user"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_Denies(t *testing.T) {
	t.Parallel()

	a := &Auth{Signer: testSigner()}
	h := a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	signer := testSigner()
	a := &Auth{Signer: signer}
	h := a.RequireAuth(a.RequireAdmin(claimsEcho(t, "admin")))

	userToken, err := signer.Sign("Ann", "ann@x.com", "user")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: userToken})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := signer.Sign("Root", "root@x.com", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: adminToken})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
