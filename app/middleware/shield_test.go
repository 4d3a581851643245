package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func gated(s *Shield) http.Handler {
	return s.Gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hit(h http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestShield_DeniesAfterBurst(t *testing.T) {
	t.Parallel()

	h := gated(NewShield(1, 2, nil, zerolog.Nop()))
	require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1234"))
	require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1234"))
}

func TestShield_SweepsIdleVisitors(t *testing.T) {
	t.Parallel()

	s := NewShield(1, 1, nil, zerolog.Nop())
	h := gated(s)
	require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1234"))

	s.mu.Lock()
	s.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	s.lastSweep = time.Now().Add(-time.Hour)
	s.mu.Unlock()

	// the next request from anyone triggers the sweep
	require.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1234"))

	s.mu.Lock()
	_, stale := s.visitors["10.0.0.1"]
	_, fresh := s.visitors["10.0.0.2"]
	s.mu.Unlock()
	require.False(t, stale, "idle visitor must be dropped")
	require.True(t, fresh)
}

func TestShield_PerIP(t *testing.T) {
	t.Parallel()

	h := gated(NewShield(1, 1, nil, zerolog.Nop()))
	require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:5678"))
	// a different client has its own bucket
	require.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1234"))
}
