package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"userbase/app/dto"
)

const (
	shieldWindow = time.Minute
	visitorTTL   = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Shield is the allow/deny gate applied before routing. Per-IP token
// buckets run in-process; when a redis client is supplied the gate
// switches to fixed-window counters shared across replicas. Handlers
// behind it see only requests that passed.
type Shield struct {
	rps   rate.Limit
	burst int

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time

	rdb         *redis.Client
	windowLimit int64
	logger      zerolog.Logger
}

func NewShield(rps float64, burst int, rdb *redis.Client, logger zerolog.Logger) *Shield {
	return &Shield{
		rps:         rate.Limit(rps),
		burst:       burst,
		visitors:    make(map[string]*visitor),
		lastSweep:   time.Now(),
		rdb:         rdb,
		windowLimit: int64(rps*shieldWindow.Seconds()) + int64(burst),
		logger:      logger,
	}
}

func (s *Shield) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.allow(r.Context(), ip) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(dto.Fail("too many requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Shield) allow(ctx context.Context, ip string) bool {
	if s.rdb != nil {
		ok, err := s.allowRedis(ctx, ip)
		if err == nil {
			return ok
		}
		// fall back to the local limiter when redis is unreachable
		s.logger.Warn().Err(err).Msg("shield: redis unavailable, using local limiter")
	}
	return s.localLimiter(ip).Allow()
}

func (s *Shield) allowRedis(ctx context.Context, ip string) (bool, error) {
	key := "shield:" + ip
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, shieldWindow).Err(); err != nil {
			return false, err
		}
	}
	return n <= s.windowLimit, nil
}

func (s *Shield) localLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if now.Sub(s.lastSweep) > visitorTTL {
		s.sweepLocked(now)
	}
	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweepLocked drops visitors idle past their TTL. Caller holds mu.
// Sweeping piggybacks on traffic so the shield owns no goroutine.
func (s *Shield) sweepLocked(now time.Time) {
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(s.visitors, ip)
		}
	}
	s.lastSweep = now
}
