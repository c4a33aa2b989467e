package httpserver

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/observability"
)

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// BookingLimiter is a per-client token bucket for booking submissions.
type BookingLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewBookingLimiter allows perMinute submissions per client with the given
// burst. It returns nil (no limiting) when perMinute <= 0.
func NewBookingLimiter(perMinute, burst int) *BookingLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &BookingLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

func (l *BookingLimiter) limiter(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// drop clients idle longer than l.idle, at most once per idle window
	if now.Sub(l.lastSweep) > l.idle {
		for k, v := range l.visitors {
			if now.Sub(v.seen) > l.idle {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}
	v.seen = now
	return v.lim
}

// Allow consumes one token for key, or reports how long until one is free.
func (l *BookingLimiter) Allow(key string) (bool, time.Duration) {
	now := l.now()
	res := l.limiter(key, now).ReserveN(now, 1)
	if !res.OK() {
		return false, time.Minute
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return false, d
	}
	return true, 0
}

// Middleware rejects over-limit clients with 429 and Retry-After. A nil
// limiter passes everything through.
func (l *BookingLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := l.Allow(remoteIP(r))
		if !ok {
			secs := int(math.Ceil(wait.Seconds()))
			if secs < 1 {
				secs = 1
			}
			observability.ObserveBookingRejected("rate_limited")
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			http.Error(w, "too many booking attempts, try again shortly", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
