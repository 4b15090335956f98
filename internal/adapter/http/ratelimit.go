package adapthttp

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiter keeps a token bucket per client IP for the signup and login
// endpoints. Stale entries are swept lazily on access, so the limiter
// owns no goroutine.
type ipLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	r         rate.Limit
	burst     int
	lastSweep time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		clients:   make(map[string]*client),
		r:         rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

func (rl *ipLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep()
	if c, ok := rl.clients[ip]; ok {
		c.seen = time.Now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[ip] = &client{lim: l, seen: time.Now()}
	return l
}

// sweep drops clients idle past the staleness window, at most once a
// minute. Callers hold mu.
func (rl *ipLimiter) sweep() {
	if time.Since(rl.lastSweep) < time.Minute {
		return
	}
	rl.lastSweep = time.Now()
	for ip, c := range rl.clients {
		if time.Since(c.seen) > 3*time.Minute {
			delete(rl.clients, ip)
		}
	}
}

// rateLimited wraps an auth handler with the per-IP limiter.
func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiter.get(ip).Allow() {
			writeMessage(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}
