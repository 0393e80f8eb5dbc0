package middleware

import (
	"net/http"
	"sync"
	"time"

	"tienda/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// LoginLimiter throttles login attempts per client address. It is an injected
// component rather than a package-level map so a deployment can scope or swap
// it (one instance per router today, a shared store tomorrow).
//
// Each IP gets a token bucket holding `limit` attempts that refills over
// `window`, approximating "at most N attempts per rolling window".
type LoginLimiter struct {
	mu       sync.Mutex
	perIP    map[string]*ipLimiter
	limit    int
	window   time.Duration
	lastSeen func() time.Time // test seam
}

type ipLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	// A zero limit would divide the refill interval by zero and a zero
	// window would stall the purge ticker. Clamp to the strictest sane bucket.
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	l := &LoginLimiter{
		perIP:    make(map[string]*ipLimiter),
		limit:    limit,
		window:   window,
		lastSeen: time.Now,
	}
	go l.purgeLoop()
	return l
}

// Allow reports whether the address may attempt another login.
func (l *LoginLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.perIP[addr]
	if !ok {
		entry = &ipLimiter{
			lim: rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit),
		}
		l.perIP[addr] = entry
	}
	entry.seen = l.lastSeen()
	return entry.lim.Allow()
}

// purgeLoop drops addresses idle for longer than two windows so the map does
// not grow with every IP that ever tried to log in.
func (l *LoginLimiter) purgeLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * l.window)
		l.mu.Lock()
		purged := 0
		for addr, entry := range l.perIP {
			if entry.seen.Before(cutoff) {
				delete(l.perIP, addr)
				purged++
			}
		}
		remaining := len(l.perIP)
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("purged", purged).
				Int("remaining", remaining).
				Msg("login limiter purged idle entries")
		}
	}
}

// Middleware rejects over-limit attempts with 429 before the handler runs.
func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiados intentos de login. Intente mas tarde."))
			return
		}
		c.Next()
	}
}
