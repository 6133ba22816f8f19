package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type store struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      int
	burst    int
	ttl      time.Duration
}

// Limit returns a per-client-IP token bucket middleware. Entries idle
// longer than ttl are evicted by a background sweep.
func Limit(rps, burst int, ttl time.Duration) gin.HandlerFunc {
	s := &store{
		visitors: make(map[string]*visitor),
		rps:      rps,
		burst:    burst,
		ttl:      ttl,
	}

	go s.cleanup()

	return func(c *gin.Context) {
		if !s.allow(c.ClientIP()) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

func (s *store) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

func (s *store) cleanup() {
	for range time.Tick(s.ttl) {
		s.mu.Lock()
		for ip, v := range s.visitors {
			if time.Since(v.lastSeen) > s.ttl {
				delete(s.visitors, ip)
			}
		}
		s.mu.Unlock()
	}
}
