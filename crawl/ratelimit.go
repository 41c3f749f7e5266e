package crawl

import (
	"context"
	"sync"

	"github.com/MelvilleC99/profiler"
	"golang.org/x/time/rate"
)

// DefaultRPS is the default per-host request rate. One request per second
// keeps the crawler polite on small company sites.
const DefaultRPS = 1.0

var _ profiler.Pacer = (*DomainPacer)(nil)

// DomainPacer provides per-host rate limiting using token buckets. Each
// host gets its own limiter, so concurrent jobs against different sites
// never slow each other down.
type DomainPacer struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainPacer creates a DomainPacer with the given requests-per-second
// limit. Each host gets a burst of 1, so requests are evenly spaced.
func NewDomainPacer(rps float64) *DomainPacer {
	if rps <= 0 {
		rps = DefaultRPS
	}
	return &DomainPacer{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to host. Returns an
// error if the context is canceled before the wait completes.
func (p *DomainPacer) Wait(ctx context.Context, host string) error {
	p.mu.Lock()
	limiter, ok := p.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(p.rps), 1)
		p.limiters[host] = limiter
	}
	p.mu.Unlock()

	return limiter.Wait(ctx)
}
