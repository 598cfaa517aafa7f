package login

import (
	"sync"

	"github.com/nfrund/portal/internal/domain"
)

// Guard tracks submissions that are currently in flight so the same form
// cannot be submitted twice concurrently.
type Guard struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

// NewGuard creates an empty Guard.
func NewGuard() *Guard {
	return &Guard{pending: make(map[string]struct{})}
}

// Acquire marks key as in flight. The returned release func must be called
// once the submission finishes. An empty key is never guarded.
func (g *Guard) Acquire(key string) (release func(), err error) {
	if key == "" {
		return func() {}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.pending[key]; busy {
		return nil, domain.ErrSubmissionInFlight
	}
	g.pending[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.pending, key)
			g.mu.Unlock()
		})
	}, nil
}

// InFlight reports how many submissions are pending.
func (g *Guard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}
