// Package sequence implements last-issued-request-wins ordering for
// fragments that can be requested repeatedly in quick succession.
package sequence

import "sync"

// Target names a region of the page whose content is replaced by responses.
type Target string

const (
	Recommendations Target = "recommendations"
	Businesses      Target = "businesses"
)

// Guard issues increasing ticket numbers per target. A response may be
// applied only while its ticket is still the latest issued for the target.
type Guard struct {
	mu     sync.Mutex
	latest map[Target]uint64
}

func NewGuard() *Guard {
	return &Guard{latest: make(map[Target]uint64)}
}

// Issue returns a new ticket for target, superseding all earlier ones.
func (g *Guard) Issue(target Target) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest[target]++
	return g.latest[target]
}

// IsLatest reports whether ticket is still the newest one for target.
func (g *Guard) IsLatest(target Target, ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[target] == ticket
}
