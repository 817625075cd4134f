package stripewebhooks

import "sync"

// Keeps the guard from growing without bound across a long-lived process.
const maxSeenEvents = 10000

// replayGuard remembers Stripe event IDs already processed by this process,
// so a redelivered event does not issue or revoke keys twice. Process-local
// only: a restart forgets history.
type replayGuard struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newReplayGuard() *replayGuard {
	return &replayGuard{seen: make(map[string]struct{})}
}

func (g *replayGuard) processed(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.seen[id]
	return ok
}

func (g *replayGuard) mark(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.seen) >= maxSeenEvents {
		g.seen = make(map[string]struct{})
	}
	g.seen[id] = struct{}{}
}
