// Package projection publishes collection snapshots to display surfaces.
// It is a subject with a last-value cache: late subscribers immediately
// receive the current snapshot, then every subsequent one in mutation order.
package projection

import (
	"sync"

	"github.com/medghazdali/product-trial-master/internal/domain"
)

// Observer receives a complete snapshot after every mutation. Snapshots are
// never deltas; each delivered value is consistent on its own.
type Observer func([]domain.LineItem)

type Projection struct {
	mu        sync.Mutex
	last      []domain.LineItem
	observers map[int]Observer
	nextID    int
}

func New() *Projection {
	return &Projection{observers: make(map[int]Observer)}
}

// Publish records snapshot as the latest value and delivers it to all
// subscribers. Calls are serialized, so every subscriber observes snapshots
// in the same relative order.
func (p *Projection) Publish(snapshot []domain.LineItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.last = snapshot
	for _, obs := range p.observers {
		obs(snapshot)
	}
}

// Subscribe registers obs and synchronously delivers the current snapshot
// as its first value.
func (p *Projection) Subscribe(obs Observer) *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.observers[id] = obs
	obs(p.last)
	return &Subscription{projection: p, id: id}
}

// Latest returns the most recently published snapshot.
func (p *Projection) Latest() []domain.LineItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Subscription is a handle to an active observer registration.
type Subscription struct {
	projection *Projection
	id         int
	once       sync.Once
}

// Cancel stops all further delivery to the observer. It is idempotent.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.projection.mu.Lock()
		defer s.projection.mu.Unlock()
		delete(s.projection.observers, s.id)
	})
}
