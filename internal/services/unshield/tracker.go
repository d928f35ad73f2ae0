package unshield

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"shieldwallet/internal/domain"
)

// DefaultHistory is how many released requests a Tracker keeps for Get.
const DefaultHistory = 32

// Tracker keeps unshield requests and enforces one active request per owner
// and token pair. Released requests stay queryable until History newer ones
// have been released.
type Tracker struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*domain.UnshieldRequest
	active   map[string]uuid.UUID
	released []uuid.UUID // oldest first

	History int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		requests: make(map[uuid.UUID]*domain.UnshieldRequest),
		active:   make(map[string]uuid.UUID),
		History:  DefaultHistory,
	}
}

func activeKey(owner domain.Address, pair domain.TokenPair) string {
	return domain.AddressKey(owner) + "|" + pair.Key()
}

// Begin registers a new request, or fails with domain.ErrUnshieldInProgress
// when the pair already has an active one.
func (t *Tracker) Begin(owner domain.Address, pair domain.TokenPair, amount *uint256.Int) (*domain.UnshieldRequest, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := activeKey(owner, pair)
	if id, busy := t.active[k]; busy {
		return nil, fmt.Errorf("%w (request %s)", domain.ErrUnshieldInProgress, id)
	}
	req := domain.NewUnshieldRequest(owner, pair, amount)
	t.requests[req.ID] = req
	t.active[k] = req.ID
	return req, nil
}

// Update applies fn to the request under the tracker lock.
func (t *Tracker) Update(id uuid.UUID, fn func(*domain.UnshieldRequest) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	req, ok := t.requests[id]
	if !ok {
		return fmt.Errorf("unknown unshield request %s", id)
	}
	return fn(req)
}

// Release frees the active slot held by id and drops the oldest released
// requests beyond History.
func (t *Tracker) Release(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	req, ok := t.requests[id]
	if !ok {
		return
	}
	k := activeKey(req.Owner, req.Pair)
	if t.active[k] != id {
		return
	}
	delete(t.active, k)

	t.released = append(t.released, id)
	for len(t.released) > max(t.History, 0) {
		delete(t.requests, t.released[0])
		t.released = t.released[1:]
	}
}

// Len returns the number of requests held, active or released.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.requests)
}

// Get returns a copy of the request with id.
func (t *Tracker) Get(id uuid.UUID) (domain.UnshieldRequest, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	req, ok := t.requests[id]
	if !ok {
		return domain.UnshieldRequest{}, false
	}
	return *req, true
}

// Active returns the active request for owner and pair, if any.
func (t *Tracker) Active(owner domain.Address, pair domain.TokenPair) (domain.UnshieldRequest, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.active[activeKey(owner, pair)]
	if !ok {
		return domain.UnshieldRequest{}, false
	}
	return *t.requests[id], true
}
