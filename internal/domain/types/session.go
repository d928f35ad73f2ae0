package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// UnshieldState is the lifecycle state of an UnshieldRequest.
type UnshieldState string

const (
	UnshieldRequested UnshieldState = "requested"
	UnshieldSucceeded UnshieldState = "succeeded"
	UnshieldFailed    UnshieldState = "failed"
	UnshieldTimedOut  UnshieldState = "timed_out"
)

// Terminal reports whether no further transition is allowed.
func (s UnshieldState) Terminal() bool {
	return s == UnshieldSucceeded || s == UnshieldFailed || s == UnshieldTimedOut
}

// String returns the string form of the state.
func (s UnshieldState) String() string { return string(s) }

// UnshieldRequest tracks one pending private to public conversion.
type UnshieldRequest struct {
	ID           uuid.UUID
	Owner        Address
	Pair         TokenPair
	Amount       *uint256.Int
	TxHash       TxHash
	State        UnshieldState
	PriorBalance *uint256.Int
	NewBalance   *uint256.Int
	Attempts     int
	Err          error
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUnshieldRequest returns a request in the Requested state.
func NewUnshieldRequest(owner Address, pair TokenPair, amount *uint256.Int) *UnshieldRequest {
	now := time.Now()
	return &UnshieldRequest{
		ID:        uuid.New(),
		Owner:     owner,
		Pair:      pair,
		Amount:    amount,
		State:     UnshieldRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Transition moves the request to next. Terminal states are final.
func (r *UnshieldRequest) Transition(next UnshieldState) error {
	if r.State.Terminal() {
		return fmt.Errorf("unshield request %s: cannot move from %s to %s", r.ID, r.State, next)
	}
	if next == UnshieldRequested {
		return nil
	}
	r.State = next
	r.UpdatedAt = time.Now()
	return nil
}
