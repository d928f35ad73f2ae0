package unshield

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// Defaults for settlement polling.
const (
	DefaultInterval    = 5 * time.Second
	DefaultMaxAttempts = 20
)

// Config controls settlement polling.
type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

// Service submits unshield requests and polls for settlement.
type Service struct {
	chain   domain.Chain
	tracker *Tracker
	cfg     Config
}

// New constructs an unshield Service. Zero config fields take the defaults.
func New(chain domain.Chain, tracker *Tracker, cfg Config) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if tracker == nil {
		tracker = NewTracker()
	}
	return &Service{chain: chain, tracker: tracker, cfg: cfg}
}

// Tracker returns the request tracker.
func (s *Service) Tracker() *Tracker { return s.tracker }

// Unshield submits unshield(amount) and waits for the public balance to move.
//
// Steps:
//  1. Claim the active slot for the signer and pair.
//  2. Submit the unshield transaction and wait for it to be mined; a revert
//     fails the request.
//  3. Record the public balance as the prior balance.
//  4. Poll the public balance every Interval, at most MaxAttempts times,
//     stopping at the first change.
//
// A cancelled ctx abandons the request in the Requested state.
func (s *Service) Unshield(
	ctx context.Context,
	signer domain.Signer,
	pair domain.TokenPair,
	amount *uint256.Int,
) (*domain.UnshieldRequest, error) {
	owner := signer.Address()
	req, err := s.tracker.Begin(owner, pair, amount)
	if err != nil {
		return nil, err
	}
	defer s.tracker.Release(req.ID)

	log := logger.Log.WithFields(logrus.Fields{
		"component": "unshield",
		"request":   req.ID.String(),
		"owner":     owner.Hex(),
		"token":     pair.Name,
	})

	tx, err := s.chain.PrivateToken(pair.PrivateAddress).Unshield(ctx, signer, amount)
	if err != nil {
		return s.fail(ctx, req, fmt.Errorf("submit unshield: %w", err))
	}
	s.update(req, func(r *domain.UnshieldRequest) { r.TxHash = tx })
	log.WithField("tx", tx.Hex()).Info("unshield submitted")

	if _, err := s.chain.WaitMined(ctx, tx); err != nil {
		return s.fail(ctx, req, err)
	}

	public := s.chain.PublicToken(pair.PublicAddress)
	prior, err := public.BalanceOf(ctx, owner)
	if err != nil {
		return s.fail(ctx, req, fmt.Errorf("read prior balance: %w", err))
	}
	s.update(req, func(r *domain.UnshieldRequest) { r.PriorBalance = prior })

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			log.WithField("attempts", attempt-1).Info("unshield polling abandoned")
			return s.snapshot(req), ctx.Err()
		case <-timer.C:
		}

		current, err := public.BalanceOf(ctx, owner)
		s.update(req, func(r *domain.UnshieldRequest) { r.Attempts = attempt })
		if err != nil {
			return s.fail(ctx, req, fmt.Errorf("poll balance: %w", err))
		}
		if !current.Eq(prior) {
			s.finish(req, domain.UnshieldSucceeded, func(r *domain.UnshieldRequest) { r.NewBalance = current })
			log.WithField("attempts", attempt).Info("unshield settled")
			return s.snapshot(req), nil
		}
		timer.Reset(s.cfg.Interval)
	}

	s.finish(req, domain.UnshieldTimedOut, func(r *domain.UnshieldRequest) { r.Err = domain.ErrUnshieldDelayed })
	log.WithField("attempts", s.cfg.MaxAttempts).Warn("unshield still pending after polling budget")
	return s.snapshot(req), domain.ErrUnshieldDelayed
}

// fail marks req Failed, unless ctx was cancelled, which abandons it.
func (s *Service) fail(ctx context.Context, req *domain.UnshieldRequest, err error) (*domain.UnshieldRequest, error) {
	if ctx.Err() != nil {
		return s.snapshot(req), ctx.Err()
	}
	s.finish(req, domain.UnshieldFailed, func(r *domain.UnshieldRequest) { r.Err = err })
	return s.snapshot(req), err
}

func (s *Service) finish(req *domain.UnshieldRequest, state domain.UnshieldState, fn func(*domain.UnshieldRequest)) {
	_ = s.tracker.Update(req.ID, func(r *domain.UnshieldRequest) error {
		fn(r)
		return r.Transition(state)
	})
}

func (s *Service) update(req *domain.UnshieldRequest, fn func(*domain.UnshieldRequest)) {
	_ = s.tracker.Update(req.ID, func(r *domain.UnshieldRequest) error {
		fn(r)
		r.UpdatedAt = time.Now()
		return nil
	})
}

func (s *Service) snapshot(req *domain.UnshieldRequest) *domain.UnshieldRequest {
	out, _ := s.tracker.Get(req.ID)
	return &out
}

// Compile-time assertion that Service implements domain.UnshieldService.
var _ domain.UnshieldService = (*Service)(nil)
