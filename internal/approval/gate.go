package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/orizehavi/listingforge/internal/logging"
)

// ErrMaxAttemptsReached is returned when a configured attempt ceiling is
// exhausted without an approval.
var ErrMaxAttemptsReached = errors.New("approval: max attempts reached")

// Request describes one production attempt. Attempt starts at 1. Feedback
// carries the human's note from the previous rejection, or "" on the first
// attempt and whenever the human left no note.
type Request struct {
	Attempt  int
	Feedback string
}

// Decision is the human's verdict on a presented candidate. Feedback is an
// optional note that is threaded into the next production request on
// rejection; it is ignored on approval.
type Decision struct {
	Approved bool
	Feedback string
}

// Producer creates a candidate artifact for the given request.
type Producer[T any] func(ctx context.Context, req Request) (T, error)

// Presenter shows a candidate to a human and blocks until a decision is
// made. This is a human-interaction boundary, not a network retry: an error
// means the channel itself failed (e.g. the context was canceled) and
// propagates out of the gate.
type Presenter[T any] func(ctx context.Context, artifact T, attempt int) (Decision, error)

// Persister stores an approved artifact and returns its handle.
type Persister[T, H any] func(ctx context.Context, artifact T) (H, error)

// Discarder releases a rejected candidate's resources (e.g. deletes a stored
// image). Failures are logged and swallowed — a failed discard must not
// break the retry loop.
type Discarder[T any] func(ctx context.Context, artifact T) error

// Gate runs the produce-present-persist loop for one artifact type.
// A Gate is stateless between Run calls and safe for concurrent use.
type Gate[T, H any] struct {
	produce Producer[T]
	present Presenter[T]
	persist Persister[T, H]

	discard     Discarder[T]
	maxAttempts int // 0 means unbounded
	logger      *logging.Logger
}

// Option configures a Gate.
type Option[T, H any] func(*Gate[T, H])

// WithDiscard sets the best-effort cleanup called for each rejected candidate.
func WithDiscard[T, H any](d Discarder[T]) Option[T, H] {
	return func(g *Gate[T, H]) { g.discard = d }
}

// WithMaxAttempts bounds the number of production attempts. n <= 0 keeps the
// default unbounded behavior.
func WithMaxAttempts[T, H any](n int) Option[T, H] {
	return func(g *Gate[T, H]) { g.maxAttempts = n }
}

// WithLogger sets the gate's logger.
func WithLogger[T, H any](l *logging.Logger) Option[T, H] {
	return func(g *Gate[T, H]) { g.logger = l }
}

// NewGate creates a Gate from the three required callables.
func NewGate[T, H any](produce Producer[T], present Presenter[T], persist Persister[T, H], opts ...Option[T, H]) (*Gate[T, H], error) {
	if produce == nil {
		return nil, errors.New("approval: producer is required")
	}
	if present == nil {
		return nil, errors.New("approval: presenter is required")
	}
	if persist == nil {
		return nil, errors.New("approval: persister is required")
	}

	g := &Gate[T, H]{
		produce: produce,
		present: present,
		persist: persist,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.NopLogger()
	}
	return g, nil
}

// Run executes the loop until a candidate is approved and persisted, the
// context is canceled, an attempt ceiling is hit, or the producer,
// presenter, or persister fails.
//
// Exactly one artifact is persisted per successful call; zero or more
// rejected candidates are discarded along the way.
func (g *Gate[T, H]) Run(ctx context.Context) (H, error) {
	var zero H
	feedback := ""

	for attempt := 1; ; attempt++ {
		if g.maxAttempts > 0 && attempt > g.maxAttempts {
			return zero, fmt.Errorf("%w after %d attempts", ErrMaxAttemptsReached, g.maxAttempts)
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		candidate, err := g.produce(ctx, Request{Attempt: attempt, Feedback: feedback})
		if err != nil {
			// A generation failure is not a rejection; it propagates immediately.
			return zero, err
		}

		decision, err := g.present(ctx, candidate, attempt)
		if err != nil {
			g.discardCandidate(ctx, candidate)
			return zero, err
		}

		if decision.Approved {
			g.logger.Debug("candidate approved", "attempt", attempt)
			return g.persist(ctx, candidate)
		}

		g.logger.Info("candidate rejected, regenerating", "attempt", attempt)
		g.discardCandidate(ctx, candidate)
		feedback = decision.Feedback
	}
}

// discardCandidate runs the configured discarder, logging but swallowing
// any failure.
func (g *Gate[T, H]) discardCandidate(ctx context.Context, candidate T) {
	if g.discard == nil {
		return
	}
	if err := g.discard(ctx, candidate); err != nil {
		g.logger.Warn("failed to discard rejected candidate", "error", err)
	}
}
