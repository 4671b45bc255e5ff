// Package approval provides the human approval gate used by the concept and
// image stages of the listing pipeline.
//
// The core type is [Gate], a generate-present-retry-persist loop
// parameterized by three callables: a producer that creates a candidate
// artifact, a presenter that blocks until a human accepts or rejects it, and
// a persister that stores the accepted artifact and returns its handle.
//
// # Usage
//
//	gate := approval.NewGate(producer, presenter, persister,
//		approval.WithDiscard(discardFn),
//		approval.WithMaxAttempts(5),
//	)
//	handle, err := gate.Run(ctx)
//
// Rejection is normal control flow: the candidate is discarded (best-effort,
// including any remote resource it owns) and the producer is called again,
// optionally with the human's rejection note threaded into the next request.
// The loop is unbounded by default; WithMaxAttempts adds a ceiling.
//
// A producer failure is NOT a rejection — it propagates immediately and is
// never retried by the gate.
package approval
