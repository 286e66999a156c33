// Package syncer pushes pending local writes to the server. Each entity has
// its own worker; a scheduler drives them on an interval, skipping rounds
// while the server is unreachable and abandoning a write after the retry
// ceiling is reached.
package syncer

import "context"

// MaxAttempts is the retry ceiling for one pending batch. An attempt counter
// above it abandons the batch without contacting the server.
const MaxAttempts = 3

// Result is the outcome of one sync attempt.
type Result int

const (
	// Success means every pending row was pushed and acknowledged, or there
	// was nothing to push.
	Success Result = iota
	// Retry means the attempt failed but a later one may succeed.
	Retry
	// Failure means the batch is abandoned for this round.
	Failure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Retry:
		return "retry"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Worker pushes one entity's pending rows. The attempt counter starts at 1;
// implementations must return Failure without a remote call once it exceeds
// MaxAttempts.
type Worker interface {
	Name() string
	RunOnce(ctx context.Context, attempt int) Result
}
