package steam

import "time"

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRetry
	OutcomeExhausted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetry:
		return "retry"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Outcome is the decision taken after one attempt. Delay is only set for
// OutcomeRetry.
type Outcome struct {
	Kind  OutcomeKind
	Delay time.Duration
}

// maxShift caps the doubling so retry-forever policies never overflow.
const maxShift = 20

// Backoff is a doubling retry policy without jitter. MaxRetries == 0 retries
// forever, otherwise at most MaxRetries retries follow the first attempt.
type Backoff struct {
	Initial    time.Duration
	MaxRetries int
}

// Next decides what follows an attempt that ended with err after retries
// retries were already made.
func (b Backoff) Next(retries int, err error) Outcome {
	if err == nil {
		return Outcome{Kind: OutcomeSuccess}
	}

	if b.MaxRetries > 0 && retries >= b.MaxRetries {
		return Outcome{Kind: OutcomeExhausted}
	}

	return Outcome{Kind: OutcomeRetry, Delay: b.Initial << min(retries, maxShift)}
}

// Bounded reports whether the policy can give up.
func (b Backoff) Bounded() bool {
	return b.MaxRetries > 0
}
