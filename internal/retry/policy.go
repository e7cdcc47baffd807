package retry

import (
	"fmt"
	"time"
)

const (
	DefaultMaxRetries = 10
	DefaultDelay      = 60 * time.Second
)

// Policy is a fixed (count, delay) retry budget. MaxRetries does not count the first attempt.
type Policy struct {
	MaxRetries int
	Delay      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		Delay:      DefaultDelay,
	}
}

func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("retry limit must be non-negative (got %d)", p.MaxRetries)
	}
	if p.Delay < 0 {
		return fmt.Errorf("retry delay must be non-negative (got %s)", p.Delay)
	}
	return nil
}

// MaxAttempts returns the upper bound on calls made under this policy.
func (p Policy) MaxAttempts() int {
	return p.MaxRetries + 1
}
