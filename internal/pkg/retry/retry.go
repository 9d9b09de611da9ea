// Package retry provides a small retry-policy primitive independent of any
// transport: a bounded number of attempts, a transient-fault predicate, and
// an exponential backoff schedule. Callers wrap an operation with a Policy
// and the policy decides whether a failure is worth another attempt.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Defaults used by NewPolicy. The schedule is BaseDelay doubled on each
// retry: 2s, 4s, 8s with the defaults below.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 2 * time.Second
)

// Policy describes how an operation is retried.
//
// Transient classifies an error as retryable; when nil, every error is
// treated as transient. Non-transient errors abort immediately and are
// returned to the caller untouched. OnRetry, when set, is invoked before
// each backoff sleep with the failed attempt number (1-based), the error,
// and the upcoming delay.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Transient  func(error) bool
	OnRetry    func(attempt int, err error, delay time.Duration)
}

// NewPolicy returns a policy with the default bounded exponential schedule
// and the given transient classifier.
func NewPolicy(transient func(error) bool) Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		Transient:  transient,
	}
}

// Do runs op, retrying transient failures up to MaxRetries times with
// exponential backoff. It returns nil on the first success, the error
// unchanged for non-transient failures, the last error when retries are
// exhausted, and the context error when ctx is cancelled mid-schedule.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	schedule := backoff.NewExponentialBackOff()
	schedule.InitialInterval = p.BaseDelay
	schedule.Multiplier = 2
	schedule.RandomizationFactor = 0
	schedule.MaxInterval = p.BaseDelay << uint(p.MaxRetries)
	schedule.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if p.Transient != nil && !p.Transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, delay time.Duration) {
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}
	}

	//nolint:gosec // MaxRetries is a small non-negative config value
	bounded := backoff.WithMaxRetries(schedule, uint64(p.MaxRetries))
	return backoff.RetryNotify(operation, backoff.WithContext(bounded, ctx), notify)
}
