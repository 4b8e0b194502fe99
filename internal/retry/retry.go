package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrExhausted = errors.New("retry attempts exhausted")

// Policy controls how often an operation is retried.
// MaxAttempts of 0 retries forever. A Multiplier of 1 or less keeps the
// interval constant.
type Policy struct {
	MaxAttempts int
	Interval    time.Duration
	Multiplier  float64
	MaxInterval time.Duration
}

func Constant(interval time.Duration) Policy {
	return Policy{Interval: interval, Multiplier: 1}
}

func (p Policy) next(current time.Duration) time.Duration {
	if p.Multiplier <= 1 {
		return current
	}
	next := time.Duration(float64(current) * p.Multiplier)
	if p.MaxInterval > 0 && next > p.MaxInterval {
		return p.MaxInterval
	}
	return next
}

type Retrier struct {
	policy Policy
	log    *logrus.Entry
	sleep  func(ctx context.Context, d time.Duration) error
}

func New(logger *logrus.Logger, policy Policy) *Retrier {
	return &Retrier{
		policy: policy,
		log:    logger.WithField("component", "retry"),
		sleep:  sleepContext,
	}
}

// Do runs op until it succeeds, the policy runs out of attempts or ctx is
// done. Attempts are numbered from 1.
func (r *Retrier) Do(ctx context.Context, name string, op func(ctx context.Context, attempt int) error) error {
	log := r.log.WithField("operation", name)
	delay := r.policy.Interval

	for attempt := 1; ; attempt++ {
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}

		entry := log.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err,
		})
		if r.policy.MaxAttempts > 0 && attempt >= r.policy.MaxAttempts {
			entry.Warn("Operation failed, giving up")
			return fmt.Errorf("%s: %w after %d attempts: %w", name, ErrExhausted, attempt, err)
		}
		entry.WithField("retry", delay).Warn("Operation failed")

		if err := r.sleep(ctx, delay); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		delay = r.policy.next(delay)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
