package bridges

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"

	"github.com/chaosforge/damage-api/internal/errors"
)

// Resilience defaults.
const (
	DefaultCallTimeout      = 2 * time.Second
	DefaultMaxRetries       = 3
	DefaultInitialInterval  = 50 * time.Millisecond
	DefaultBreakerThreshold = 5
	DefaultBreakerCooldown  = 30 * time.Second
)

// ResilienceConfig tunes the retry and circuit-breaker policy wrapped
// around one bridge.
type ResilienceConfig struct {
	// CallTimeout bounds each individual bridge call.
	CallTimeout time.Duration

	// MaxRetries is the number of retry attempts after the first failure.
	MaxRetries uint64

	// InitialInterval seeds the exponential backoff between attempts.
	InitialInterval time.Duration

	// BreakerThreshold is the consecutive-failure count that opens the
	// breaker.
	BreakerThreshold uint32

	// BreakerCooldown is how long the breaker stays open before a
	// half-open trial call.
	BreakerCooldown time.Duration
}

func (c *ResilienceConfig) withDefaults() *ResilienceConfig {
	out := &ResilienceConfig{
		CallTimeout:      DefaultCallTimeout,
		MaxRetries:       DefaultMaxRetries,
		InitialInterval:  DefaultInitialInterval,
		BreakerThreshold: DefaultBreakerThreshold,
		BreakerCooldown:  DefaultBreakerCooldown,
	}
	if c == nil {
		return out
	}
	if c.CallTimeout > 0 {
		out.CallTimeout = c.CallTimeout
	}
	if c.MaxRetries > 0 {
		out.MaxRetries = c.MaxRetries
	}
	if c.InitialInterval > 0 {
		out.InitialInterval = c.InitialInterval
	}
	if c.BreakerThreshold > 0 {
		out.BreakerThreshold = c.BreakerThreshold
	}
	if c.BreakerCooldown > 0 {
		out.BreakerCooldown = c.BreakerCooldown
	}
	return out
}

type resilientBridge struct {
	inner   Bridge
	cfg     *ResilienceConfig
	breaker *gobreaker.CircuitBreaker[any]
}

// Resilient wraps a bridge with per-call timeouts, exponential backoff
// retries for retryable failures, and a per-bridge circuit breaker. After
// the failure threshold the bridge is treated as open and calls
// short-circuit to an INTEGRATION error until the cooldown elapses.
func Resilient(inner Bridge, cfg *ResilienceConfig) Bridge {
	resolved := cfg.withDefaults()

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    inner.Name(),
		Timeout: resolved.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= resolved.BreakerThreshold
		},
		// Caller-side errors (invalid arguments, missing configuration)
		// say nothing about bridge health and must not open the circuit.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.IsRetryable(err)
		},
	})

	return &resilientBridge{
		inner:   inner,
		cfg:     resolved,
		breaker: breaker,
	}
}

func (r *resilientBridge) Name() string {
	return r.inner.Name()
}

func (r *resilientBridge) GetBaseContribution(ctx context.Context, input *BaseContributionInput) (*BaseContributionOutput, error) {
	out, err := r.execute(ctx, "GetBaseContribution", func(callCtx context.Context) (any, error) {
		return r.inner.GetBaseContribution(callCtx, input)
	})
	if err != nil {
		return nil, err
	}
	return out.(*BaseContributionOutput), nil
}

func (r *resilientBridge) GetModifiers(ctx context.Context, input *ModifiersInput) (*ModifiersOutput, error) {
	out, err := r.execute(ctx, "GetModifiers", func(callCtx context.Context) (any, error) {
		return r.inner.GetModifiers(callCtx, input)
	})
	if err != nil {
		return nil, err
	}
	return out.(*ModifiersOutput), nil
}

func (r *resilientBridge) CheckImmunity(ctx context.Context, input *ImmunityInput) (*ImmunityOutput, error) {
	out, err := r.execute(ctx, "CheckImmunity", func(callCtx context.Context) (any, error) {
		return r.inner.CheckImmunity(callCtx, input)
	})
	if err != nil {
		return nil, err
	}
	return out.(*ImmunityOutput), nil
}

func (r *resilientBridge) execute(ctx context.Context, op string, call func(context.Context) (any, error)) (any, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		var out any

		attempt := func() error {
			callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
			defer cancel()

			value, callErr := call(callCtx)
			if callErr != nil {
				if callCtx.Err() != nil {
					return errors.WrapWithCodef(callErr, errors.CodeIntegration,
						"%s bridge: %s timed out", r.inner.Name(), op)
				}
				if !errors.IsRetryable(callErr) {
					return backoff.Permanent(callErr)
				}
				return callErr
			}
			out = value
			return nil
		}

		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = r.cfg.InitialInterval

		if retryErr := backoff.Retry(attempt,
			backoff.WithContext(backoff.WithMaxRetries(policy, r.cfg.MaxRetries), ctx)); retryErr != nil {
			return nil, retryErr
		}
		return out, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errors.Integrationf("%s bridge: circuit open, %s rejected", r.inner.Name(), op)
		}
		if errors.IsRetryable(err) || errors.GetCode(err) == errors.CodeInternal {
			return nil, errors.WrapWithCodef(err, errors.CodeIntegration,
				"%s bridge: %s failed after retries", r.inner.Name(), op)
		}
		return nil, err
	}
	return result, nil
}
