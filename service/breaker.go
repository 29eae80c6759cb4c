package service

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/metrics"
	"portfolio-photo-sync/models"
)

// BreakerSettings tunes the circuit breaker around a lister.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before a probe.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings suits a manually triggered, low-volume sync.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 3, OpenTimeout: time.Minute}
}

// BreakerLister wraps an AssetListerInterface with a circuit breaker so a
// failing host is rejected fast instead of timing out on every trigger.
type BreakerLister struct {
	next AssetListerInterface
	cb   *gobreaker.CircuitBreaker[[]models.RemoteAsset]
	name string
}

// NewBreakerLister wraps next
func NewBreakerLister(next AssetListerInterface, settings BreakerSettings) *BreakerLister {
	name := next.Provider() + "-list"
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 3
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.RemoteAsset](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		// Bad input and caller cancellation say nothing about the host's health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrInvalidScope) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerLister{next: next, cb: cb, name: name}
}

var _ AssetListerInterface = (*BreakerLister)(nil)

// Provider returns the wrapped provider's name
func (b *BreakerLister) Provider() string { return b.next.Provider() }

// ListAssets delegates through the breaker. An open circuit is a TransportError.
func (b *BreakerLister) ListAssets(ctx context.Context, scope string, maxResults int) ([]models.RemoteAsset, error) {
	assets, err := b.cb.Execute(func() ([]models.RemoteAsset, error) {
		return b.next.ListAssets(ctx, scope, maxResults)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, &TransportError{Provider: b.Provider(), Err: err}
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return assets, nil
}

// State returns the breaker state, for health reporting.
func (b *BreakerLister) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
