package translation

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultBreakerSettings opens the breaker after three consecutive failed
// exchanges and lets one request through again after thirty seconds.
// Cancellation does not count as a failure.
func DefaultBreakerSettings(logger *zap.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "chat-completion",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	}
}

// breakerService fails fast once the wrapped service keeps failing. It never
// retries a request.
type breakerService struct {
	next ChatService
	cb   *gobreaker.CircuitBreaker
}

func newBreakerService(next ChatService, settings gobreaker.Settings) *breakerService {
	return &breakerService{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *breakerService) Complete(ctx context.Context, req Request) ([]Choice, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Complete(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	choices, _ := res.([]Choice)
	return choices, nil
}
