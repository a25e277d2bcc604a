package vehicle

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/logger"
)

// Breaker — Client за автоматом защиты. API блокирует аккаунты, которые
// долбят его запросами, поэтому после серии серверных ошибок вызовы
// на время прекращаются.
type Breaker struct {
	next Client
	cb   *gobreaker.CircuitBreaker
}

func NewBreaker(next Client, settings gobreaker.Settings) *Breaker {
	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// DefaultBreakerSettings размыкает цепь после трёх запросов с долей ошибок от 60%.
func DefaultBreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
}

func (b *Breaker) VehicleID(ctx context.Context, creds Credentials) (Vehicle, error) {
	var v Vehicle
	err := b.execute(func() error {
		var err error
		v, err = b.next.VehicleID(ctx, creds)
		return err
	})
	return v, err
}

func (b *Breaker) WakeUp(ctx context.Context, v Vehicle) error {
	return b.execute(func() error {
		return b.next.WakeUp(ctx, v)
	})
}

func (b *Breaker) ChargeState(ctx context.Context, v Vehicle) (*ChargeState, error) {
	var state *ChargeState
	err := b.execute(func() error {
		var err error
		state, err = b.next.ChargeState(ctx, v)
		return err
	})
	return state, err
}

func (b *Breaker) SetClimate(ctx context.Context, v Vehicle, on bool) error {
	return b.execute(func() error {
		return b.next.SetClimate(ctx, v, on)
	})
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// execute засчитывает автомату только транспортные и серверные ошибки;
// клиентские ответы вроде пустого списка машин проходят как есть.
func (b *Breaker) execute(fn func() error) error {
	var callErr error
	_, err := b.cb.Execute(func() (interface{}, error) {
		callErr = fn()
		if callErr != nil && tripsBreaker(callErr) {
			return nil, callErr
		}
		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Wrap(ErrUnavailable, err.Error())
	}
	if err != nil {
		return err
	}
	return callErr
}

func tripsBreaker(err error) bool {
	if errors.Is(err, ErrNoVehicle) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ServerSide()
	}
	return true
}
