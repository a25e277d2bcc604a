// Package vehicle — клиент удалённого API телеметрии и управления машиной.
package vehicle

import (
	"context"

	"github.com/pkg/errors"
)

//go:generate mockgen -destination=mock/vehicle.go -package=mock . Client

var (
	// ErrNoVehicle — на аккаунте нет ни одной машины.
	ErrNoVehicle = errors.New("no vehicle on account")
	// ErrUnavailable — автомат защиты сейчас не пропускает вызовы.
	ErrUnavailable = errors.New("vehicle api temporarily unavailable")
)

type Credentials struct {
	Email    string
	Password string
}

// Vehicle — машина, найденная в рамках одного запроса. Токен доступа живёт
// только в этом значении и не разделяется между запросами.
type Vehicle struct {
	ID    string
	token string
}

type ChargeState struct {
	BatteryLevel int `json:"battery_level"`
	// EstBatteryRange в милях; nil, если машина его не прислала.
	EstBatteryRange *float64 `json:"est_battery_range"`
}

// Client — операции с машиной, которые нужны навыку.
// Каждый вызов выполняется ровно один раз.
type Client interface {
	// VehicleID авторизуется и возвращает первую машину аккаунта.
	VehicleID(ctx context.Context, creds Credentials) (Vehicle, error)
	WakeUp(ctx context.Context, v Vehicle) error
	ChargeState(ctx context.Context, v Vehicle) (*ChargeState, error)
	SetClimate(ctx context.Context, v Vehicle, on bool) error
}
