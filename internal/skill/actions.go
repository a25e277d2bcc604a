package skill

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/logger"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/vehicle"
)

const (
	FavoriteColorKey = "favoriteColor"
	colorSlot        = "Color"
)

// ErrTimeout — API машины не ответило за CallTimeout.
var ErrTimeout = errors.New("vehicle api call timed out")

func (s *Skill) welcome() *models.Response {
	text := fmt.Sprintf("Hi there! You can ask me about the status of %s or start the A/C.", s.cfg.VehicleName)
	again := fmt.Sprintf("You can ask me about the status of %s by saying, what's the status?", s.cfg.VehicleName)

	return BuildResponse(nil, BuildSpeechletResponse("Welcome", text, reprompt(again), false))
}

func (s *Skill) sessionEnd() *models.Response {
	return BuildResponse(nil, BuildSpeechletResponse("Session Ended", "Bye bye!", nil, true))
}

func (s *Skill) vehicleFailure(op string, err error) *models.Response {
	logger.Log.Error("vehicle api failed", zap.String("op", op), zap.Error(err))

	text := fmt.Sprintf("Sorry, I couldn't reach %s right now. Please try again later.", s.cfg.VehicleName)
	return BuildResponse(nil, BuildSpeechletResponse("Error", text, nil, true))
}

// status: авторизация, идентификатор машины, при необходимости пробуждение,
// затем состояние батареи.
func (s *Skill) status(ctx context.Context, _ models.Request) *models.Response {
	v, err := s.findVehicle(ctx)
	if err != nil {
		return s.vehicleFailure("vehicle id", err)
	}

	if s.cfg.WakeBeforeStatus {
		if err := s.call(ctx, "wake_up", func(ctx context.Context) error {
			return s.vehicles.WakeUp(ctx, v)
		}); err != nil {
			return s.vehicleFailure("wake up", err)
		}
	}

	var state *vehicle.ChargeState
	if err := s.call(ctx, "charge_state", func(ctx context.Context) error {
		var err error
		state, err = s.vehicles.ChargeState(ctx, v)
		return err
	}); err != nil {
		return s.vehicleFailure("charge state", err)
	}

	logger.Log.Info("charge state", zap.String("vehicleId", v.ID), zap.Int("batteryLevel", state.BatteryLevel))

	return BuildResponse(nil, BuildSpeechletResponse("Status", statusText(state), nil, true))
}

func statusText(state *vehicle.ChargeState) string {
	text := fmt.Sprintf("Battery is currently at %d%%.", state.BatteryLevel)
	if state.EstBatteryRange != nil {
		text += fmt.Sprintf(" You have %d miles of range left", int(*state.EstBatteryRange))
	}
	return text
}

func (s *Skill) startClimate(ctx context.Context, _ models.Request) *models.Response {
	if err := s.setClimate(ctx, true); err != nil {
		return s.vehicleFailure("climate on", err)
	}

	text := fmt.Sprintf("%s's air condition is now on. Sweet!", s.cfg.VehicleName)
	return BuildResponse(nil, BuildSpeechletResponse("A/C", text, nil, true))
}

func (s *Skill) stopClimate(ctx context.Context, _ models.Request) *models.Response {
	if err := s.setClimate(ctx, false); err != nil {
		return s.vehicleFailure("climate off", err)
	}

	text := fmt.Sprintf("%s's air condition is now off.", s.cfg.VehicleName)
	return BuildResponse(nil, BuildSpeechletResponse("A/C", text, nil, true))
}

// setClimate всегда будит машину перед командой.
func (s *Skill) setClimate(ctx context.Context, on bool) error {
	v, err := s.findVehicle(ctx)
	if err != nil {
		return err
	}

	if err := s.call(ctx, "wake_up", func(ctx context.Context) error {
		return s.vehicles.WakeUp(ctx, v)
	}); err != nil {
		return err
	}

	return s.call(ctx, "set_climate", func(ctx context.Context) error {
		return s.vehicles.SetClimate(ctx, v, on)
	})
}

func (s *Skill) setColor(_ context.Context, req models.Request) *models.Response {
	attrs := copyAttributes(req.Session.Attributes)

	color, ok := req.Request.Intent.SlotValue(colorSlot)
	if !ok {
		return BuildResponse(attrs, BuildSpeechletResponse("Favorite Color",
			"I'm not sure what your favorite color is. Please try again.",
			reprompt("I'm not sure what your favorite color is. You can tell me your favorite color by saying, my favorite color is red."),
			false))
	}

	attrs[FavoriteColorKey] = color
	text := fmt.Sprintf("I now know your favorite color is %s. You can ask me your favorite color by saying, what's my favorite color?", color)

	return BuildResponse(attrs, BuildSpeechletResponse("Favorite Color", text,
		reprompt("You can ask me your favorite color by saying, what's my favorite color?"),
		false))
}

func (s *Skill) whatsMyColor(_ context.Context, req models.Request) *models.Response {
	attrs := copyAttributes(req.Session.Attributes)

	color, ok := attrs[FavoriteColorKey].(string)
	if !ok || color == "" {
		return BuildResponse(attrs, BuildSpeechletResponse("Favorite Color",
			"I'm not sure what your favorite color is, you can say, my favorite color is red.",
			nil, false))
	}

	text := fmt.Sprintf("Your favorite color is %s. Goodbye.", color)
	return BuildResponse(attrs, BuildSpeechletResponse("Favorite Color", text, nil, true))
}

func copyAttributes(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

// findVehicle авторизуется заново на каждый запрос; токен живёт только
// в возвращённом значении.
func (s *Skill) findVehicle(ctx context.Context) (vehicle.Vehicle, error) {
	creds := vehicle.Credentials{Email: s.cfg.Username, Password: s.cfg.Password}

	var v vehicle.Vehicle
	err := s.call(ctx, "vehicle_id", func(ctx context.Context) error {
		var err error
		v, err = s.vehicles.VehicleID(ctx, creds)
		return err
	})
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	if v.ID == "" {
		return vehicle.Vehicle{}, vehicle.ErrNoVehicle
	}
	return v, nil
}

// call выполняет один запрос к API машины с дедлайном CallTimeout.
// Если клиент не уложился в дедлайн, возвращается ErrTimeout, даже когда
// сам клиент контекст игнорирует. Паника клиента возвращается как ошибка:
// recover в Handle её не увидит, она случается в другой горутине.
func (s *Skill) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- errors.Errorf("vehicle api %s panic: %v", op, r)
			}
		}()
		done <- fn(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = errors.Wrap(ErrTimeout, op)
	}

	status := statusOK
	if err != nil {
		status = statusError
	}
	vehicleCallDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())

	logger.Log.Debug("vehicle api call",
		zap.String("op", op),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	return err
}
