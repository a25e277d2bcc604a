package skill

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/config"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/logger"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/vehicle"
)

var (
	ErrInvalidApplicationID   = errors.New("invalid application id")
	ErrUnknownIntent          = errors.New("unknown intent")
	ErrUnsupportedRequestType = errors.New("unsupported request type")
)

type Skill struct {
	cfg      config.Config
	vehicles vehicle.Client
}

func New(cfg config.Config, vehicles vehicle.Client) *Skill {
	return &Skill{cfg: cfg, vehicles: vehicles}
}

// Handle обрабатывает один запрос платформы целиком. Паника внутри обработки
// возвращается как ошибка.
func (s *Skill) Handle(ctx context.Context, req models.Request) (resp *models.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("skill panic: %v", r)
		}
		status := statusOK
		if err != nil {
			status = statusError
		}
		requestsTotal.WithLabelValues(requestTypeLabel(req.Request.Type), status).Inc()
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := logger.Log.With(
		zap.String("requestId", req.Request.RequestID),
		zap.String("sessionId", req.Session.SessionID),
	)
	log.Debug("application id", zap.String("applicationId", req.Session.Application.ApplicationID))

	// до проверки приложения никакие действия не выполняются
	if req.Session.Application.ApplicationID != s.cfg.AlexaAppID {
		log.Warn("rejecting request from unknown application",
			zap.String("applicationId", req.Session.Application.ApplicationID))
		return nil, ErrInvalidApplicationID
	}

	if req.Session.New {
		log.Info("session started")
	}

	switch req.Request.Type {
	case models.TypeLaunchRequest:
		log.Info("launch")
		return s.welcome(), nil
	case models.TypeIntentRequest:
		log.Info("intent", zap.String("intent", req.Request.Intent.Name))
		return s.dispatch(ctx, req)
	case models.TypeSessionEndedRequest:
		log.Info("session ended", zap.String("reason", req.Request.Reason))
		return BuildResponse(nil, nil), nil
	default:
		return nil, errors.Wrap(ErrUnsupportedRequestType, req.Request.Type)
	}
}
