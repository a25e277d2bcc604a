package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/logger"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/skill"
)

type handler interface {
	Handle(ctx context.Context, req models.Request) (*models.Response, error)
}

type app struct {
	skill handler
}

func newApp(h handler) *app {
	return &app{skill: h}
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))

		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger.Log.Debug("decoding request")
	var req models.Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp, err := a.skill.Handle(ctx, req)
	if err != nil {
		code := statusCode(err)
		logger.Log.Info("skill returned error", zap.Error(err), zap.Int("status", code))

		w.WriteHeader(code)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP 200 response")
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, models.ErrMalformedEnvelope), errors.Is(err, skill.ErrUnknownIntent):
		return http.StatusBadRequest
	case errors.Is(err, skill.ErrInvalidApplicationID):
		return http.StatusForbidden
	case errors.Is(err, skill.ErrUnsupportedRequestType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
