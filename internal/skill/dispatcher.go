package skill

import (
	"context"

	"github.com/pkg/errors"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
)

const (
	IntentStatus     = "MarvinStatusIntent"
	IntentStartHVAC  = "MarvinStartHVACIntent"
	IntentStopHVAC   = "MarvinStopHVACIntent"
	IntentMyColorIs  = "MyColorIsIntent"
	IntentWhatsColor = "WhatsMyColorIntent"
	IntentHelp       = "AMAZON.HelpIntent"
	IntentStop       = "AMAZON.StopIntent"
	IntentCancel     = "AMAZON.CancelIntent"
)

type action func(s *Skill, ctx context.Context, req models.Request) *models.Response

var actions = map[string]action{
	IntentStatus:     (*Skill).status,
	IntentStartHVAC:  (*Skill).startClimate,
	IntentStopHVAC:   (*Skill).stopClimate,
	IntentMyColorIs:  (*Skill).setColor,
	IntentWhatsColor: (*Skill).whatsMyColor,
	IntentHelp:       func(s *Skill, _ context.Context, _ models.Request) *models.Response { return s.welcome() },
	IntentStop:       func(s *Skill, _ context.Context, _ models.Request) *models.Response { return s.sessionEnd() },
	IntentCancel:     func(s *Skill, _ context.Context, _ models.Request) *models.Response { return s.sessionEnd() },
}

// dispatch запускает ровно одно действие по имени интента.
func (s *Skill) dispatch(ctx context.Context, req models.Request) (*models.Response, error) {
	name := req.Request.Intent.Name

	act, ok := actions[name]
	if !ok {
		intentsTotal.WithLabelValues(unknownIntent).Inc()
		return nil, errors.Wrap(ErrUnknownIntent, name)
	}
	intentsTotal.WithLabelValues(name).Inc()

	return act(s, ctx, req), nil
}
