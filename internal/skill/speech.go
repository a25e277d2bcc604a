package skill

import (
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
)

const cardPrefix = "SessionSpeechlet - "

// BuildSpeechletResponse формирует ответ платформе. repromptText == nil означает
// «не переспрашивать»: поле reprompt в ответ не попадает.
func BuildSpeechletResponse(title, output string, repromptText *string, shouldEndSession bool) *models.SpeechletResponse {
	resp := &models.SpeechletResponse{
		OutputSpeech: models.OutputSpeech{
			Type: models.SpeechTypePlainText,
			Text: output,
		},
		Card: models.Card{
			Type:    models.CardTypeSimple,
			Title:   cardPrefix + title,
			Content: cardPrefix + output,
		},
		ShouldEndSession: shouldEndSession,
	}

	if repromptText != nil {
		resp.Reprompt = &models.Reprompt{
			OutputSpeech: models.OutputSpeech{
				Type: models.SpeechTypePlainText,
				Text: *repromptText,
			},
		}
	}
	return resp
}

// BuildResponse заворачивает ответ в конверт. Атрибуты сессии никогда не nil.
func BuildResponse(sessionAttributes map[string]any, speechlet *models.SpeechletResponse) *models.Response {
	if sessionAttributes == nil {
		sessionAttributes = map[string]any{}
	}
	return &models.Response{
		Version:           models.Version,
		SessionAttributes: sessionAttributes,
		Response:          speechlet,
	}
}

func reprompt(text string) *string {
	return &text
}
