package models

import (
	"github.com/pkg/errors"
)

const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeSessionEndedRequest = "SessionEndedRequest"

	SpeechTypePlainText = "PlainText"
	CardTypeSimple      = "Simple"

	Version = "1.0"
)

var ErrMalformedEnvelope = errors.New("malformed request envelope")

// Request описывает входящий запрос платформы.
// См. https://developer.amazon.com/en-US/docs/alexa/custom-skills/request-and-response-json-reference.html
type Request struct {
	Version string         `json:"version"`
	Session Session        `json:"session"`
	Request RequestPayload `json:"request"`
}

type Session struct {
	New         bool           `json:"new"`
	SessionID   string         `json:"sessionId"`
	Application Application    `json:"application"`
	Attributes  map[string]any `json:"attributes"`
	User        User           `json:"user"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

// RequestPayload описывает тело запроса. Intent заполнен только для IntentRequest,
// Reason только для SessionEndedRequest.
type RequestPayload struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp,omitempty"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// SlotValue возвращает значение слота и признак того, что слот заполнен.
func (i Intent) SlotValue(name string) (string, bool) {
	slot, ok := i.Slots[name]
	if !ok || slot.Value == "" {
		return "", false
	}
	return slot.Value, true
}

// Validate отклоняет запросы, в которых нет полей, нужных для маршрутизации.
func (r Request) Validate() error {
	if r.Session.Application.ApplicationID == "" {
		return errors.Wrap(ErrMalformedEnvelope, "session.application.applicationId is empty")
	}
	if r.Request.Type == "" {
		return errors.Wrap(ErrMalformedEnvelope, "request.type is empty")
	}
	if r.Request.Type == TypeIntentRequest {
		if r.Request.Intent == nil {
			return errors.Wrap(ErrMalformedEnvelope, "request.intent is missing")
		}
		if r.Request.Intent.Name == "" {
			return errors.Wrap(ErrMalformedEnvelope, "request.intent.name is empty")
		}
	}
	return nil
}

// Response описывает ответ навыка.
// SessionAttributes никогда не nil: платформа вернёт их в следующем запросе сессии.
type Response struct {
	Version           string             `json:"version"`
	SessionAttributes map[string]any     `json:"sessionAttributes"`
	Response          *SpeechletResponse `json:"response,omitempty"`
}

type SpeechletResponse struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	Card             Card         `json:"card"`
	Reprompt         *Reprompt    `json:"reprompt,omitempty"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}
