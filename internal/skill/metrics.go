package skill

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_skill_requests_total",
		Help: "Processed skill requests by request type and outcome",
	}, []string{"type", "status"})

	intentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_skill_intents_total",
		Help: "Dispatched intents by name",
	}, []string{"intent"})

	vehicleCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voice_skill_vehicle_call_duration_seconds",
		Help:    "Latency of vehicle API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "status"})
)

const (
	statusOK    = "ok"
	statusError = "error"

	unknownIntent      = "unknown"
	unknownRequestType = "unknown"
)

// requestTypeLabel ограничивает метку type известными типами: тип приходит
// от вызывающего и иначе плодил бы ряды без предела.
func requestTypeLabel(t string) string {
	switch t {
	case models.TypeLaunchRequest, models.TypeIntentRequest, models.TypeSessionEndedRequest:
		return t
	default:
		return unknownRequestType
	}
}
