package skill

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/config"
	"bitbucket.org/sotavant/vehicle-voice-skill/internal/models"
)

func TestRequestTypeLabel(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: models.TypeLaunchRequest, want: models.TypeLaunchRequest},
		{in: models.TypeIntentRequest, want: models.TypeIntentRequest},
		{in: models.TypeSessionEndedRequest, want: models.TypeSessionEndedRequest},
		{in: "CanFulfillIntentRequest", want: unknownRequestType},
		{in: "launchrequest", want: unknownRequestType},
		{in: "", want: unknownRequestType},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, requestTypeLabel(tc.in), tc.in)
	}
}

func TestRequestsTotalStaysBounded(t *testing.T) {
	s := New(config.Config{AlexaAppID: "amzn1.ask.skill.marvin"}, nil)

	before := testutil.CollectAndCount(requestsTotal)
	unknownBefore := testutil.ToFloat64(requestsTotal.WithLabelValues(unknownRequestType, statusError))

	for i := 0; i < 1000; i++ {
		appID := "amzn1.ask.skill.marvin"
		if i%2 == 0 {
			appID = "amzn1.ask.skill.someone-else"
		}
		req := models.Request{
			Session: models.Session{Application: models.Application{ApplicationID: appID}},
			Request: models.RequestPayload{Type: fmt.Sprintf("JunkRequest%d", i)},
		}
		_, err := s.Handle(context.Background(), req)
		assert.Error(t, err)
	}

	// все мусорные типы легли в один ряд
	assert.LessOrEqual(t, testutil.CollectAndCount(requestsTotal)-before, 1)
	assert.Equal(t, unknownBefore+1000, testutil.ToFloat64(requestsTotal.WithLabelValues(unknownRequestType, statusError)))
}
