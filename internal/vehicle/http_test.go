package vehicle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// пароль → выданный токен
var accounts = map[string]string{
	"hunter2": "qts-123",
	"swordfi": "qts-456",
}

type fakeAPI struct {
	vehicles     string
	chargeState  string
	climate      string
	climateCalls []string
	wakeUpTokens []string
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		token, ok := accounts[body["password"]]
		if body["email"] != "elon@example.com" || !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "password", body["grant_type"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "` + token + `", "token_type": "bearer", "expires_in": 3888000}`))
	})

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			valid := false
			for _, token := range accounts {
				if r.Header.Get("Authorization") == "Bearer "+token {
					valid = true
				}
			}
			if !valid {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			h(w, r)
		}
	}

	mux.HandleFunc(vehiclesPath, authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(f.vehicles))
	}))
	mux.HandleFunc("/api/1/vehicles/42/wake_up", authed(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		f.wakeUpTokens = append(f.wakeUpTokens, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"response": {"state": "online"}}`))
	}))
	mux.HandleFunc("/api/1/vehicles/42/data_request/charge_state", authed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(f.chargeState))
	}))
	mux.HandleFunc("/api/1/vehicles/42/command/", authed(func(w http.ResponseWriter, r *http.Request) {
		f.climateCalls = append(f.climateCalls, r.URL.Path)
		_, _ = w.Write([]byte(f.climate))
	}))
	mux.HandleFunc("/api/1/vehicles/500/wake_up", authed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	return mux
}

func newTestClient(t *testing.T, api *fakeAPI, tp *sdktrace.TracerProvider) *HTTPClient {
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	cfg := HTTPConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}
	if tp != nil {
		cfg.TracerProvider = tp
	}
	return NewHTTPClient(cfg)
}

var creds = Credentials{Email: "elon@example.com", Password: "hunter2"}

func TestHTTPClient(t *testing.T) {
	api := &fakeAPI{
		vehicles:    `{"response": [{"id": 42, "id_s": "42", "display_name": "Marvin", "state": "asleep"}], "count": 1}`,
		chargeState: `{"response": {"battery_level": 72, "est_battery_range": 210.4, "charging_state": "Disconnected"}}`,
		climate:     `{"response": {"result": true, "reason": ""}}`,
	}
	c := newTestClient(t, api, nil)
	ctx := context.Background()

	v, err := c.VehicleID(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "42", v.ID)

	require.NoError(t, c.WakeUp(ctx, v))
	assert.Len(t, api.wakeUpTokens, 1)

	state, err := c.ChargeState(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, 72, state.BatteryLevel)
	require.NotNil(t, state.EstBatteryRange)
	assert.InDelta(t, 210.4, *state.EstBatteryRange, 0.001)

	require.NoError(t, c.SetClimate(ctx, v, true))
	require.NoError(t, c.SetClimate(ctx, v, false))
	assert.Equal(t, []string{
		"/api/1/vehicles/42/command/auto_conditioning_start",
		"/api/1/vehicles/42/command/auto_conditioning_stop",
	}, api.climateCalls)
}

func TestHTTPClientKeepsTokenPerVehicle(t *testing.T) {
	api := &fakeAPI{vehicles: `{"response": [{"id_s": "42"}]}`}
	c := newTestClient(t, api, nil)
	ctx := context.Background()

	first, err := c.VehicleID(ctx, creds)
	require.NoError(t, err)
	second, err := c.VehicleID(ctx, Credentials{Email: "elon@example.com", Password: "swordfi"})
	require.NoError(t, err)

	// второй вход не должен подменить токен первого
	require.NoError(t, c.WakeUp(ctx, first))
	require.NoError(t, c.WakeUp(ctx, second))
	assert.Equal(t, []string{"Bearer qts-123", "Bearer qts-456"}, api.wakeUpTokens)
}

func TestHTTPClientErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("bad_credentials", func(t *testing.T) {
		c := newTestClient(t, &fakeAPI{}, nil)

		_, err := c.VehicleID(ctx, Credentials{Email: "elon@example.com", Password: "wrong"})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.False(t, apiErr.ServerSide())
	})

	t.Run("no_vehicles", func(t *testing.T) {
		c := newTestClient(t, &fakeAPI{vehicles: `{"response": [], "count": 0}`}, nil)

		_, err := c.VehicleID(ctx, creds)
		assert.True(t, errors.Is(err, ErrNoVehicle))
	})

	t.Run("numeric_id_only", func(t *testing.T) {
		c := newTestClient(t, &fakeAPI{vehicles: `{"response": [{"id": 42}]}`}, nil)

		v, err := c.VehicleID(ctx, creds)
		require.NoError(t, err)
		assert.Equal(t, "42", v.ID)
	})

	t.Run("server_error", func(t *testing.T) {
		c := newTestClient(t, &fakeAPI{vehicles: `{"response": [{"id_s": "500"}]}`}, nil)

		v, err := c.VehicleID(ctx, creds)
		require.NoError(t, err)

		err = c.WakeUp(ctx, v)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.ServerSide())
	})

	t.Run("range_missing", func(t *testing.T) {
		c := newTestClient(t, &fakeAPI{
			vehicles:    `{"response": [{"id_s": "42"}]}`,
			chargeState: `{"response": {"battery_level": 10}}`,
		}, nil)

		v, err := c.VehicleID(ctx, creds)
		require.NoError(t, err)

		state, err := c.ChargeState(ctx, v)
		require.NoError(t, err)
		assert.Equal(t, 10, state.BatteryLevel)
		assert.Nil(t, state.EstBatteryRange)
	})

	t.Run("command_rejected", func(t *testing.T) {
		c := newTestClient(t, &fakeAPI{
			vehicles: `{"response": [{"id_s": "42"}]}`,
			climate:  `{"response": {"result": false, "reason": "vehicle_unavailable"}}`,
		}, nil)

		v, err := c.VehicleID(ctx, creds)
		require.NoError(t, err)

		err = c.SetClimate(ctx, v, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vehicle_unavailable")
	})
}

func TestHTTPClientSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	c := newTestClient(t, &fakeAPI{vehicles: `{"response": [{"id_s": "500"}]}`}, tp)
	ctx := context.Background()

	v, err := c.VehicleID(ctx, creds)
	require.NoError(t, err)
	require.Error(t, c.WakeUp(ctx, v))

	spans := sr.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "vehicle.VehicleID", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, "vehicle.WakeUp", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Contains(t, spans[1].Status().Description, "502")
	require.NotEmpty(t, spans[1].Events(), "ошибка не записана в спан")
	assert.Equal(t, "exception", spans[1].Events()[0].Name)
}
