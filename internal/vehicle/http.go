package vehicle

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/vehicle-voice-skill/internal/logger"
)

const (
	tokenPath       = "/oauth/token"
	vehiclesPath    = "/api/1/vehicles"
	wakeUpPath      = "/api/1/vehicles/{id}/wake_up"
	chargeStatePath = "/api/1/vehicles/{id}/data_request/charge_state"
	climateOnPath   = "/api/1/vehicles/{id}/command/auto_conditioning_start"
	climateOffPath  = "/api/1/vehicles/{id}/command/auto_conditioning_stop"

	tracerName = "bitbucket.org/sotavant/vehicle-voice-skill/internal/vehicle"
)

// APIError — ответ API с кодом не из 2xx.
type APIError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vehicle api %s: %s", e.Op, e.Status)
}

// ServerSide сообщает, что ошибка на стороне API (5xx).
func (e *APIError) ServerSide() bool {
	return e.StatusCode >= 500
}

type HTTPConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// Timeout ограничивает один HTTP-запрос; дедлайн вызывающего действует поверх.
	Timeout time.Duration
	// TracerProvider по умолчанию глобальный.
	TracerProvider trace.TracerProvider
}

// HTTPClient ходит в owner API по HTTP. Сам клиент неизменяем: токен,
// полученный в VehicleID, возвращается внутри Vehicle.
type HTTPClient struct {
	http   *resty.Client
	cfg    HTTPConfig
	tracer trace.Tracer
}

func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &HTTPClient{http: c, cfg: cfg, tracer: tp.Tracer(tracerName)}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type vehiclesResponse struct {
	Response []struct {
		ID          int64  `json:"id"`
		IDS         string `json:"id_s"`
		DisplayName string `json:"display_name"`
		State       string `json:"state"`
	} `json:"response"`
}

type wakeUpResponse struct {
	Response struct {
		State string `json:"state"`
	} `json:"response"`
}

type chargeStateResponse struct {
	Response ChargeState `json:"response"`
}

type commandResponse struct {
	Response struct {
		Result bool   `json:"result"`
		Reason string `json:"reason"`
	} `json:"response"`
}

func (c *HTTPClient) VehicleID(ctx context.Context, creds Credentials) (v Vehicle, err error) {
	ctx, span := c.tracer.Start(ctx, "vehicle.VehicleID")
	defer func() { finishSpan(span, err) }()

	var tok tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"grant_type":    "password",
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
			"email":         creds.Email,
			"password":      creds.Password,
		}).
		SetResult(&tok).
		Post(tokenPath)
	if err = checkResponse("authenticate", resp, err); err != nil {
		return Vehicle{}, err
	}

	var vehicles vehiclesResponse
	resp, err = c.request(ctx, tok.AccessToken).
		SetResult(&vehicles).
		Get(vehiclesPath)
	if err = checkResponse("list vehicles", resp, err); err != nil {
		return Vehicle{}, err
	}
	logger.Log.Debug("vehicle list", zap.Int("count", len(vehicles.Response)))

	if len(vehicles.Response) == 0 {
		return Vehicle{}, ErrNoVehicle
	}

	first := vehicles.Response[0]
	id := first.IDS
	if id == "" && first.ID != 0 {
		id = fmt.Sprint(first.ID)
	}
	if id == "" {
		return Vehicle{}, ErrNoVehicle
	}

	span.SetAttributes(attribute.String("vehicle.id", id))
	return Vehicle{ID: id, token: tok.AccessToken}, nil
}

func (c *HTTPClient) WakeUp(ctx context.Context, v Vehicle) (err error) {
	ctx, span := c.tracer.Start(ctx, "vehicle.WakeUp", trace.WithAttributes(attribute.String("vehicle.id", v.ID)))
	defer func() { finishSpan(span, err) }()

	var out wakeUpResponse
	resp, err := c.request(ctx, v.token).
		SetPathParam("id", v.ID).
		SetResult(&out).
		Post(wakeUpPath)
	if err = checkResponse("wake up", resp, err); err != nil {
		return err
	}

	logger.Log.Debug("wake up response", zap.String("vehicleId", v.ID), zap.String("state", out.Response.State))
	return nil
}

func (c *HTTPClient) ChargeState(ctx context.Context, v Vehicle) (_ *ChargeState, err error) {
	ctx, span := c.tracer.Start(ctx, "vehicle.ChargeState", trace.WithAttributes(attribute.String("vehicle.id", v.ID)))
	defer func() { finishSpan(span, err) }()

	var out chargeStateResponse
	resp, err := c.request(ctx, v.token).
		SetPathParam("id", v.ID).
		SetResult(&out).
		Get(chargeStatePath)
	if err = checkResponse("charge state", resp, err); err != nil {
		return nil, err
	}

	logger.Log.Debug("charge state response",
		zap.String("vehicleId", v.ID),
		zap.Int("batteryLevel", out.Response.BatteryLevel),
	)
	return &out.Response, nil
}

func (c *HTTPClient) SetClimate(ctx context.Context, v Vehicle, on bool) (err error) {
	ctx, span := c.tracer.Start(ctx, "vehicle.SetClimate", trace.WithAttributes(
		attribute.String("vehicle.id", v.ID),
		attribute.Bool("climate.on", on),
	))
	defer func() { finishSpan(span, err) }()

	path := climateOffPath
	if on {
		path = climateOnPath
	}

	var out commandResponse
	resp, err := c.request(ctx, v.token).
		SetPathParam("id", v.ID).
		SetResult(&out).
		Post(path)
	if err = checkResponse("set climate", resp, err); err != nil {
		return err
	}

	logger.Log.Debug("climate response",
		zap.String("vehicleId", v.ID),
		zap.Bool("result", out.Response.Result),
		zap.String("reason", out.Response.Reason),
	)
	if !out.Response.Result {
		return errors.Errorf("vehicle rejected climate command: %s", out.Response.Reason)
	}
	return nil
}

func (c *HTTPClient) request(ctx context.Context, token string) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(token)
}

func checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return errors.Wrapf(err, "vehicle api %s", op)
	}
	if resp.IsError() {
		return &APIError{Op: op, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	return nil
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
