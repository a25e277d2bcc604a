package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL      = "https://owner-api.teslamotors.com"
	DefaultVehicleName = "Marvin"
	DefaultCallTimeout = 10 * time.Second

	envPrefix = "SKILL"
)

// Config загружается один раз при старте и дальше только читается.
type Config struct {
	Username         string        `mapstructure:"username"`
	Password         string        `mapstructure:"password"`
	AlexaAppID       string        `mapstructure:"alexa_app_id"`
	APIURL           string        `mapstructure:"api_url"`
	ClientID         string        `mapstructure:"client_id"`
	ClientSecret     string        `mapstructure:"client_secret"`
	VehicleName      string        `mapstructure:"vehicle_name"`
	CallTimeout      time.Duration `mapstructure:"call_timeout"`
	WakeBeforeStatus bool          `mapstructure:"wake_before_status"`
	// TraceExporter: "none", "stdout" или "otlp".
	TraceExporter string `mapstructure:"trace_exporter"`
	OTLPEndpoint  string `mapstructure:"otlp_endpoint"`
}

// Load читает файл конфигурации. Значения можно переопределить переменными
// окружения с префиксом SKILL_, например SKILL_PASSWORD.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("vehicle_name", DefaultVehicleName)
	v.SetDefault("call_timeout", DefaultCallTimeout)
	v.SetDefault("wake_before_status", true)
	v.SetDefault("trace_exporter", "none")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"username", "password", "alexa_app_id", "client_id", "client_secret", "trace_exporter", "otlp_endpoint"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, errors.Wrapf(err, "bind env for %s", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "read config file %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var missing []string
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if c.AlexaAppID == "" {
		missing = append(missing, "alexa_app_id")
	}
	if len(missing) > 0 {
		return errors.Errorf("config: missing required fields: %s", strings.Join(missing, ", "))
	}
	if c.CallTimeout <= 0 {
		return errors.Errorf("config: call_timeout must be positive, got %s", c.CallTimeout)
	}
	switch c.TraceExporter {
	case "", "none", "stdout":
	case "otlp":
		if c.OTLPEndpoint == "" {
			return errors.New("config: otlp_endpoint is required for trace_exporter otlp")
		}
	default:
		return errors.Errorf("config: unknown trace_exporter %q", c.TraceExporter)
	}
	return nil
}
