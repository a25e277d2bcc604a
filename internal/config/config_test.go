package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"username": "elon@example.com",
		"password": "hunter2",
		"alexa_app_id": "amzn1.ask.skill.1"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "elon@example.com", cfg.Username)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "amzn1.ask.skill.1", cfg.AlexaAppID)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultVehicleName, cfg.VehicleName)
	assert.Equal(t, DefaultCallTimeout, cfg.CallTimeout)
	assert.True(t, cfg.WakeBeforeStatus)
	assert.Equal(t, "none", cfg.TraceExporter)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
username: elon@example.com
password: from-file
alexa_app_id: amzn1.ask.skill.1
vehicle_name: Trillian
call_timeout: 3s
wake_before_status: false
`)
	t.Setenv("SKILL_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, "Trillian", cfg.VehicleName)
	assert.Equal(t, 3*time.Second, cfg.CallTimeout)
	assert.False(t, cfg.WakeBeforeStatus)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Load(writeConfig(t, "config.json", `{"username": `))
		assert.Error(t, err)
	})

	t.Run("missing_fields", func(t *testing.T) {
		_, err := Load(writeConfig(t, "config.json", `{"username": "elon@example.com"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
		assert.Contains(t, err.Error(), "alexa_app_id")
	})

	t.Run("otlp_without_endpoint", func(t *testing.T) {
		_, err := Load(writeConfig(t, "config.json", `{
			"username": "elon@example.com",
			"password": "hunter2",
			"alexa_app_id": "amzn1.ask.skill.1",
			"trace_exporter": "otlp"
		}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "otlp_endpoint")
	})

	t.Run("unknown_exporter", func(t *testing.T) {
		_, err := Load(writeConfig(t, "config.json", `{
			"username": "elon@example.com",
			"password": "hunter2",
			"alexa_app_id": "amzn1.ask.skill.1",
			"trace_exporter": "jaeger"
		}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jaeger")
	})
}
