package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTPSMS_API_KEY", "")
	t.Setenv("WHATSAPP_BRIDGE_URL", "")
	t.Setenv("DEFAULT_COUNTRY_CODE", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:3001", cfg.Bridge.URL)
	assert.Equal(t, 10*time.Second, cfg.Bridge.Timeout)
	assert.Equal(t, 10*time.Second, cfg.SMS.Timeout)
	assert.Equal(t, "https://api.httpsms.com/v1/messages/send", cfg.SMS.URL)
	assert.Empty(t, cfg.SMS.APIKey)
	assert.Equal(t, "+254", cfg.Messaging.DefaultCountryCode)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("WHATSAPP_BRIDGE_URL", "http://bridge:3001/")
	t.Setenv("HTTPSMS_API_KEY", "secret")
	t.Setenv("SENDER_PHONE", "+254700111222")
	t.Setenv("HTTPSMS_TIMEOUT", "3s")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("DATABASE_MIGRATE", "false")
	t.Setenv("DEFAULT_COUNTRY_CODE", "+256")

	cfg := Load()

	assert.Equal(t, "http://bridge:3001", cfg.Bridge.URL)
	assert.Equal(t, "secret", cfg.SMS.APIKey)
	assert.Equal(t, "+254700111222", cfg.SMS.SenderPhone)
	assert.Equal(t, 3*time.Second, cfg.SMS.Timeout)
	assert.Equal(t, 2, cfg.Worker.Count)
	assert.False(t, cfg.Database.MigrateOnStart)
	assert.Equal(t, "+256", cfg.Messaging.DefaultCountryCode)
}

func TestGetEnvHelpers_IgnoreMalformedValues(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_DUR", "ten seconds")
	t.Setenv("X_BOOL", "maybe")

	assert.Equal(t, 7, getIntEnv("X_INT", 7))
	assert.Equal(t, time.Minute, getDurationEnv("X_DUR", time.Minute))
	assert.True(t, getBoolEnv("X_BOOL", true))
}
