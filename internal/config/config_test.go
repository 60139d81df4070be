package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_SIGNING_SECRET", "secret")
	t.Setenv("HUBSPOT_TOKEN", "pat-test")
	t.Setenv("DIGEST_CHANNEL_ID", "C123")
	t.Setenv("HUBSPOT_BASE_URL", "")
	t.Setenv("DIGEST_TIMEZONE", "")
	t.Setenv("PORT", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "xoxb-test", cfg.Slack.BotToken)
	assert.Equal(t, "secret", cfg.Slack.SigningSecret)
	assert.Equal(t, "pat-test", cfg.HubSpot.Token)
	assert.Equal(t, "C123", cfg.Digest.ChannelID)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://api.hubapi.com", cfg.HubSpot.BaseURL)
	assert.Equal(t, "Europe/Warsaw", cfg.Digest.Timezone)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("HUBSPOT_BASE_URL", "http://localhost:9999")
	t.Setenv("DIGEST_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:9999", cfg.HubSpot.BaseURL)
	assert.Equal(t, "UTC", cfg.Digest.Timezone)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HUBSPOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HUBSPOT_TOKEN")
}

func TestLoadAllMissing(t *testing.T) {
	for _, key := range []string{"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET", "HUBSPOT_TOKEN", "DIGEST_CHANNEL_ID"} {
		t.Setenv(key, "")
	}

	_, err := Load()
	require.Error(t, err)
	for _, key := range []string{"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET", "HUBSPOT_TOKEN", "DIGEST_CHANNEL_ID"} {
		assert.Contains(t, err.Error(), key)
	}
}
