package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("GITHUB_SECRET_TOKEN", "secret")
	t.Setenv("SLACK_BOT_API_TOKEN", "xoxb-token")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/X")
	t.Setenv("MAP_USER_IDS", "alice:U1,bob:U2")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GIT_TRAINING_HOOK_ID", "12345")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.GitHub.SecretToken)
	assert.Equal(t, "12345", cfg.GitHub.TrainingHookID)
	assert.Equal(t, "xoxb-token", cfg.Slack.BotToken)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", cfg.Slack.WebhookURL)
	assert.Equal(t, map[string]string{"alice": "U1", "bob": "U2"}, cfg.Users)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9000"
  endpoint: "/github"
github:
  secret_token: "file-secret"
  training_hook_id: "777"
slack:
  bot_api_token: "xoxb-file"
  webhook_url: "https://hooks.slack.com/services/file"
  channel: "#reviews"
users:
  alice: U1
debug: true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "/github", cfg.Server.Endpoint)
	assert.Equal(t, "file-secret", cfg.GitHub.SecretToken)
	assert.Equal(t, "777", cfg.GitHub.TrainingHookID)
	assert.Equal(t, "#reviews", cfg.Slack.Channel)
	assert.Equal(t, map[string]string{"alice": "U1"}, cfg.Users)
	assert.True(t, cfg.Debug)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.GitHub.SecretToken = "s"
		cfg.Slack.BotToken = "t"
		cfg.Slack.WebhookURL = "u"
		cfg.Users = map[string]string{"alice": "U1"}
		return cfg
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.GitHub.SecretToken = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingSecretToken)

	cfg = valid()
	cfg.Slack.BotToken = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingBotToken)

	cfg = valid()
	cfg.Slack.WebhookURL = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingWebhookURL)

	cfg = valid()
	cfg.Users = nil
	assert.ErrorIs(t, cfg.Validate(), ErrEmptyUserMap)
}
