package slack

import (
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultAPIURL   = "https://slack.com/api"
	defaultChannel  = "#github-notification"
	defaultUsername = "github bot"
	defaultTimeout  = 30 * time.Second
)

// Config represents Slack API and incoming webhook configuration
type Config struct {
	BotToken   string        `yaml:"bot_api_token" env:"SLACK_BOT_API_TOKEN"`
	APIURL     string        `yaml:"api_url" env:"SLACK_API_URL"`
	WebhookURL string        `yaml:"webhook_url" env:"SLACK_WEBHOOK_URL"`
	Channel    string        `yaml:"channel" env:"SLACK_CHANNEL"`
	Username   string        `yaml:"username" env:"SLACK_USERNAME"`
	Timeout    time.Duration `yaml:"timeout" env:"SLACK_TIMEOUT"`
}

func (c *Config) PrepareAndValidate() error {
	if c.BotToken == "" {
		return errm.New("bot api token is required")
	}
	if c.WebhookURL == "" {
		return errm.New("webhook url is required")
	}

	c.APIURL = lang.Check(c.APIURL, defaultAPIURL)
	c.Channel = lang.Check(c.Channel, defaultChannel)
	c.Username = lang.Check(c.Username, defaultUsername)
	c.Timeout = lang.Check(c.Timeout, defaultTimeout)

	return nil
}
