package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/prnotify/internal/provider/github"
	"github.com/maxbolgarin/prnotify/internal/server"
	"github.com/maxbolgarin/prnotify/internal/slack"
)

// Config represents the main application configuration
type Config struct {
	Server server.Config `yaml:"server"`
	GitHub github.Config `yaml:"github"`
	Slack  slack.Config  `yaml:"slack"`

	// Users maps GitHub logins to Slack user IDs, "login:ID,login:ID" in the environment
	Users map[string]string `yaml:"users" env:"MAP_USER_IDS"`

	Debug bool `yaml:"debug" env:"DEBUG"`
}

// Load reads the config file at path if it is set, then applies environment variables
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, errm.Wrap(err, "failed to read config file")
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errm.Wrap(err, "failed to read environment")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the required secrets and endpoints
func (c *Config) Validate() error {
	if c.GitHub.SecretToken == "" {
		return ErrMissingSecretToken
	}
	if c.Slack.BotToken == "" {
		return ErrMissingBotToken
	}
	if c.Slack.WebhookURL == "" {
		return ErrMissingWebhookURL
	}
	if len(c.Users) == 0 {
		return ErrEmptyUserMap
	}
	return nil
}
