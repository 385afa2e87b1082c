package github

import "github.com/maxbolgarin/errm"

// Config represents GitHub webhook configuration
type Config struct {
	SecretToken    string `yaml:"secret_token" env:"GITHUB_SECRET_TOKEN"`
	TrainingHookID string `yaml:"training_hook_id" env:"GIT_TRAINING_HOOK_ID"` // hook that must never notify
}

func (c *Config) PrepareAndValidate() error {
	if c.SecretToken == "" {
		return errm.New("secret token is required")
	}
	return nil
}
