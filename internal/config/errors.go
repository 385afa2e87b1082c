package config

import "errors"

var (
	ErrMissingSecretToken = errors.New("github secret token is required")
	ErrMissingBotToken    = errors.New("slack bot api token is required")
	ErrMissingWebhookURL  = errors.New("slack webhook url is required")
	ErrEmptyUserMap       = errors.New("github to slack user map is empty")
)
