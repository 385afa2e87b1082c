package slack

import (
	"context"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

// Webhook posts messages to a Slack incoming webhook
type Webhook struct {
	cli *cliex.HTTP
	url string
	log logze.Logger
}

// NewWebhook creates a client for the configured incoming webhook URL
func NewWebhook(cfg Config) (*Webhook, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	log := logze.With("module", "slack", "component", "webhook")

	cli, err := newHTTP(cfg.Timeout, log)
	if err != nil {
		return nil, err
	}

	return &Webhook{
		cli: cli,
		url: cfg.WebhookURL,
		log: log,
	}, nil
}

// Send posts msg as the form field payload=<json> and returns the raw response body.
// There is no retry, any failure is returned to the caller.
func (w *Webhook) Send(ctx context.Context, msg Message) ([]byte, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, errm.Wrap(err, "failed to encode message")
	}

	resp, err := w.cli.C().R().
		SetContext(ctx).
		SetFormData(map[string]string{"payload": string(payload)}).
		Post(w.url)
	if err != nil {
		return nil, errm.Wrap(err, "failed to post message")
	}
	if resp.IsError() {
		return nil, errm.New("webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}

	w.log.Debug("message delivered", "channel", msg.Channel, "status", resp.StatusCode())

	return resp.Body(), nil
}
