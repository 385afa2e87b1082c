package github

import (
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/prnotify/internal/model"
)

// Headers set by GitHub on webhook deliveries
const (
	SignatureHeader = "X-Hub-Signature-256"
	HookIDHeader    = "X-GitHub-Hook-ID"
	EventHeader     = "X-GitHub-Event"
	DeliveryHeader  = "X-GitHub-Delivery"
)

const signaturePrefix = "sha256="

// Provider validates and parses GitHub webhook deliveries
type Provider struct {
	config Config
	logger logze.Logger
}

// New creates a new GitHub webhook provider
func New(cfg Config) (*Provider, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	return &Provider{
		config: cfg,
		logger: logze.With("provider", "github"),
	}, nil
}

// ValidateWebhook reports whether signature is the HMAC-SHA256 of payload keyed
// with the secret token, in "sha256=<hex>" form. The comparison is constant time.
func (p *Provider) ValidateWebhook(payload []byte, signature string) bool {
	if !strings.HasPrefix(signature, signaturePrefix) {
		p.logger.Debug("signature without sha256 prefix")
		return false
	}
	if err := github.ValidateSignature(signature, payload, []byte(p.config.SecretToken)); err != nil {
		p.logger.Debug("signature mismatch", "error", err.Error())
		return false
	}
	return true
}

// IsTrainingHook reports whether the delivery was fired by the training repository hook.
func (p *Provider) IsTrainingHook(hookID string) bool {
	return p.config.TrainingHookID != "" && hookID == p.config.TrainingHookID
}

// ParseWebhookEvent parses a pull_request or pull_request_review payload
func (p *Provider) ParseWebhookEvent(payload []byte) (*model.Event, error) {
	var event model.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errm.Wrap(err, "failed to parse GitHub webhook payload")
	}
	return &event, nil
}

// DeliveryInfo returns event type and delivery ID of a webhook request, used for logging.
func DeliveryInfo(r *http.Request) (eventType, deliveryID string) {
	return github.WebHookType(r), github.DeliveryID(r)
}

// Sign returns the X-Hub-Signature-256 value GitHub would send for payload.
func Sign(secret string, payload []byte) string {
	return signaturePrefix + hexHMAC(secret, payload)
}
