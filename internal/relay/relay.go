package relay

import (
	"context"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/prnotify/internal/model"
	"github.com/maxbolgarin/prnotify/internal/provider/github"
	"github.com/maxbolgarin/prnotify/internal/slack"
)

// ErrInvalidPayload is returned when a correctly signed body is not a webhook payload
var ErrInvalidPayload = errm.New("invalid webhook payload")

// Provider verifies and parses webhook deliveries
type Provider interface {
	ValidateWebhook(payload []byte, signature string) bool
	IsTrainingHook(hookID string) bool
	ParseWebhookEvent(payload []byte) (*model.Event, error)
}

// Directory lists Slack workspace members
type Directory interface {
	Members(ctx context.Context) ([]slack.Member, error)
}

// Deliverer posts a message to the Slack channel
type Deliverer interface {
	Send(ctx context.Context, msg slack.Message) ([]byte, error)
}

// Config holds message settings
type Config struct {
	Channel  string
	Username string
}

// Relay turns GitHub pull request webhooks into Slack notifications
type Relay struct {
	provider  Provider
	users     model.IdentityMap
	directory Directory
	deliverer Deliverer

	cfg Config
	log logze.Logger
}

// New creates a relay
func New(cfg Config, provider Provider, users model.IdentityMap, directory Directory, deliverer Deliverer) *Relay {
	return &Relay{
		provider:  provider,
		users:     users,
		directory: directory,
		deliverer: deliverer,
		cfg:       cfg,
		log:       logze.With("module", "relay"),
	}
}

// Handle processes one webhook call. Policy rejections are 200 responses;
// an error means a Slack call failed or the payload is malformed.
func (r *Relay) Handle(ctx context.Context, in InboundEvent) (Response, error) {
	if !r.provider.ValidateWebhook(in.Body, in.Header(github.SignatureHeader)) {
		r.log.Warn("webhook validation failed")
		return Forbidden(), nil
	}

	if r.provider.IsTrainingHook(in.Header(github.HookIDHeader)) {
		r.log.Info("event skipped", "reason", msgTrainingHook)
		return Message(msgTrainingHook), nil
	}

	ev, err := r.provider.ParseWebhookEvent(in.Body)
	if err != nil {
		return Response{}, errm.Wrap(ErrInvalidPayload, err.Error())
	}
	log := r.log.WithFields("action", ev.Action, "repo", ev.Repository.FullName)

	d, err := filter(ev)
	if err != nil {
		return Response{}, errm.Wrap(err, "failed to filter event")
	}
	if d.reject != "" {
		log.Info("event skipped", "reason", d.reject)
		return Message(d.reject), nil
	}

	msg, err := r.build(ctx, ev, d.category)
	if err != nil {
		return Response{}, errm.Wrap(err, "failed to build message")
	}
	if msg == nil {
		log.Info("event skipped", "reason", "no mentions")
		return Message(msgNoMentions), nil
	}

	body, err := r.deliverer.Send(ctx, *msg)
	if err != nil {
		return Response{}, errm.Wrap(err, "failed to deliver message")
	}
	log.Info("notification delivered", "category", d.category.name)

	return Delivered(body), nil
}
