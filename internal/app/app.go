package app

import (
	"context"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/prnotify/internal/config"
	"github.com/maxbolgarin/prnotify/internal/model"
	"github.com/maxbolgarin/prnotify/internal/provider/github"
	"github.com/maxbolgarin/prnotify/internal/relay"
	"github.com/maxbolgarin/prnotify/internal/server"
	"github.com/maxbolgarin/prnotify/internal/slack"
)

// Notifier wires the webhook server, the relay and the Slack clients
type Notifier struct {
	relay  *relay.Relay
	server *server.Server

	cfg config.Config
	log logze.Logger
}

// New creates a notifier from the loaded configuration
func New(ctx contem.Context, cfg config.Config) (*Notifier, error) {
	n := &Notifier{
		cfg: cfg,
		log: logze.With("component", "app"),
	}

	if err := n.init(ctx, cfg); err != nil {
		return nil, erro.Wrap(err, "failed to initialize notifier")
	}

	return n, nil
}

// Start starts serving webhook calls
func (n *Notifier) Start(ctx context.Context) error {
	if err := n.server.Start(ctx); err != nil {
		return erro.Wrap(err, "failed to start webhook server")
	}
	return nil
}

func (n *Notifier) init(ctx contem.Context, cfg config.Config) error {
	provider, err := github.New(cfg.GitHub)
	if err != nil {
		return erro.Wrap(err, "failed to create GitHub provider")
	}

	if err := cfg.Slack.PrepareAndValidate(); err != nil {
		return erro.Wrap(err, "validate slack config")
	}

	directory, err := slack.NewDirectory(cfg.Slack)
	if err != nil {
		return erro.Wrap(err, "failed to create Slack directory client")
	}

	webhook, err := slack.NewWebhook(cfg.Slack)
	if err != nil {
		return erro.Wrap(err, "failed to create Slack webhook client")
	}

	users := model.NewIdentityMap(cfg.Users)
	n.log.Info("loaded user map", "users", users.Len())

	n.relay = relay.New(relay.Config{
		Channel:  cfg.Slack.Channel,
		Username: cfg.Slack.Username,
	}, provider, users, directory, webhook)

	n.server, err = server.New(cfg.Server, n.relay)
	if err != nil {
		return erro.Wrap(err, "failed to create webhook server")
	}
	ctx.Add(n.server.Stop)

	return nil
}
