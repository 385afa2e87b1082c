package slack

import (
	"context"
	"strings"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/slack-go/slack"
	"golang.org/x/oauth2"
)

const usersListMethod = "users.list"

// Member is a workspace member returned by users.list
type Member = slack.User

type usersListResponse struct {
	Ok      bool     `json:"ok"`
	Error   string   `json:"error"`
	Members []Member `json:"members"`
}

// Directory reads workspace members from the Slack Web API
type Directory struct {
	cli *cliex.HTTP
	url string
	log logze.Logger
}

// NewDirectory creates a users.list client authorized with the bot token
func NewDirectory(cfg Config) (*Directory, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	log := logze.With("module", "slack", "component", "directory")

	cli, err := newHTTP(cfg.Timeout, log)
	if err != nil {
		return nil, err
	}

	hc := cli.C().GetClient()
	hc.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.BotToken}),
		Base:   hc.Transport,
	}

	return &Directory{
		cli: cli,
		url: strings.TrimSuffix(cfg.APIURL, "/") + "/" + usersListMethod,
		log: log,
	}, nil
}

// Members returns all workspace members, including deactivated ones.
func (d *Directory) Members(ctx context.Context) ([]Member, error) {
	resp, err := d.cli.C().R().SetContext(ctx).Get(d.url)
	if err != nil {
		return nil, errm.Wrap(err, "failed to request "+usersListMethod)
	}
	if resp.IsError() {
		return nil, errm.New("%s returned status %d", usersListMethod, resp.StatusCode())
	}

	var out usersListResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, errm.Wrap(err, "failed to decode "+usersListMethod+" response")
	}
	if !out.Ok {
		return nil, errm.New("%s failed: %s", usersListMethod, out.Error)
	}

	d.log.Debug("loaded workspace members", "count", len(out.Members))

	return out.Members, nil
}
