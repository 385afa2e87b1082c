package relay

import (
	"context"
	"strings"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/prnotify/internal/model"
	"github.com/maxbolgarin/prnotify/internal/slack"
)

// notice is everything taken from an event to compose a message
type notice struct {
	mentions  []string // GitHub logins
	actor     model.User
	title     string
	link      string
	text      string
	timestamp string
}

func noticeOf(ev *model.Event, cat category) notice {
	pr := ev.PullRequest
	if cat == reviewRequest {
		return notice{
			mentions:  pr.ReviewerLogins(),
			actor:     pr.User,
			title:     pr.Title,
			link:      pr.HTMLURL,
			text:      pr.Body,
			timestamp: pr.CreatedAt,
		}
	}
	return notice{
		mentions:  []string{pr.User.Login},
		actor:     ev.Review.User,
		title:     pr.Title,
		link:      ev.Review.HTMLURL,
		text:      ev.Review.Body,
		timestamp: ev.Review.SubmittedAt,
	}
}

// build composes the Slack message. It returns nil when no mention resolves to
// an active workspace member, such a message would be addressed to nobody.
func (r *Relay) build(ctx context.Context, ev *model.Event, cat category) (*slack.Message, error) {
	n := noticeOf(ev, cat)

	ts, err := model.ParseTimestamp(n.timestamp)
	if err != nil {
		return nil, errm.Wrap(err, "event timestamp")
	}

	mentions, err := r.resolveMentions(ctx, n.mentions)
	if err != nil {
		return nil, err
	}
	if len(mentions) == 0 {
		return nil, nil
	}

	return &slack.Message{
		Channel:  r.cfg.Channel,
		Username: r.cfg.Username,
		Text:     strings.Join(mentions, " ") + cat.suffix,
		Attachments: []slack.Attachment{{
			Color:      cat.color,
			AuthorName: n.actor.Login,
			AuthorIcon: n.actor.AvatarURL,
			Title:      n.title,
			TitleLink:  n.link,
			Text:       n.text,
			Footer:     slack.Link(ev.Repository.HTMLURL, ev.Repository.FullName),
			Ts:         ts.Unix(),
		}},
	}, nil
}

// resolveMentions maps logins to mention tokens of active members, in directory order.
func (r *Relay) resolveMentions(ctx context.Context, logins []string) ([]string, error) {
	ids := r.users.SlackIDs(logins)
	if len(ids) == 0 {
		r.log.Debug("no mapped slack users", "logins", logins)
		return nil, nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	members, err := r.directory.Members(ctx)
	if err != nil {
		return nil, errm.Wrap(err, "failed to list slack members")
	}

	var out []string
	for _, m := range members {
		if _, ok := wanted[m.ID]; !ok || m.Deleted {
			continue
		}
		delete(wanted, m.ID)
		out = append(out, slack.Mention(m.ID))
	}

	return out, nil
}
