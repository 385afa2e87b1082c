package model

import (
	"time"

	"github.com/maxbolgarin/errm"
)

// Actions of pull_request and pull_request_review webhooks that may notify.
const (
	ActionOpened          = "opened"
	ActionReadyForReview  = "ready_for_review"
	ActionReviewRequested = "review_requested"
	ActionSubmitted       = "submitted"
)

// Review states of a submitted pull request review.
const (
	ReviewApproved         = "approved"
	ReviewCommented        = "commented"
	ReviewChangesRequested = "changes_requested"
)

// StateOpen is the state of a pull request that is neither closed nor merged.
const StateOpen = "open"

// TimestampLayout is the only accepted format of webhook timestamps.
const TimestampLayout = "2006-01-02T15:04:05Z"

// User is a GitHub account referenced by an event
type User struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repository is the repository the event was fired for
type Repository struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// PullRequest is the pull_request object of a webhook payload.
// Timestamps are kept raw so that they are parsed with ParseTimestamp.
type PullRequest struct {
	User               User   `json:"user"`
	State              string `json:"state"`
	Draft              bool   `json:"draft"`
	Title              string `json:"title"`
	HTMLURL            string `json:"html_url"`
	Body               string `json:"body"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	RequestedReviewers []User `json:"requested_reviewers"`
}

// Review is the review object of a pull_request_review payload
type Review struct {
	User        User   `json:"user"`
	State       string `json:"state"`
	HTMLURL     string `json:"html_url"`
	Body        string `json:"body"`
	SubmittedAt string `json:"submitted_at"`
}

// Event is a parsed pull_request or pull_request_review webhook
type Event struct {
	Action      string      `json:"action"`
	Repository  Repository  `json:"repository"`
	PullRequest PullRequest `json:"pull_request"`
	Review      *Review     `json:"review"`
	Sender      User        `json:"sender"`
}

// ReviewerLogins returns logins of requested reviewers, skipping teams and empty entries.
func (pr PullRequest) ReviewerLogins() []string {
	out := make([]string, 0, len(pr.RequestedReviewers))
	for _, u := range pr.RequestedReviewers {
		if u.Login != "" {
			out = append(out, u.Login)
		}
	}
	return out
}

// ParseTimestamp parses s in TimestampLayout. Fractional seconds, offsets
// and any other deviation from the layout are rejected.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, errm.Wrap(err, "parse timestamp")
	}
	if t.Format(TimestampLayout) != s {
		return time.Time{}, errm.New("timestamp %q is not in %s format", s, TimestampLayout)
	}
	return t, nil
}
