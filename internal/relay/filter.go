package relay

import (
	"fmt"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/prnotify/internal/model"
)

// A review_requested fired within this window after creation duplicates the "opened" notification.
const reviewRequestWindow = 2 * time.Second

const (
	msgTrainingHook     = "git-training repository can not notify to Slack channel."
	msgDraft            = "This pull request is draft: %s"
	msgNotOpen          = "This pull request is not yet opened: %s"
	msgCreatedAtOpen    = "This review_requested action was created at open."
	msgSameUser         = "Sender and creator are same user."
	msgUnsupportedState = "This review state is not supported: %s"
	msgUnsupported      = "This GitHub action is not supported: %s"
	msgNoMentions       = "サポートしていないユーザがメンションに含まれているか、通知先ユーザーが指定されていません。"
)

type category struct {
	name   string
	color  string
	suffix string
}

var (
	reviewRequest = category{
		name:   "review_request",
		color:  "#24292e",
		suffix: "さん、PR依頼がきました！\n手が空いてる時に、下記のPRのレビューをお願い致します〜\n",
	}
	approved = category{
		name:   model.ReviewApproved,
		color:  "#28A745",
		suffix: "さん、\n下記のPRがApproveされました！\n問題なければマージしてね\n",
	}
	commented = category{
		name:   model.ReviewCommented,
		color:  "#E1E4E8",
		suffix: "さん、\n下記のPRにコメントがあります！\n",
	}
	changesRequested = category{
		name:   model.ReviewChangesRequested,
		color:  "#D73A49",
		suffix: "さん、\n下記のPRにコメントがあります！\n",
	}
)

// decision is the outcome of filtering: either a category to notify or a reason to stay silent.
type decision struct {
	category category
	reject   string
}

func rejected(format string, args ...any) decision {
	if len(args) == 0 {
		return decision{reject: format}
	}
	return decision{reject: fmt.Sprintf(format, args...)}
}

// filter decides whether ev is worth a notification. An error means the
// event carries malformed timestamps.
func filter(ev *model.Event) (decision, error) {
	pr := ev.PullRequest
	if pr.Draft {
		return rejected(msgDraft, pr.Title), nil
	}

	switch ev.Action {
	case model.ActionOpened, model.ActionReadyForReview, model.ActionReviewRequested:
		if pr.State != model.StateOpen {
			return rejected(msgNotOpen, pr.Title), nil
		}
		if ev.Action == model.ActionReviewRequested {
			fired, err := firedAtCreation(pr)
			if err != nil {
				return decision{}, err
			}
			if fired {
				return rejected(msgCreatedAtOpen), nil
			}
		}
		return decision{category: reviewRequest}, nil

	case model.ActionSubmitted:
		if ev.Review == nil {
			return rejected(msgUnsupportedState, ""), nil
		}
		switch state := strings.ToLower(ev.Review.State); state {
		case model.ReviewApproved:
			return decision{category: approved}, nil
		case model.ReviewCommented:
			if ev.Review.User.Login == pr.User.Login {
				return rejected(msgSameUser), nil
			}
			return decision{category: commented}, nil
		case model.ReviewChangesRequested:
			return decision{category: changesRequested}, nil
		default:
			return rejected(msgUnsupportedState, ev.Review.State), nil
		}

	default:
		return rejected(msgUnsupported, ev.Action), nil
	}
}

func firedAtCreation(pr model.PullRequest) (bool, error) {
	created, err := model.ParseTimestamp(pr.CreatedAt)
	if err != nil {
		return false, errm.Wrap(err, "pull_request.created_at")
	}
	updated, err := model.ParseTimestamp(pr.UpdatedAt)
	if err != nil {
		return false, errm.Wrap(err, "pull_request.updated_at")
	}
	delta := updated.Sub(created)
	if delta < 0 {
		delta = -delta
	}
	return delta <= reviewRequestWindow, nil
}
