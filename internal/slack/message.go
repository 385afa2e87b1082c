package slack

// Message is the payload accepted by an incoming webhook
type Message struct {
	Channel     string       `json:"channel"`
	Username    string       `json:"username"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment is a legacy secondary message attachment
type Attachment struct {
	Color      string `json:"color"`
	AuthorName string `json:"author_name"`
	AuthorIcon string `json:"author_icon"`
	Title      string `json:"title"`
	TitleLink  string `json:"title_link"`
	Text       string `json:"text"`
	Footer     string `json:"footer"`
	Ts         int64  `json:"ts"`
}

// Mention returns the token that renders as a reference to a Slack user.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// Link returns mrkdwn link markup.
func Link(url, text string) string {
	return "<" + url + "|" + text + ">"
}
