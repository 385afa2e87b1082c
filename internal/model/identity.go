package model

// IdentityMap maps GitHub logins to Slack user IDs. It is immutable after creation.
type IdentityMap struct {
	ids map[string]string
}

// NewIdentityMap copies src, so later changes of src are not visible.
// Entries with an empty login or Slack ID are skipped.
func NewIdentityMap(src map[string]string) IdentityMap {
	ids := make(map[string]string, len(src))
	for login, slackID := range src {
		if login == "" || slackID == "" {
			continue
		}
		ids[login] = slackID
	}
	return IdentityMap{ids: ids}
}

// SlackID returns the Slack user ID of a GitHub login.
func (m IdentityMap) SlackID(login string) (string, bool) {
	id, ok := m.ids[login]
	return id, ok
}

// SlackIDs resolves logins and returns the known Slack IDs without duplicates.
func (m IdentityMap) SlackIDs(logins []string) []string {
	out := make([]string, 0, len(logins))
	seen := make(map[string]struct{}, len(logins))
	for _, login := range logins {
		id, ok := m.ids[login]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (m IdentityMap) Len() int {
	return len(m.ids)
}
