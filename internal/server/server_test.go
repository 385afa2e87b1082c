package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/prnotify/internal/model"
	"github.com/maxbolgarin/prnotify/internal/provider/github"
	"github.com/maxbolgarin/prnotify/internal/relay"
	"github.com/maxbolgarin/prnotify/internal/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc func(ctx context.Context, in relay.InboundEvent) (relay.Response, error)

func (f handlerFunc) Handle(ctx context.Context, in relay.InboundEvent) (relay.Response, error) {
	return f(ctx, in)
}

func testServer(handler Handler) *Server {
	return &Server{handler: handler, log: logze.With("module", "server")}
}

func post(s *Server, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.handleWebhook(rec, req)
	return rec
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.PrepareAndValidate())
	assert.Equal(t, defaultAddress, cfg.Address)
	assert.Equal(t, defaultEndpoint, cfg.Endpoint)
	assert.Equal(t, defaultTimeout, cfg.Timeout)

	cfg = Config{EnableHTTPS: true}
	assert.Error(t, cfg.PrepareAndValidate())
}

func TestHandleWebhookPassesRequest(t *testing.T) {
	var got relay.InboundEvent
	s := testServer(handlerFunc(func(ctx context.Context, in relay.InboundEvent) (relay.Response, error) {
		got = in
		return relay.Message("skipped"), nil
	}))

	rec := post(s, `{"action":"closed"}`, map[string]string{
		github.SignatureHeader: "sha256=abc",
		github.HookIDHeader:    "99",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"skipped"}`, rec.Body.String())

	assert.Equal(t, `{"action":"closed"}`, string(got.Body))
	assert.Equal(t, "sha256=abc", got.Header(github.SignatureHeader))
	assert.Equal(t, "99", got.Header(github.HookIDHeader))
}

func TestHandleWebhookForbidden(t *testing.T) {
	s := testServer(handlerFunc(func(ctx context.Context, in relay.InboundEvent) (relay.Response, error) {
		return relay.Forbidden(), nil
	}))

	rec := post(s, `{}`, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleWebhookErrors(t *testing.T) {
	s := testServer(handlerFunc(func(ctx context.Context, in relay.InboundEvent) (relay.Response, error) {
		return relay.Response{}, errm.New("slack is down")
	}))
	assert.Equal(t, http.StatusInternalServerError, post(s, `{}`, nil).Code)

	s = testServer(handlerFunc(func(ctx context.Context, in relay.InboundEvent) (relay.Response, error) {
		return relay.Response{}, errm.Wrap(relay.ErrInvalidPayload, "unexpected end of JSON input")
	}))
	assert.Equal(t, http.StatusBadRequest, post(s, `{`, nil).Code)
}

func TestHandleWebhookMethodNotAllowed(t *testing.T) {
	var called bool
	s := testServer(handlerFunc(func(ctx context.Context, in relay.InboundEvent) (relay.Response, error) {
		called = true
		return relay.Message(""), nil
	}))

	rec := httptest.NewRecorder()
	s.handleWebhook(rec, httptest.NewRequest(http.MethodGet, "/webhook", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, called)
}

func TestWebhookToSlack(t *testing.T) {
	const secret = "it-secret"

	var payloads []string
	slackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users.list":
			io.WriteString(w, `{"ok":true,"members":[{"id":"U1","deleted":false},{"id":"U9","deleted":false}]}`)
		case "/services/hook":
			raw, _ := io.ReadAll(r.Body)
			form, _ := url.ParseQuery(string(raw))
			payloads = append(payloads, form.Get("payload"))
			io.WriteString(w, "ok")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer slackSrv.Close()

	slackCfg := slack.Config{
		BotToken:   "xoxb-it",
		APIURL:     slackSrv.URL + "/api",
		WebhookURL: slackSrv.URL + "/services/hook",
	}
	directory, err := slack.NewDirectory(slackCfg)
	require.NoError(t, err)
	webhook, err := slack.NewWebhook(slackCfg)
	require.NoError(t, err)
	provider, err := github.New(github.Config{SecretToken: secret, TrainingHookID: "1"})
	require.NoError(t, err)

	rl := relay.New(relay.Config{Channel: "#github-notification", Username: "github bot"},
		provider, model.NewIdentityMap(map[string]string{"alice": "U1"}), directory, webhook)
	s := testServer(rl)

	body := `{"action":"opened","repository":{"full_name":"octo/repo","html_url":"https://github.com/octo/repo"},` +
		`"pull_request":{"user":{"login":"author"},"state":"open","draft":false,"title":"T","html_url":"https://github.com/octo/repo/pull/1",` +
		`"body":"B","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z","requested_reviewers":[{"login":"alice"}]}}`

	rec := post(s, body, map[string]string{github.SignatureHeader: github.Sign(secret, []byte(body))})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	require.Len(t, payloads, 1)
	var msg slack.Message
	require.NoError(t, json.Unmarshal([]byte(payloads[0]), &msg))
	assert.True(t, strings.HasPrefix(msg.Text, "<@U1>さん、PR依頼がきました！"), msg.Text)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "#24292e", msg.Attachments[0].Color)

	rec = post(s, body, map[string]string{
		github.SignatureHeader: github.Sign(secret, []byte(body)),
		github.HookIDHeader:    "1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, payloads, 1)

	rec = post(s, body, map[string]string{github.SignatureHeader: github.Sign("nope", []byte(body))})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Len(t, payloads, 1)
}
