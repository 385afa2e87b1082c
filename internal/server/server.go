package server

import (
	"context"
	"net/http"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/prnotify/internal/provider/github"
	"github.com/maxbolgarin/prnotify/internal/relay"
	"github.com/maxbolgarin/servex/v2"
)

// Handler processes one webhook call
type Handler interface {
	Handle(ctx context.Context, in relay.InboundEvent) (relay.Response, error)
}

// Server receives GitHub webhook calls and passes them to the relay
type Server struct {
	handler Handler
	config  Config
	log     logze.Logger
	server  *servex.Server
}

// New creates a new webhook server
func New(cfg Config, handler Handler) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}
	cert, err := cfg.certificate()
	if err != nil {
		return nil, erro.Wrap(err, "load certificate")
	}

	log := logze.With("module", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
		servex.WithCertificate(cert),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	h := &Server{
		handler: handler,
		config:  cfg,
		log:     log,
		server:  server,
	}

	server.HandleFunc(cfg.Endpoint, h.handleWebhook)

	return h, nil
}

// Start starts the webhook server
func (h *Server) Start(ctx context.Context) error {
	h.log.Info("webhook server starting", "address", h.config.Address, "endpoint", h.config.Endpoint)
	if h.config.EnableHTTPS {
		return h.server.StartHTTPS(h.config.Address)
	}
	return h.server.StartHTTP(h.config.Address)
}

// Stop stops the webhook server
func (h *Server) Stop(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// handleWebhook handles incoming webhook requests
func (h *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodPost {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	body, err := ctx.Read()
	if err != nil {
		ctx.BadRequest(err, "failed to read webhook body")
		return
	}

	timer := abstract.StartTimer()
	eventType, delivery := github.DeliveryInfo(r)
	log := h.log.WithFields("event", eventType, "delivery", delivery)

	resp, err := h.handler.Handle(r.Context(), relay.InboundEvent{
		Headers: flattenHeaders(r.Header),
		Body:    body,
	})
	if err != nil {
		if errm.Is(err, relay.ErrInvalidPayload) {
			ctx.BadRequest(err, "invalid webhook payload")
			return
		}
		log.Err(err, "failed to relay event", "elapsed", timer.ElapsedTime().String())
		ctx.InternalServerError(err, "failed to relay event")
		return
	}

	log.Debug("webhook handled", "status", resp.StatusCode, "elapsed", timer.ElapsedTime().String())

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) > 0 {
		if _, err := w.Write(resp.Body); err != nil {
			log.Err(err, "failed to write response")
		}
	}
}

// flattenHeaders keeps the first value of every header
func flattenHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for name, values := range header {
		if len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}
