package contact

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/agencysite/handler"
	"github.com/dmitrymomot/agencysite/pkg/clientip"
	"github.com/dmitrymomot/agencysite/pkg/logger"
	"github.com/dmitrymomot/agencysite/pkg/qrcode"
	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
	"github.com/dmitrymomot/agencysite/pkg/sanitizer"
)

// DefaultVisitorKey scopes rate limits by client IP. Headers the client
// controls are left out so a new User-Agent does not buy a fresh window.
var DefaultVisitorKey = ratelimiter.Composite(clientip.GetIP)

// Handler exposes the contact form over HTTP. Every request gets its own
// Controller whose limiter is scoped to the visitor.
type Handler struct {
	cfg        Config
	limiter    *ratelimiter.Limiter
	deliverer  Deliverer
	catalog    Catalog
	visitorKey ratelimiter.KeyFunc
	logger     *slog.Logger
	now        func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCatalog sets the catalog served and enforced by the handler.
func WithCatalog(c Catalog) HandlerOption {
	return func(h *Handler) { h.catalog = c }
}

// WithVisitorKey sets how requests are mapped to a rate-limit scope.
func WithVisitorKey(fn ratelimiter.KeyFunc) HandlerOption {
	return func(h *Handler) {
		if fn != nil {
			h.visitorKey = fn
		}
	}
}

// WithHandlerLogger sets the logger of the handler and its controllers.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.logger = log
		}
	}
}

// NewHandler creates a Handler. A nil limiter disables rate limiting.
func NewHandler(cfg Config, limiter *ratelimiter.Limiter, deliverer Deliverer, opts ...HandlerOption) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 16 << 10
	}
	h := &Handler{
		cfg:        cfg,
		limiter:    limiter,
		deliverer:  deliverer,
		catalog:    DefaultCatalog(),
		visitorKey: DefaultVisitorKey,
		logger:     logger.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the contact routes, to be mounted under /contact.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	bind := handler.WithBinder(handler.BindJSON(h.cfg.MaxBodyBytes))
	log := handler.WithLogger(h.logger)

	r.Get("/options", handler.Wrap(h.options, log))
	r.Post("/", handler.Wrap(h.submit, bind, log))
	r.Get("/whatsapp", handler.Wrap(h.greeting, log))
	r.Post("/whatsapp", handler.Wrap(h.whatsApp, bind, log))
	r.Get("/whatsapp/qr", handler.Wrap(h.whatsAppQR, log))
	return r
}

func (h *Handler) options(_ *http.Request, _ struct{}) handler.Response {
	return handler.JSON(h.catalog)
}

func (h *Handler) submit(r *http.Request, form Form) handler.Response {
	var limiter ratelimiter.RateLimiter
	if h.limiter != nil {
		limiter = h.limiter.Scoped(h.visitorKey(r))
	}

	opts := append(h.cfg.ControllerOptions(), WithLogger(h.logger), WithChecks(h.catalog.Check))
	ctrl := NewController(limiter, h.deliverer, opts...)
	defer ctrl.Close()

	for _, field := range Fields {
		if _, err := ctrl.OnFieldChange(field, form.Get(field)); err != nil {
			return handler.JSONError(err)
		}
	}

	snap, err := ctrl.OnSubmit(r.Context())
	return h.submitResponse(snap, err)
}

func (h *Handler) submitResponse(snap Snapshot, err error) handler.Response {
	var cooldown *CooldownError
	switch {
	case err == nil:
		return handler.JSON(snap)
	case errors.As(err, &cooldown):
		secs := int(math.Ceil(cooldown.RetryAfter(h.now()).Seconds()))
		return handler.JSONError(handler.ErrTooManyRequests,
			handler.WithJSONData(snap),
			handler.WithJSONMessage(MessageCooldown),
			handler.WithJSONHeader("Retry-After", strconv.Itoa(secs)),
		)
	case errors.Is(err, ErrInvalidForm):
		return handler.JSONError(err, handler.WithJSONData(snap), handler.WithJSONMessage(MessageInvalid))
	case errors.Is(err, ErrDeliveryFailed):
		return handler.JSONError(handler.ErrBadGateway, handler.WithJSONData(snap), handler.WithJSONMessage(MessageFailure))
	case errors.Is(err, ErrSubmitInProgress):
		return handler.JSONError(handler.ErrConflict, handler.WithJSONData(snap))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return handler.JSONError(handler.ErrServiceUnavailable, handler.WithJSONData(snap))
	default:
		return handler.JSONError(err)
	}
}

type linkResponse struct {
	URL string `json:"url"`
}

func (h *Handler) greeting(_ *http.Request, _ struct{}) handler.Response {
	if h.cfg.WhatsAppPhone == "" {
		return handler.JSONError(handler.ErrNotFound)
	}
	return h.link(GreetingURL(h.cfg.WhatsAppPhone))
}

// link refuses to hand out anything but an absolute http(s) URL. A phone
// number that breaks the wa.me URL is a configuration error.
func (h *Handler) link(raw string) handler.Response {
	u, ok := sanitizer.SanitizeURL(raw)
	if !ok {
		h.logger.Error("whatsapp link rejected", slog.String("phone", h.cfg.WhatsAppPhone))
		return handler.JSONError(handler.ErrInternalServerError)
	}
	return handler.JSON(linkResponse{URL: u})
}

func (h *Handler) whatsApp(_ *http.Request, form Form) handler.Response {
	if h.cfg.WhatsAppPhone == "" {
		return handler.JSONError(handler.ErrNotFound)
	}
	stored := FormFrom(func(field Field) string { return sanitizer.EscapeHTML(form.Get(field)) })
	return h.link(WhatsAppURL(h.cfg.WhatsAppPhone, stored))
}

func (h *Handler) whatsAppQR(r *http.Request, _ struct{}) handler.Response {
	if h.cfg.WhatsAppPhone == "" {
		return handler.JSONError(handler.ErrNotFound)
	}

	size := qrcode.DefaultSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 64 || n > 1024 {
			return handler.JSONError(handler.ErrBadRequest, handler.WithJSONMessage("size must be between 64 and 1024"))
		}
		size = n
	}

	png, err := qrcode.Generate(GreetingURL(h.cfg.WhatsAppPhone),
		qrcode.WithSize(size),
		qrcode.WithLevel(qrcode.ParseLevel(r.URL.Query().Get("level"))),
	)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "whatsapp qr generation failed", logger.Error(err))
		return handler.JSONError(err)
	}
	return handler.CachedBlob("image/png", "public, max-age=86400", png)
}
