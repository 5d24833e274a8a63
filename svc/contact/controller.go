package contact

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/agencysite/pkg/async"
	"github.com/dmitrymomot/agencysite/pkg/logger"
	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
	"github.com/dmitrymomot/agencysite/pkg/sanitizer"
	"github.com/dmitrymomot/agencysite/pkg/statemachine"
	"github.com/dmitrymomot/agencysite/pkg/validator"
)

// DefaultAction is the rate-limit action key of the contact form.
const DefaultAction = "contactForm"

// DefaultSimulatedDelay is how long a simulated delivery takes.
const DefaultSimulatedDelay = time.Second

type phase string

const (
	phaseIdle       phase = "idle"
	phaseSubmitting phase = "submitting"
	phaseSucceeded  phase = "succeeded" // idle with a success banner
	phaseFailed     phase = "failed"    // idle with an error banner
)

type trigger string

const (
	triggerSubmit         trigger = "submit"
	triggerReject         trigger = "reject"
	triggerDelivered      trigger = "delivered"
	triggerDeliveryFailed trigger = "delivery_failed"
	triggerEdit           trigger = "edit"
)

var settled = []phase{phaseIdle, phaseSucceeded, phaseFailed}

func newLifecycle() *statemachine.Machine[phase, trigger] {
	return statemachine.New(phaseIdle,
		statemachine.WithTransitionFrom(settled, phaseSubmitting, triggerSubmit),
		statemachine.WithTransitionFrom(settled, phaseFailed, triggerReject),
		statemachine.WithTransition[phase, trigger](phaseSubmitting, phaseSucceeded, triggerDelivered),
		statemachine.WithTransition[phase, trigger](phaseSubmitting, phaseFailed, triggerDeliveryFailed),
		statemachine.WithTransitionFrom([]phase{phaseSucceeded, phaseFailed}, phaseIdle, triggerEdit),
	)
}

// Controller owns one contact form session: field values, field errors,
// the status banner and the submission lifecycle.
//
// All methods are safe for concurrent use. A second submit while a delivery
// is in flight is rejected with ErrSubmitInProgress. Deliveries cannot be
// canceled; a result arriving after Close is dropped.
type Controller struct {
	mu           sync.Mutex
	form         Form
	errors       map[Field]string
	status       *Status
	submissionID string
	closed       bool
	lifecycle    *statemachine.Machine[phase, trigger]

	limiter        ratelimiter.RateLimiter
	deliverer      Deliverer
	action         string
	rules          validator.Rules
	checks         []Check
	credentials    Credentials
	simulatedDelay time.Duration
	whatsAppPhone  string
	logger         *slog.Logger
	now            func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithAction sets the rate-limit action key.
func WithAction(action string) Option {
	return func(c *Controller) {
		if action != "" {
			c.action = action
		}
	}
}

// WithRules replaces the validation rules.
func WithRules(rules validator.Rules) Option {
	return func(c *Controller) {
		if rules != nil {
			c.rules = rules
		}
	}
}

// Check validates the stored (escaped) form after the field rules passed or
// failed. Its errors only apply to fields the rules accepted.
type Check func(Form) validator.ValidationErrors

// WithChecks adds validation steps run after the field rules.
func WithChecks(checks ...Check) Option {
	return func(c *Controller) {
		for _, check := range checks {
			if check != nil {
				c.checks = append(c.checks, check)
			}
		}
	}
}

// WithCredentials sets the delivery identifiers.
func WithCredentials(creds Credentials) Option {
	return func(c *Controller) { c.credentials = creds }
}

// WithSimulatedDelay sets the duration of a simulated delivery.
func WithSimulatedDelay(d time.Duration) Option {
	return func(c *Controller) { c.simulatedDelay = d }
}

// WithWhatsAppPhone enables the WhatsApp fallback link on delivery failures.
func WithWhatsAppPhone(phone string) Option {
	return func(c *Controller) { c.whatsAppPhone = phone }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithClock overrides the time source used for latency logging.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a controller with an empty form. A nil deliverer
// always takes the simulated path.
func NewController(limiter ratelimiter.RateLimiter, deliverer Deliverer, opts ...Option) *Controller {
	c := &Controller{
		errors:         make(map[Field]string),
		lifecycle:      newLifecycle(),
		limiter:        limiter,
		deliverer:      deliverer,
		action:         DefaultAction,
		rules:          Rules,
		simulatedDelay: DefaultSimulatedDelay,
		logger:         logger.Discard(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("contact"))
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// OnFieldChange stores the escaped value of field. It clears the error of
// that field and any displayed status, whether or not the value is valid.
func (c *Controller) OnFieldChange(field Field, value string) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.snapshot(), ErrClosed
	}
	if err := c.form.Set(field, sanitizer.EscapeHTML(value)); err != nil {
		return c.snapshot(), err
	}

	delete(c.errors, field)
	if c.lifecycle.Is(phaseSucceeded, phaseFailed) {
		c.fire(context.Background(), triggerEdit)
		c.status = nil
	}
	return c.snapshot(), nil
}

// OnSubmit submits the form and waits for the outcome. If ctx ends first the
// wait is abandoned with ctx.Err(), but the delivery keeps running and its
// result still lands in the controller.
func (c *Controller) OnSubmit(ctx context.Context) (Snapshot, error) {
	snap, err := c.SubmitAsync(ctx).AwaitContext(ctx)
	if err != nil && errors.Is(err, ctx.Err()) {
		return c.Snapshot(), err
	}
	return snap, err
}

// SubmitAsync runs the submit preconditions synchronously and returns a
// Future for the outcome.
//
//  1. rate limit: a denial sets the cooldown banner (ErrRateLimited)
//  2. validation: failures set field errors and a banner (ErrInvalidForm)
//  3. delivery: the form is reset on success, kept on failure (ErrDeliveryFailed)
func (c *Controller) SubmitAsync(ctx context.Context) *async.Future[Snapshot] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return async.Resolved(c.snapshot(), ErrClosed)
	}
	if c.lifecycle.Is(phaseSubmitting) {
		return async.Resolved(c.snapshot(), ErrSubmitInProgress)
	}

	if c.limiter != nil {
		decision := c.limiter.Allow(ctx, c.action)
		if !decision.Allowed {
			c.reject(ctx, MessageCooldown)
			c.logger.InfoContext(ctx, "contact submit rate limited",
				logger.Outcome("rate_limited"),
				slog.Int("count", decision.Count),
				slog.Time("reset_at", decision.ResetAt),
			)
			return async.Resolved(c.snapshot(), &CooldownError{ResetAt: decision.ResetAt})
		}
	}

	res := c.validate()
	if !res.IsValid {
		c.errors = make(map[Field]string, len(res.Errors))
		for field, msg := range res.Errors {
			c.errors[Field(field)] = msg
		}
		c.reject(ctx, MessageInvalid)
		c.logger.DebugContext(ctx, "contact submit invalid", logger.Outcome("invalid"), slog.Int("fields", len(res.Errors)))
		return async.Resolved(c.snapshot(), errors.Join(ErrInvalidForm, res.Err()))
	}

	c.fire(ctx, triggerSubmit)
	clear(c.errors)
	c.status = nil
	c.submissionID = uuid.NewString()

	delivery := Delivery{Credentials: c.credentials, Params: DeliveryParams(c.form)}
	job := deliveryJob{id: c.submissionID, delivery: delivery, deliverer: c.pickDeliverer(), started: c.now()}

	// Delivery is not cancelable once issued.
	return async.Async(context.WithoutCancel(ctx), job, c.deliver)
}

func (c *Controller) validate() validator.Result {
	res := validator.Validate(c.form.Values(), c.rules)
	for _, check := range c.checks {
		for _, verr := range check(c.form) {
			if _, failed := res.Errors[verr.Field]; failed {
				continue
			}
			res.Errors[verr.Field] = verr.Message
			res.IsValid = false
		}
	}
	return res
}

// Close detaches the controller from its host. Pending deliveries still run
// but no longer change state.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

type deliveryJob struct {
	id        string
	delivery  Delivery
	deliverer Deliverer
	started   time.Time
}

func (c *Controller) deliver(ctx context.Context, job deliveryJob) (Snapshot, error) {
	deliveryErr := job.deliverer.Deliver(ctx, job.delivery)

	c.mu.Lock()
	defer c.mu.Unlock()

	attrs := []slog.Attr{logger.SubmissionID(job.id), logger.Duration(c.now().Sub(job.started))}
	if c.closed {
		c.logger.LogAttrs(ctx, slog.LevelInfo, "contact delivery finished after close",
			append(attrs, logger.Outcome("detached"), logger.Error(deliveryErr))...)
		return c.snapshot(), ErrClosed
	}

	if deliveryErr != nil {
		c.fire(ctx, triggerDeliveryFailed)
		c.status = &Status{Kind: StatusError, Message: MessageFailure}
		if c.whatsAppPhone != "" {
			c.status.AlternateURL = WhatsAppURL(c.whatsAppPhone, c.form)
		}
		c.logger.LogAttrs(ctx, slog.LevelWarn, "contact delivery failed",
			append(attrs, logger.Outcome("failed"), logger.Error(deliveryErr))...)
		return c.snapshot(), errors.Join(ErrDeliveryFailed, deliveryErr)
	}

	c.fire(ctx, triggerDelivered)
	c.form = Form{}
	c.status = &Status{Kind: StatusSuccess, Message: MessageSuccess}
	c.logger.LogAttrs(ctx, slog.LevelInfo, "contact delivered", append(attrs, logger.Outcome("delivered"))...)
	return c.snapshot(), nil
}

func (c *Controller) pickDeliverer() Deliverer {
	if c.deliverer == nil || !c.credentials.Complete() {
		return simulatedDeliverer{delay: c.simulatedDelay}
	}
	return c.deliverer
}

func (c *Controller) reject(ctx context.Context, message string) {
	c.fire(ctx, triggerReject)
	c.status = &Status{Kind: StatusError, Message: message}
}

// fire applies a transition the caller has already checked to be legal.
func (c *Controller) fire(ctx context.Context, t trigger) {
	if _, err := c.lifecycle.Fire(ctx, t, nil); err != nil {
		c.logger.ErrorContext(ctx, "contact lifecycle transition failed", slog.String("trigger", string(t)), logger.Error(err))
	}
}

func (c *Controller) snapshot() Snapshot {
	var status *Status
	if c.status != nil {
		s := *c.status
		status = &s
	}
	return Snapshot{
		Form:         c.form,
		Errors:       maps.Clone(c.errors),
		Status:       status,
		Submitting:   c.lifecycle.Is(phaseSubmitting),
		SubmissionID: c.submissionID,
	}
}
