package contact_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
	"github.com/dmitrymomot/agencysite/svc/contact"
)

var testCredentials = contact.Credentials{
	ServiceID:  "service_test",
	TemplateID: "template_test",
	PublicKey:  "public_test",
}

var validForm = contact.Form{
	FirstName:      "Jane",
	LastName:       "Doe",
	Email:          "jane@example.com",
	Company:        "Acme",
	Service:        "Web Development",
	Budget:         "$1K - $5K",
	ProjectDetails: "We need a new marketing site.",
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type mockDeliverer struct {
	mock.Mock
}

func (m *mockDeliverer) Deliver(ctx context.Context, d contact.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

// blockingDeliverer holds every delivery until release is closed.
type blockingDeliverer struct {
	started chan struct{}
	release chan struct{}
	err     error
}

func newBlockingDeliverer(err error) *blockingDeliverer {
	return &blockingDeliverer{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
		err:     err,
	}
}

func (b *blockingDeliverer) Deliver(context.Context, contact.Delivery) error {
	b.started <- struct{}{}
	<-b.release
	return b.err
}

type brokenStore struct{}

var errStoreDown = errors.New("store down")

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreDown }
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errStoreDown
}
func (brokenStore) Delete(context.Context, string) error { return errStoreDown }

func newLimiter(t *testing.T, clock *fakeClock) *ratelimiter.Limiter {
	t.Helper()
	store := ratelimiter.NewMemoryStore()
	t.Cleanup(store.Close)
	return ratelimiter.MustNew(store, ratelimiter.DefaultConfig, ratelimiter.WithClock(clock.Now))
}

func fill(t *testing.T, ctrl *contact.Controller, form contact.Form) {
	t.Helper()
	for _, field := range contact.Fields {
		if _, err := ctrl.OnFieldChange(field, form.Get(field)); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
}
