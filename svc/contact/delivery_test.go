package contact_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/agencysite/pkg/email"
	"github.com/dmitrymomot/agencysite/pkg/emailjs"
	"github.com/dmitrymomot/agencysite/svc/contact"
)

func TestDeliveryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		company string
		want    string
	}{
		{name: "company given", company: "Acme", want: "Acme"},
		{name: "company empty", company: "", want: "Not specified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			params := contact.DeliveryParams(validFormWithCompany(tt.company))

			assert.Equal(t, tt.want, params[contact.ParamCompany])
			assert.Equal(t, "Jane Doe", params[contact.ParamFromName])
			assert.Equal(t, params[contact.ParamFromEmail], params[contact.ParamReplyTo])
			assert.Equal(t, validForm.ProjectDetails, params[contact.ParamMessage])
			assert.Len(t, params, 7)
		})
	}
}

func TestEmailJSDeliverer(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	client := emailjs.New(emailjs.Config{Endpoint: srv.URL})
	d := contact.NewEmailJSDeliverer(client)

	err := d.Deliver(context.Background(), contact.Delivery{
		Credentials: testCredentials,
		Params:      contact.DeliveryParams(validForm),
	})
	require.NoError(t, err)

	assert.Equal(t, "service_test", got["service_id"])
	assert.Equal(t, "template_test", got["template_id"])
	assert.Equal(t, "public_test", got["user_id"])
	params, ok := got["template_params"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", params["from_name"])
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, p email.SendEmailParams) error {
	return m.Called(ctx, p).Error(0)
}

func TestMailerDeliverer(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.SendTo == "inbox@agency.dev" &&
			p.ReplyTo == "jane@example.com" &&
			p.TemplateAlias == "template_test" &&
			p.TemplateModel["from_name"] == "Jane Doe" &&
			p.Tag == "contact-inquiry"
	})).Return(nil).Once()

	d := contact.NewMailerDeliverer(sender, "inbox@agency.dev")
	err := d.Deliver(context.Background(), contact.Delivery{
		Credentials: testCredentials,
		Params:      contact.DeliveryParams(validForm),
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSimulatedDeliveryHonoursDelay(t *testing.T) {
	t.Parallel()

	ctrl := contact.NewController(nil, nil, contact.WithSimulatedDelay(20*time.Millisecond))
	defer ctrl.Close()
	fill(t, ctrl, validForm)

	start := time.Now()
	_, err := ctrl.OnSubmit(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
