package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/agencysite/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "cloudflare header wins",
			headers:    map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"},
			remoteAddr: "10.0.0.1:1234",
			want:       "203.0.113.7",
		},
		{
			name:       "invalid header falls through",
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip", "DO-Connecting-IP": "198.51.100.9"},
			remoteAddr: "10.0.0.1:1234",
			want:       "198.51.100.9",
		},
		{
			name:       "first valid forwarded entry",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.2, 10.0.0.3"},
			remoteAddr: "10.0.0.1:1234",
			want:       "198.51.100.2",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": " 2001:db8::1 "},
			remoteAddr: "10.0.0.1:1234",
			want:       "2001:db8::1",
		},
		{
			name:       "remote addr with port",
			remoteAddr: "192.0.2.10:5555",
			want:       "192.0.2.10",
		},
		{
			name:       "remote addr ipv6 with port",
			remoteAddr: "[2001:db8::2]:443",
			want:       "2001:db8::2",
		},
		{
			name:       "ipv4 mapped ipv6 is unmapped",
			headers:    map[string]string{"X-Real-IP": "::ffff:192.0.2.1"},
			remoteAddr: "10.0.0.1:1234",
			want:       "192.0.2.1",
		},
		{
			name:       "nothing valid",
			remoteAddr: "bogus",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}

func TestResolver_WithHeaders(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:5555"
	r.Header.Set("CF-Connecting-IP", "203.0.113.7")
	r.Header.Set("X-Real-IP", "198.51.100.4")

	assert.Equal(t, "198.51.100.4", clientip.New(clientip.WithHeaders("X-Real-IP")).IP(r))
	assert.Equal(t, "192.0.2.10", clientip.New(clientip.WithHeaders()).IP(r))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.2")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.2", got)
	assert.Empty(t, clientip.FromContext(req.Context()))
}
