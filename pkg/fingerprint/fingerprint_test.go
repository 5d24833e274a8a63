package fingerprint_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/agencysite/pkg/fingerprint"
	"github.com/dmitrymomot/agencysite/pkg/logger"
)

func newRequest(ip, ua, lang string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = ip + ":12345"
	r.Header.Set("User-Agent", ua)
	if lang != "" {
		r.Header.Set("Accept-Language", lang)
	}
	return r
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	base := fingerprint.Generate(newRequest("203.0.113.7", "Mozilla/5.0", "en-US"))
	require.Len(t, base, 32)

	t.Run("stable across unrelated headers", func(t *testing.T) {
		t.Parallel()
		r := newRequest("203.0.113.7", "Mozilla/5.0", "en-US")
		r.Header.Set("Accept", "application/json")
		r.Header.Set("Sec-Fetch-Mode", "cors")
		assert.Equal(t, base, fingerprint.Generate(r))
	})

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "different ip", req: newRequest("203.0.113.8", "Mozilla/5.0", "en-US")},
		{name: "different user agent", req: newRequest("203.0.113.7", "curl/8.0", "en-US")},
		{name: "different language", req: newRequest("203.0.113.7", "Mozilla/5.0", "bn-BD")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.NotEqual(t, base, fingerprint.Generate(tt.req))
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = ""
	r.Header.Del("User-Agent")
	assert.Empty(t, fingerprint.Generate(r))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	req := newRequest("198.51.100.1", "Mozilla/5.0", "")
	want := fingerprint.Generate(req)

	var seen string
	h := fingerprint.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = fingerprint.FromRequest(r)
		assert.Equal(t, seen, fingerprint.FromContext(r.Context()))
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, want, seen)
}

func TestFromRequestWithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := newRequest("198.51.100.1", "Mozilla/5.0", "en")
	assert.Equal(t, fingerprint.Generate(req), fingerprint.FromRequest(req))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithExtractor(fingerprint.LoggerExtractor()),
	)

	log.InfoContext(fingerprint.WithContext(context.Background(), "abc123"), "hello")
	log.InfoContext(context.Background(), "bare")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), `"fingerprint":"abc123"`)
	assert.NotContains(t, string(lines[1]), "fingerprint")
}
