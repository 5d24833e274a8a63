package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerate is returned when the QR code encoder fails.
	ErrFailedToGenerate = errors.New("failed to generate QR code")
)

// DefaultSize is the PNG edge length in pixels used when none is given.
const DefaultSize = 256

// Level is the error recovery level of the code.
type Level = skipqrcode.RecoveryLevel

const (
	Low     = skipqrcode.Low
	Medium  = skipqrcode.Medium
	High    = skipqrcode.High
	Highest = skipqrcode.Highest
)

// ParseLevel maps "low", "medium", "high" and "highest" to a Level. Anything
// else yields Medium.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low
	case "high":
		return High
	case "highest":
		return Highest
	default:
		return Medium
	}
}

type options struct {
	size     int
	level    Level
	noBorder bool
}

// Option configures generation.
type Option func(*options)

// WithSize sets the PNG edge length. Non-positive sizes keep the default.
func WithSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.size = size
		}
	}
}

// WithLevel sets the recovery level.
func WithLevel(l Level) Option {
	return func(o *options) { o.level = l }
}

// WithoutBorder drops the quiet zone around the code.
func WithoutBorder() Option {
	return func(o *options) { o.noBorder = true }
}

// Generate encodes content as a PNG image.
func Generate(content string, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	o := options{size: DefaultSize, level: Medium}
	for _, opt := range opts {
		opt(&o)
	}

	q, err := skipqrcode.New(content, o.level)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}
	q.DisableBorder = o.noBorder

	png, err := q.PNG(o.size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}
	return png, nil
}

// GenerateDataURI encodes content as a base64 PNG data URI for <img src>.
func GenerateDataURI(content string, opts ...Option) (string, error) {
	png, err := Generate(content, opts...)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
