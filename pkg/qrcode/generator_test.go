package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/agencysite/pkg/qrcode"
)

const link = "https://wa.me/+8801646846514?text=Hello%20there!"

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		for _, content := range []string{"", "  \t\n"} {
			got, err := qrcode.Generate(content)
			require.ErrorIs(t, err, qrcode.ErrEmptyContent)
			assert.Nil(t, got)
		}
	})

	t.Run("default size", func(t *testing.T) {
		t.Parallel()

		raw, err := qrcode.Generate(link)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dy())
	})

	t.Run("custom size and level", func(t *testing.T) {
		t.Parallel()

		raw, err := qrcode.Generate(link, qrcode.WithSize(320), qrcode.WithLevel(qrcode.High), qrcode.WithoutBorder())
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, 320, img.Bounds().Dx())
	})

	t.Run("non-positive size keeps default", func(t *testing.T) {
		t.Parallel()

		raw, err := qrcode.Generate(link, qrcode.WithSize(-5))
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
	})
}

func TestGenerateDataURI(t *testing.T) {
	t.Parallel()

	uri, err := qrcode.GenerateDataURI(link)
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	_, err = qrcode.GenerateDataURI(" ")
	require.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, qrcode.Low, qrcode.ParseLevel("low"))
	assert.Equal(t, qrcode.High, qrcode.ParseLevel(" HIGH "))
	assert.Equal(t, qrcode.Highest, qrcode.ParseLevel("highest"))
	assert.Equal(t, qrcode.Medium, qrcode.ParseLevel("unknown"))
}
