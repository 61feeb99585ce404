package helper

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"BoraAli-App/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

// 1x1 の透過PNG
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func TestValidatePhotoURL(t *testing.T) {
	t.Run("https URLは許可", func(t *testing.T) {
		assert.NoError(t, ValidatePhotoURL("https://cdn.example.com/a.jpg"))
	})

	t.Run("http URLは拒否", func(t *testing.T) {
		err := ValidatePhotoURL("http://cdn.example.com/a.jpg")
		assert.True(t, errors.Is(err, model.ErrValidation))
	})

	t.Run("画像のdata URLは許可", func(t *testing.T) {
		raw := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG)
		assert.NoError(t, ValidatePhotoURL(raw))
	})

	t.Run("中身が画像でないdata URLは拒否", func(t *testing.T) {
		raw := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello world"))
		assert.ErrorIs(t, ValidatePhotoURL(raw), model.ErrValidation)
	})

	t.Run("画像以外のMIMEは拒否", func(t *testing.T) {
		raw := "data:text/plain;base64," + base64.StdEncoding.EncodeToString(tinyPNG)
		assert.ErrorIs(t, ValidatePhotoURL(raw), model.ErrValidation)
	})
}

func TestValidatePhotos(t *testing.T) {
	seven := strings.Split(strings.Repeat("https://x.example/p.jpg ", 7), " ")[:7]
	assert.ErrorIs(t, ValidatePhotos(seven), model.ErrValidation)
	assert.NoError(t, ValidatePhotos(seven[:6]))
	assert.NoError(t, ValidatePhotos(nil))
}
