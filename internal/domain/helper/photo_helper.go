package helper

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"BoraAli-App/internal/domain/model"

	"github.com/gabriel-vasile/mimetype"
)

const dataURLPrefix = "data:"

// ValidatePhotos は投稿された写真URLを検証する
func ValidatePhotos(photos []string) error {
	if len(photos) > model.MaxPhotosPerReview {
		return model.NewValidationError("photos", "no máximo %d fotos por envio", model.MaxPhotosPerReview)
	}
	for i, p := range photos {
		if err := ValidatePhotoURL(p); err != nil {
			return fmt.Errorf("photos[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidatePhotoURL は https URL または画像の data URL のみを許可する
func ValidatePhotoURL(raw string) error {
	if strings.HasPrefix(raw, dataURLPrefix) {
		return validateDataURL(raw)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return model.NewValidationError("photos", "URL de foto inválida")
	}
	return nil
}

func validateDataURL(raw string) error {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(raw, dataURLPrefix), ",")
	if !ok {
		return model.NewValidationError("photos", "data URL malformada")
	}
	if !strings.HasPrefix(meta, "image/") || !strings.HasSuffix(meta, ";base64") {
		return model.NewValidationError("photos", "apenas imagens em base64 são aceitas")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return model.NewValidationError("photos", "base64 inválido")
	}
	// 宣言されたMIMEではなく中身で判定する
	if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		return model.NewValidationError("photos", "conteúdo não é uma imagem")
	}
	return nil
}
