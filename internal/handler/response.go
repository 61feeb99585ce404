package handler

import (
	"errors"
	"net/http"

	"BoraAli-App/internal/domain/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError はドメインエラーをステータスコードに変換して返す
// 上流・内部のエラー内容はログにのみ残し、クライアントには汎用メッセージを返す
func respondError(c *gin.Context, err error, fallback string) {
	logger := zerolog.Ctx(c.Request.Context())

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "details": verr.Field})
	case errors.Is(err, model.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
	case errors.Is(err, model.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
	case errors.Is(err, model.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Você não tem permissão para esta ação"})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Não encontrado"})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("❌ リクエスト処理に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// respondBindError はリクエストのバインド失敗を400で返す
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Requisição inválida",
		"details": err.Error(),
	})
}
