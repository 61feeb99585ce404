package handler

import (
	"net/http"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/usecase"

	"github.com/gin-gonic/gin"
)

// LocationHandler は現在地推定のHTTPハンドラー
type LocationHandler struct {
	location usecase.LocationUseCase
}

// NewLocationHandler は新しいLocationHandlerインスタンスを作成
func NewLocationHandler(location usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{location: location}
}

// Resolve GET /api/location?lat=&lon=
// lat/lonは端末の精密な座標。不正な値は粗い推定にフォールバックする
func (h *LocationHandler) Resolve(c *gin.Context) {
	var precise *model.Coordinate
	if c.Query("lat") != "" || c.Query("lon") != "" {
		precise, _ = parseCoordinate(c.Query("lat"), c.Query("lon"))
	}
	resolved, err := h.location.Resolve(c.Request.Context(), c.ClientIP(), precise)
	if err != nil {
		respondError(c, err, "Não foi possível determinar a localização")
		return
	}
	c.JSON(http.StatusOK, resolved)
}
