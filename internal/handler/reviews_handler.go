package handler

import (
	"net/http"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/middleware"
	"BoraAli-App/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ReviewsHandler はレビューに関するHTTPハンドラー
type ReviewsHandler struct {
	reviews usecase.ReviewUseCase
}

// NewReviewsHandler は新しいReviewsHandlerインスタンスを作成
func NewReviewsHandler(reviews usecase.ReviewUseCase) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// Create POST /api/reviews
func (h *ReviewsHandler) Create(c *gin.Context) {
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := h.reviews.Create(c.Request.Context(), middleware.PrincipalFromContext(c), req)
	if err != nil {
		respondError(c, err, "Erro ao criar avaliação")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update PUT /api/reviews/:id
func (h *ReviewsHandler) Update(c *gin.Context) {
	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := h.reviews.Update(c.Request.Context(), middleware.PrincipalFromContext(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Erro ao atualizar avaliação")
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete DELETE /api/reviews/:id
func (h *ReviewsHandler) Delete(c *gin.Context) {
	if err := h.reviews.Delete(c.Request.Context(), middleware.PrincipalFromContext(c), c.Param("id")); err != nil {
		respondError(c, err, "Erro ao deletar avaliação")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Avaliação deletada com sucesso"})
}

// AddPhotos POST /api/reviews/:id/photos
func (h *ReviewsHandler) AddPhotos(c *gin.Context) {
	var req model.AddPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	photos, err := h.reviews.AddPhotos(c.Request.Context(), middleware.PrincipalFromContext(c), c.Param("id"), req.Photos)
	if err != nil {
		respondError(c, err, "Erro ao adicionar fotos")
		return
	}
	c.JSON(http.StatusCreated, photos)
}
