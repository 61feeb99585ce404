package handler

import (
	"net/http"
	"strconv"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/middleware"
	"BoraAli-App/internal/usecase"

	"github.com/gin-gonic/gin"
)

// HeaderBatchID は検索結果のバッチIDを返すレスポンスヘッダー
const HeaderBatchID = "X-Batch-ID"

// PlacesHandler は場所に関するHTTPハンドラー
type PlacesHandler struct {
	places usecase.PlaceUseCase
	search usecase.PlaceSearchUseCase
}

// NewPlacesHandler は新しいPlacesHandlerインスタンスを作成
func NewPlacesHandler(places usecase.PlaceUseCase, search usecase.PlaceSearchUseCase) *PlacesHandler {
	return &PlacesHandler{places: places, search: search}
}

// List GET /api/places
func (h *PlacesHandler) List(c *gin.Context) {
	var filter *usecase.NearbyFilter
	if c.Query("lat") != "" || c.Query("lon") != "" {
		center, ok := parseCoordinate(c.Query("lat"), c.Query("lon"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat e lon inválidos"})
			return
		}
		var radius float64 = model.SearchRadiusKm
		if raw := c.Query("radius_km"); raw != "" {
			r, err := strconv.ParseFloat(raw, 64)
			if err != nil || r <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "radius_km inválido"})
				return
			}
			radius = r
		}
		filter = &usecase.NearbyFilter{Center: *center, RadiusKm: radius}
	}

	places, err := h.places.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Erro ao buscar locais")
		return
	}
	c.JSON(http.StatusOK, places)
}

// Search GET /api/places/search
// 座標が指定されれば距離順、地名のみなら生成順で返す
func (h *PlacesHandler) Search(c *gin.Context) {
	req := model.SearchRequest{
		Category:       c.Query("category"),
		Query:          c.Query("query"),
		LocationString: c.Query("locationString"),
	}
	if c.Query("lat") != "" || c.Query("lon") != "" {
		user, ok := parseCoordinate(c.Query("lat"), c.Query("lon"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat e lon inválidos"})
			return
		}
		req.User = user
	}

	batch, err := h.search.Search(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Não foi possível obter sugestões de locais.")
		return
	}
	c.Header(HeaderBatchID, batch.ID)
	c.JSON(http.StatusOK, batch.Places)
}

// GetBatch GET /api/places/search/batches/:batchId
func (h *PlacesHandler) GetBatch(c *gin.Context) {
	batch, err := h.search.GetBatch(c.Request.Context(), c.Param("batchId"))
	if err != nil {
		respondError(c, err, "Erro ao buscar resultados")
		return
	}
	c.JSON(http.StatusOK, batch)
}

// Get GET /api/places/:id
func (h *PlacesHandler) Get(c *gin.Context) {
	place, err := h.places.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Erro ao buscar local")
		return
	}
	c.JSON(http.StatusOK, place)
}

// ListReviews GET /api/places/:id/reviews
func (h *PlacesHandler) ListReviews(c *gin.Context) {
	reviews, err := h.places.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Erro ao buscar avaliações")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Create POST /api/places
func (h *PlacesHandler) Create(c *gin.Context) {
	var req model.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	place, err := h.places.Create(c.Request.Context(), middleware.PrincipalFromContext(c), req)
	if err != nil {
		respondError(c, err, "Erro ao criar local")
		return
	}
	c.JSON(http.StatusCreated, place)
}

// PreviewReview POST /api/places/:id/reviews/preview
func (h *PlacesHandler) PreviewReview(c *gin.Context) {
	var req model.PreviewReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.places.PreviewReview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Erro ao adicionar avaliação")
		return
	}
	c.JSON(http.StatusAccepted, res)
}

// SummaryStatus GET /api/summaries/:taskId
func (h *PlacesHandler) SummaryStatus(c *gin.Context) {
	status, err := h.places.SummaryStatus(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		respondError(c, err, "Erro ao consultar resumo")
		return
	}
	c.JSON(http.StatusOK, status)
}

// parseCoordinate はlat/lonクエリを解析する。範囲外や0は不正とする
func parseCoordinate(rawLat, rawLon string) (*model.Coordinate, bool) {
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, false
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return nil, false
	}
	coord := model.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.InRange() || !coord.IsKnown() {
		return nil, false
	}
	return &coord, true
}
