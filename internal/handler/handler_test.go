package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/middleware"
	"BoraAli-App/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSearchUseCase struct {
	req   model.SearchRequest
	batch *model.PlaceBatch
	err   error
}

func (f *fakeSearchUseCase) Search(_ context.Context, req model.SearchRequest) (*model.PlaceBatch, error) {
	f.req = req
	return f.batch, f.err
}

func (f *fakeSearchUseCase) GetBatch(_ context.Context, id string) (*model.PlaceBatch, error) {
	if f.batch != nil && f.batch.ID == id {
		return f.batch, nil
	}
	return nil, model.ErrNotFound
}

type fakePlaceUseCase struct {
	usecase.PlaceUseCase
	filter *usecase.NearbyFilter
	place  *model.Place
	err    error
}

func (f *fakePlaceUseCase) List(_ context.Context, filter *usecase.NearbyFilter) ([]model.Place, error) {
	f.filter = filter
	return []model.Place{}, f.err
}

func (f *fakePlaceUseCase) GetPlace(context.Context, string) (*model.Place, error) {
	return f.place, f.err
}

type fakeReviewUseCase struct {
	usecase.ReviewUseCase
	principal *model.Principal
	err       error
}

func (f *fakeReviewUseCase) Delete(_ context.Context, principal *model.Principal, _ string) error {
	f.principal = principal
	return f.err
}

func newPlacesRouter(places usecase.PlaceUseCase, search usecase.PlaceSearchUseCase) *gin.Engine {
	h := NewPlacesHandler(places, search)
	r := gin.New()
	r.GET("/api/places", h.List)
	r.GET("/api/places/search", h.Search)
	r.GET("/api/places/search/batches/:batchId", h.GetBatch)
	r.GET("/api/places/:id", h.Get)
	return r
}

func doRequest(r http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPlacesHandler_Search(t *testing.T) {
	near := model.Kilometers(1.5)
	far := model.Kilometers(math.Inf(1))
	batch := &model.PlaceBatch{
		ID:     "batch-1",
		Ranked: true,
		Places: []model.Place{
			{ID: "Perto-0", Name: "Perto", Reviews: []model.Review{}, Distance: &near},
			{ID: "Sem-1", Name: "Sem", Reviews: []model.Review{}, Distance: &far},
		},
	}

	t.Run("順位付きの配列とバッチIDを返す", func(t *testing.T) {
		search := &fakeSearchUseCase{batch: batch}
		r := newPlacesRouter(&fakePlaceUseCase{}, search)

		rec := doRequest(r, http.MethodGet, "/api/places/search?category=Praias&lat=-27.5948&lon=-48.5482", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "batch-1", rec.Header().Get(HeaderBatchID))

		var body []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, 1.5, body[0]["distance"])
		assert.Nil(t, body[1]["distance"])

		require.NotNil(t, search.req.User)
		assert.Equal(t, -27.5948, search.req.User.Latitude)
		assert.Equal(t, "Praias", search.req.Category)
	})

	t.Run("不正な座標は400", func(t *testing.T) {
		r := newPlacesRouter(&fakePlaceUseCase{}, &fakeSearchUseCase{batch: batch})
		rec := doRequest(r, http.MethodGet, "/api/places/search?category=Praias&lat=abc&lon=1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("バリデーションエラーは400", func(t *testing.T) {
		search := &fakeSearchUseCase{err: model.NewValidationError("location", "obrigatório")}
		rec := doRequest(newPlacesRouter(&fakePlaceUseCase{}, search), http.MethodGet, "/api/places/search?category=Praias", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("上流の失敗は詳細を隠して500", func(t *testing.T) {
		search := &fakeSearchUseCase{err: errors.New("gemini: quota exceeded")}
		rec := doRequest(newPlacesRouter(&fakePlaceUseCase{}, search), http.MethodGet, "/api/places/search?query=pizza&locationString=Floripa", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "quota")
	})

	t.Run("保存済みバッチを取得できる", func(t *testing.T) {
		r := newPlacesRouter(&fakePlaceUseCase{}, &fakeSearchUseCase{batch: batch})
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/places/search/batches/batch-1", "").Code)
		assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/places/search/batches/other", "").Code)
	})
}

func TestPlacesHandler_List(t *testing.T) {
	t.Run("座標と半径で絞り込む", func(t *testing.T) {
		places := &fakePlaceUseCase{}
		rec := doRequest(newPlacesRouter(places, &fakeSearchUseCase{}), http.MethodGet, "/api/places?lat=-27.59&lon=-48.54&radius_km=5", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, places.filter)
		assert.Equal(t, 5.0, places.filter.RadiusKm)
	})

	t.Run("座標がなければ絞り込まない", func(t *testing.T) {
		places := &fakePlaceUseCase{}
		rec := doRequest(newPlacesRouter(places, &fakeSearchUseCase{}), http.MethodGet, "/api/places", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, places.filter)
	})

	t.Run("半径が不正なら400", func(t *testing.T) {
		rec := doRequest(newPlacesRouter(&fakePlaceUseCase{}, &fakeSearchUseCase{}), http.MethodGet, "/api/places?lat=-27.59&lon=-48.54&radius_km=-1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPlacesHandler_Get(t *testing.T) {
	t.Run("存在しない場所は404", func(t *testing.T) {
		places := &fakePlaceUseCase{err: model.ErrNotFound}
		rec := doRequest(newPlacesRouter(places, &fakeSearchUseCase{}), http.MethodGet, "/api/places/x", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("要約付きの場所を返す", func(t *testing.T) {
		places := &fakePlaceUseCase{place: &model.Place{ID: "p1", Name: "Praia", Reviews: []model.Review{}, AISummary: "resumo"}}
		rec := doRequest(newPlacesRouter(places, &fakeSearchUseCase{}), http.MethodGet, "/api/places/p1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"aiSummary":"resumo"`)
	})
}

func TestReviewsHandler_Delete(t *testing.T) {
	withPrincipal := func(c *gin.Context) {
		c.Set(middleware.ContextKeyPrincipal, &model.Principal{ID: "u2"})
		c.Next()
	}

	t.Run("所有者でなければ403", func(t *testing.T) {
		reviews := &fakeReviewUseCase{err: model.ErrForbidden}
		r := gin.New()
		r.DELETE("/api/reviews/:id", withPrincipal, NewReviewsHandler(reviews).Delete)

		rec := doRequest(r, http.MethodDelete, "/api/reviews/r1", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, reviews.principal)
		assert.Equal(t, "u2", reviews.principal.ID)
	})

	t.Run("削除に成功すれば200", func(t *testing.T) {
		r := gin.New()
		r.DELETE("/api/reviews/:id", withPrincipal, NewReviewsHandler(&fakeReviewUseCase{}).Delete)
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodDelete, "/api/reviews/r1", "").Code)
	})
}

func TestReviewsHandler_CreateBinding(t *testing.T) {
	r := gin.New()
	r.POST("/api/reviews", NewReviewsHandler(&fakeReviewUseCase{}).Create)

	rec := doRequest(r, http.MethodPost, "/api/reviews", `{"place_id":"p1","accessibility":9,"infrastructure":3,"value":3,"comment":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeChecker struct{ err error }

func (f fakeChecker) HealthCheck(context.Context) error { return f.err }

func TestHealthHandler(t *testing.T) {
	t.Run("すべて正常なら200", func(t *testing.T) {
		r := gin.New()
		r.GET("/api/health", NewHealthHandler(map[string]HealthChecker{"db": fakeChecker{}}).Health)
		rec := doRequest(r, http.MethodGet, "/api/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("依存先の障害は503", func(t *testing.T) {
		r := gin.New()
		r.GET("/api/health", NewHealthHandler(map[string]HealthChecker{"db": fakeChecker{err: errors.New("down")}}).Health)
		rec := doRequest(r, http.MethodGet, "/api/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "degraded")
	})
}
