package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func newPlaceUseCaseForTest(places *fakePlaces, reviews *fakeReviews, summarizer *fakeSummarizer) (PlaceUseCase, *service.SummaryWorker) {
	worker := service.NewSummaryWorker(summarizer, service.SummaryWorkerConfig{Workers: 1, QueueSize: 4})
	refresher := NewSummaryRefresher(reviews, worker, time.Minute)
	aggregator := service.NewReviewAggregator(service.NewAnonymousIdentityProvider(), worker)
	return NewPlaceUseCase(places, reviews, summarizer, refresher, aggregator, worker), worker
}

func TestPlaceUseCase_List(t *testing.T) {
	places := &fakePlaces{places: []model.Place{
		{ID: "a", Name: "Centro", Latitude: ptr(-27.5969), Longitude: ptr(-48.5495)},
		{ID: "b", Name: "Joinville", Latitude: ptr(-26.3045), Longitude: ptr(-48.8487)},
		{ID: "c", Name: "Sem coordenada"},
	}}
	uc, _ := newPlaceUseCaseForTest(places, newFakeReviews(), &fakeSummarizer{})

	t.Run("フィルタなしでは全件を返す", func(t *testing.T) {
		got, err := uc.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("半径内の場所だけを距離付きで返す", func(t *testing.T) {
		got, err := uc.List(context.Background(), &NearbyFilter{
			Center:   model.Coordinate{Latitude: -27.5948, Longitude: -48.5482},
			RadiusKm: 25,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
		require.NotNil(t, got[0].Distance)
		assert.Less(t, got[0].Distance.Float64(), 1.0)
	})
}

func TestPlaceUseCase_GetPlace(t *testing.T) {
	ctx := context.Background()
	places := &fakePlaces{places: []model.Place{{ID: "p1", Name: "Praia Mole"}, {ID: "p2", Name: "Vazio"}}}

	t.Run("レビューと要約を付けて返し、同じ集合では要約を再利用する", func(t *testing.T) {
		reviews := newFakeReviews(
			model.Review{ID: "r1", PlaceID: "p1", Comment: "bom"},
			model.Review{ID: "r2", PlaceID: "p1", Comment: "ótimo"},
		)
		summarizer := &fakeSummarizer{summary: "resumo"}
		uc, _ := newPlaceUseCaseForTest(places, reviews, summarizer)

		got, err := uc.GetPlace(ctx, "p1")
		require.NoError(t, err)
		assert.Len(t, got.Reviews, 2)
		assert.Equal(t, "r2", got.Reviews[0].ID)
		assert.Equal(t, "resumo (2)", got.AISummary)

		_, err = uc.GetPlace(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 1, summarizer.Calls())
	})

	t.Run("レビューがなければ既定の要約でAIを呼ばない", func(t *testing.T) {
		summarizer := &fakeSummarizer{summary: "resumo"}
		uc, _ := newPlaceUseCaseForTest(places, newFakeReviews(), summarizer)

		got, err := uc.GetPlace(ctx, "p2")
		require.NoError(t, err)
		assert.Empty(t, got.Reviews)
		assert.Equal(t, model.NoReviewsSummary, got.AISummary)
		assert.Zero(t, summarizer.Calls())
	})

	t.Run("要約の失敗は既定の文言に置き換える", func(t *testing.T) {
		reviews := newFakeReviews(model.Review{ID: "r1", PlaceID: "p1", Comment: "bom"})
		uc, _ := newPlaceUseCaseForTest(places, reviews, &fakeSummarizer{err: errors.New("quota")})

		got, err := uc.GetPlace(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, model.NoReviewsSummary, got.AISummary)
	})

	t.Run("存在しない場所はNotFound", func(t *testing.T) {
		uc, _ := newPlaceUseCaseForTest(places, newFakeReviews(), &fakeSummarizer{})
		_, err := uc.GetPlace(ctx, "nope")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestPlaceUseCase_Create(t *testing.T) {
	uc, _ := newPlaceUseCaseForTest(&fakePlaces{}, newFakeReviews(), &fakeSummarizer{})

	t.Run("作成者を記録する", func(t *testing.T) {
		got, err := uc.Create(context.Background(), &model.Principal{ID: "u1"}, model.CreatePlaceRequest{Name: "Mercado", Location: "Florianópolis, SC"})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "u1", got.CreatedBy)
	})

	t.Run("名前と所在地は必須", func(t *testing.T) {
		_, err := uc.Create(context.Background(), &model.Principal{ID: "u1"}, model.CreatePlaceRequest{Name: "Mercado"})
		assert.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestPlaceUseCase_PreviewReview(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "resumo"}
	uc, worker := newPlaceUseCaseForTest(&fakePlaces{}, newFakeReviews(), summarizer)
	worker.Start(context.Background())
	defer worker.Stop()

	place := model.Place{ID: "Praia Mole-0", Name: "Praia Mole", Reviews: []model.Review{}}
	input := model.ReviewInput{Accessibility: 5, Infrastructure: 4, Value: 3, Comment: "Ótimo"}

	t.Run("楽観的に追加しタスクの完了を問い合わせられる", func(t *testing.T) {
		res, err := uc.PreviewReview(context.Background(), place.ID, model.PreviewReviewRequest{Place: place, Review: input})
		require.NoError(t, err)
		require.Len(t, res.Place.Reviews, 1)
		assert.Equal(t, model.AnonymousAuthor, res.Place.Reviews[0].Author)
		assert.Empty(t, place.Reviews)

		require.Eventually(t, func() bool {
			status, err := uc.SummaryStatus(context.Background(), res.SummaryTaskID)
			return err == nil && status.State == model.SummaryStateDone
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("URLの場所IDと一致しなければバリデーションエラー", func(t *testing.T) {
		_, err := uc.PreviewReview(context.Background(), "outro", model.PreviewReviewRequest{Place: place, Review: input})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("未知のタスクはNotFound", func(t *testing.T) {
		_, err := uc.SummaryStatus(context.Background(), "missing")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
