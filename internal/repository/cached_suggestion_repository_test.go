package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSuggester struct {
	calls int
	out   []model.PlaceSuggestion
	err   error
}

func (c *countingSuggester) Suggest(context.Context, string, model.LocationHint) ([]model.PlaceSuggestion, error) {
	c.calls++
	return c.out, c.err
}

func (c *countingSuggester) Search(context.Context, string, model.LocationHint) ([]model.PlaceSuggestion, error) {
	c.calls++
	return c.out, c.err
}

func TestCachedSuggestionRepository(t *testing.T) {
	ctx := context.Background()
	hint := model.LocationHint{Coordinate: &model.Coordinate{Latitude: -27.59481, Longitude: -48.54822}}

	t.Run("2回目はキャッシュから返す", func(t *testing.T) {
		inner := &countingSuggester{out: []model.PlaceSuggestion{{Name: "Lagoa"}}}
		repo := NewCachedSuggestionRepository(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

		first, err := repo.Suggest(ctx, "Praias", hint)
		require.NoError(t, err)
		nearby := model.LocationHint{Coordinate: &model.Coordinate{Latitude: -27.59479, Longitude: -48.54818}}
		second, err := repo.Suggest(ctx, " praias ", nearby)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("種別が違えば別のキー", func(t *testing.T) {
		inner := &countingSuggester{out: []model.PlaceSuggestion{{Name: "Lagoa"}}}
		repo := NewCachedSuggestionRepository(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
		_, _ = repo.Suggest(ctx, "x", hint)
		_, _ = repo.Search(ctx, "x", hint)
		assert.Equal(t, 2, inner.calls)
	})

	t.Run("空の結果とエラーはキャッシュしない", func(t *testing.T) {
		inner := &countingSuggester{out: []model.PlaceSuggestion{}}
		repo := NewCachedSuggestionRepository(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
		_, _ = repo.Suggest(ctx, "x", hint)
		_, _ = repo.Suggest(ctx, "x", hint)
		assert.Equal(t, 2, inner.calls)

		inner.err = errors.New("down")
		_, err := repo.Suggest(ctx, "y", hint)
		assert.Error(t, err)
	})
}

func TestSuggestionCacheKey(t *testing.T) {
	assert.Equal(t, "suggestions:suggest:praias:-27.595,-48.548",
		suggestionCacheKey("suggest", "Praias", model.LocationHint{Coordinate: &model.Coordinate{Latitude: -27.5948, Longitude: -48.5482}}))
	assert.Equal(t, "suggestions:search:pizza:@centro",
		suggestionCacheKey("search", "Pizza", model.LocationHint{Text: " Centro "}))
}
