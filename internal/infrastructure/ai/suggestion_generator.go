package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const precisionNote = `IMPORTANTE: Forneça coordenadas geográficas (latitude e longitude) EXTREMAMENTE PRECISAS, pois elas serão usadas para navegação GPS (Google Maps/Waze).
O endereço deve ser o mais completo possível, incluindo rua, número, bairro, cidade, estado e CEP, se disponível.`

// placeResponseSchema は場所候補配列のJSONスキーマ
var placeResponseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":      {Type: genai.TypeString, Description: "O nome do local."},
			"location":  {Type: genai.TypeString, Description: "A cidade e estado do local, por exemplo: 'Florianópolis, SC'."},
			"address":   {Type: genai.TypeString, Description: "O endereço completo do local."},
			"latitude":  {Type: genai.TypeNumber, Description: "A latitude do local."},
			"longitude": {Type: genai.TypeNumber, Description: "A longitude do local."},
		},
		Required: []string{"name", "location", "address", "latitude", "longitude"},
	},
}

type suggestionGeneratorImpl struct {
	generator TextGenerator
}

// NewSuggestionGenerator は生成AIによる場所候補リポジトリを作成
func NewSuggestionGenerator(generator TextGenerator) repository.PlaceSuggestionRepository {
	return &suggestionGeneratorImpl{generator: generator}
}

func (s *suggestionGeneratorImpl) Suggest(ctx context.Context, category string, hint model.LocationHint) ([]model.PlaceSuggestion, error) {
	var prompt string
	if hint.HasCoordinate() {
		prompt = fmt.Sprintf("Liste até %d locais populares de %q em um raio de %dkm da latitude %v e longitude %v no Brasil.\n%s",
			model.MaxSuggestions, category, model.SearchRadiusKm, hint.Coordinate.Latitude, hint.Coordinate.Longitude, precisionNote)
	} else {
		prompt = fmt.Sprintf("Liste até %d locais populares de %q perto de %q no Brasil, idealmente em um raio de %dkm.\n%s",
			model.MaxSuggestions, category, hint.Text, model.SearchRadiusKm, precisionNote)
	}
	log.Ctx(ctx).Info().Str("category", category).Bool("coordinate", hint.HasCoordinate()).Msg("🔍 場所候補を生成AIに問い合わせ")
	return s.generate(ctx, "suggest", prompt)
}

func (s *suggestionGeneratorImpl) Search(ctx context.Context, query string, hint model.LocationHint) ([]model.PlaceSuggestion, error) {
	var prompt string
	if hint.HasCoordinate() {
		prompt = fmt.Sprintf("Encontre até %d locais que correspondam à busca por %q em um raio de %dkm da latitude %v e longitude %v no Brasil.\n%s",
			model.MaxSuggestions, query, model.SearchRadiusKm, hint.Coordinate.Latitude, hint.Coordinate.Longitude, precisionNote)
	} else {
		prompt = fmt.Sprintf("Encontre até %d locais que correspondam à busca por %q perto de %q no Brasil, idealmente em um raio de %dkm.\n%s",
			model.MaxSuggestions, query, hint.Text, model.SearchRadiusKm, precisionNote)
	}
	log.Ctx(ctx).Info().Str("query", query).Bool("coordinate", hint.HasCoordinate()).Msg("🔍 自由検索を生成AIに問い合わせ")
	return s.generate(ctx, "search", prompt)
}

func (s *suggestionGeneratorImpl) generate(ctx context.Context, kind, prompt string) ([]model.PlaceSuggestion, error) {
	text, err := s.generator.GenerateContent(ctx, kind, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   placeResponseSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: 場所候補の生成に失敗: %v", model.ErrUpstream, err)
	}
	text = cleanJSONResponse(text)
	if text == "" {
		log.Ctx(ctx).Warn().Str("kind", kind).Msg("⚠️ Geminiが空の応答を返却")
		return []model.PlaceSuggestion{}, nil
	}

	var suggestions []model.PlaceSuggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: 場所候補のJSON解析に失敗: %v", model.ErrUpstream, err)
	}
	if suggestions == nil {
		suggestions = []model.PlaceSuggestion{}
	}
	return suggestions, nil
}
