package ai

import (
	"context"
	"fmt"
	"strings"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
)

const summaryPromptHeader = "Com base nas seguintes avaliações de usuários, crie um resumo conciso e útil de um parágrafo sobre a experiência geral neste local. Destaque os pontos positivos e negativos mais comuns. As avaliações são:\n"

type summaryGeneratorImpl struct {
	generator TextGenerator
}

// NewSummaryGenerator は生成AIによるレビュー要約リポジトリを作成
func NewSummaryGenerator(generator TextGenerator) repository.ReviewSummaryRepository {
	return &summaryGeneratorImpl{generator: generator}
}

// Summarize はレビューのコメントを1段落に要約する
func (s *summaryGeneratorImpl) Summarize(ctx context.Context, reviews []model.Review) (string, error) {
	if len(reviews) == 0 {
		return model.NoReviewsSummary, nil
	}

	var b strings.Builder
	b.WriteString(summaryPromptHeader)
	for i, r := range reviews {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(r.Comment)
	}

	text, err := s.generator.GenerateContent(ctx, "summary", b.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: レビュー要約の生成に失敗: %v", model.ErrUpstream, err)
	}
	if text == "" {
		return model.SummaryUnavailable, nil
	}
	return text, nil
}
