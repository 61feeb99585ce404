package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"BoraAli-App/internal/metrics"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// TextGenerator はプロンプトからテキストを生成する
type TextGenerator interface {
	GenerateContent(ctx context.Context, kind, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// GeminiClient はGemini APIとの通信を担当するクライアント
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient は新しいGeminiClientインスタンスを作成
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY環境変数が設定されていません")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗: %w", err)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

// GenerateContent はGemini APIを呼び出し、応答テキストを返す
// kind はメトリクスとログ用の呼び出し種別
func (g *GeminiClient) GenerateContent(ctx context.Context, kind, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	elapsed := time.Since(start)
	metrics.AIDurationMs.WithLabelValues(kind).Observe(float64(elapsed.Milliseconds()))
	metrics.AIRequestsTotal.WithLabelValues(kind, metrics.Result(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("Gemini API呼び出しに失敗: %w", err)
	}
	log.Ctx(ctx).Debug().Str("kind", kind).Dur("elapsed", elapsed).Msg("🤖 Gemini応答を受信")

	return strings.TrimSpace(resp.Text()), nil
}

// cleanJSONResponse はモデルがコードフェンスで囲んだJSONを取り出す
func cleanJSONResponse(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
