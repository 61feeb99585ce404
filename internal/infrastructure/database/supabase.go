package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/supabase-community/supabase-go"
)

// SupabaseClient Supabaseクライアントのラッパー
type SupabaseClient struct {
	Client *supabase.Client
	url    string
}

// NewSupabaseClient 新しいSupabaseクライアントを作成
func NewSupabaseClient(url, anonKey string) (*SupabaseClient, error) {
	if url == "" {
		return nil, errors.New("SUPABASE_URL環境変数が設定されていません")
	}
	if anonKey == "" {
		return nil, errors.New("SUPABASE_ANON_KEY環境変数が設定されていません")
	}

	client, err := supabase.NewClient(url, anonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("Supabaseクライアントの初期化に失敗: %w", err)
	}

	return &SupabaseClient{Client: client, url: url}, nil
}

// GetClient Supabaseクライアントを取得
func (sc *SupabaseClient) GetClient() *supabase.Client {
	return sc.Client
}

// HealthCheck 接続のヘルスチェック
func (sc *SupabaseClient) HealthCheck(ctx context.Context) error {
	if sc.Client == nil {
		return errors.New("Supabaseクライアントが初期化されていません")
	}
	// placesテーブルを1件だけ読んで疎通を確認する
	if _, _, err := sc.Client.From("places").Select("id", "", false).Limit(1, "").Execute(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("url", sc.url).Msg("⚠️ Supabaseへの疎通確認に失敗")
		return fmt.Errorf("Supabaseへの疎通確認に失敗: %w", err)
	}
	return nil
}
