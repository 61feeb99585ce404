package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// FirestoreClient Firestoreクライアントのラッパー
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient 実行環境に応じた認証でFirestoreクライアントを作成
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_ID環境変数が設定されていません")
	}

	var opts []option.ClientOption
	// Cloud Run環境ではデフォルト認証を使用
	if os.Getenv("K_SERVICE") == "" {
		if credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsFile != "" {
			if _, err := os.Stat(credentialsFile); err == nil {
				log.Info().Str("file", credentialsFile).Msg("📄 認証情報ファイルを使用")
				opts = append(opts, option.WithCredentialsFile(credentialsFile))
			} else {
				log.Warn().Str("file", credentialsFile).Msg("⚠️ 認証情報ファイルが見つからないためデフォルト認証を使用")
			}
		}
	} else {
		log.Info().Msg("☁️ Cloud Run環境: デフォルト認証を使用")
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗: %w", err)
	}
	log.Info().Str("project", projectID).Msg("✅ Firestoreクライアント初期化完了")

	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
