package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const searchBatchesCollection = "searchBatches"

// firestoreBatch はFirestoreに保存するバッチ。expireAtにTTLポリシーを設定する
type firestoreBatch struct {
	Seq       int64     `firestore:"seq"`
	Ranked    bool      `firestore:"ranked"`
	Payload   string    `firestore:"payload"`
	CreatedAt time.Time `firestore:"createdAt"`
	ExpireAt  time.Time `firestore:"expireAt"`
}

// FirestoreBatchRepository Firestoreを使用した検索結果バッチのキャッシュリポジトリ
type FirestoreBatchRepository struct {
	client *firestore.Client
	ttl    time.Duration
	clock  func() time.Time
}

// NewFirestoreBatchRepository 新しいFirestoreBatchRepositoryインスタンスを作成
func NewFirestoreBatchRepository(client *firestore.Client, ttl time.Duration) repository.SearchBatchRepository {
	return &FirestoreBatchRepository{client: client, ttl: ttl, clock: time.Now}
}

func (r *FirestoreBatchRepository) Save(ctx context.Context, batch *model.PlaceBatch) error {
	payload, err := json.Marshal(batch.Places)
	if err != nil {
		return fmt.Errorf("バッチのシリアライズに失敗: %w", err)
	}
	doc := firestoreBatch{
		Seq:       batch.Seq,
		Ranked:    batch.Ranked,
		Payload:   string(payload),
		CreatedAt: batch.CreatedAt,
		ExpireAt:  r.clock().Add(r.ttl),
	}
	if _, err := r.client.Collection(searchBatchesCollection).Doc(batch.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("バッチの保存に失敗しました: %w", err)
	}
	log.Ctx(ctx).Debug().Str("batch_id", batch.ID).Dur("ttl", r.ttl).Msg("✅ 検索バッチを保存")
	return nil
}

func (r *FirestoreBatchRepository) Get(ctx context.Context, id string) (*model.PlaceBatch, error) {
	snap, err := r.client.Collection(searchBatchesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("バッチ %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("バッチの取得に失敗しました: %w", err)
	}

	var doc firestoreBatch
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	// TTLによる削除は即時ではないため読み出し時にも期限を確認する
	if !doc.ExpireAt.IsZero() && r.clock().After(doc.ExpireAt) {
		return nil, fmt.Errorf("バッチ %s は期限切れ: %w", id, model.ErrNotFound)
	}
	return decodeBatch(id, doc)
}

func decodeBatch(id string, doc firestoreBatch) (*model.PlaceBatch, error) {
	var places []model.Place
	if err := json.Unmarshal([]byte(doc.Payload), &places); err != nil {
		return nil, fmt.Errorf("バッチのデシリアライズに失敗: %w", err)
	}
	if places == nil {
		places = []model.Place{}
	}
	for i := range places {
		if places[i].Reviews == nil {
			places[i].Reviews = []model.Review{}
		}
		// JSONのnullは無限大の距離を表す
		if doc.Ranked && places[i].Distance == nil {
			inf := model.Kilometers(math.Inf(1))
			places[i].Distance = &inf
		}
	}
	return &model.PlaceBatch{ID: id, Seq: doc.Seq, Ranked: doc.Ranked, Places: places, CreatedAt: doc.CreatedAt}, nil
}
