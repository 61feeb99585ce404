package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/metrics"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// ErrSummaryQueueFull は要約キューが満杯で受け付けられなかったことを示す
var ErrSummaryQueueFull = errors.New("summary queue is full")

// SummaryResult は要約タスクの結果
type SummaryResult struct {
	TaskID  string
	PlaceID string
	Summary string
	Err     error
}

type summaryJob struct {
	taskID  string
	placeID string
	reviews []model.Review
	result  chan SummaryResult
}

// SummaryWorkerConfig はワーカープールの設定
type SummaryWorkerConfig struct {
	Workers     int
	QueueSize   int
	TaskTimeout time.Duration
	// Retention はタスク状態を問い合わせ可能にしておく期間
	Retention time.Duration
}

// SummaryWorker はレビュー要約を上限付きの並行数でバックグラウンド生成する
type SummaryWorker struct {
	summarizer repository.ReviewSummaryRepository
	cfg        SummaryWorkerConfig
	queue      chan *summaryJob
	tasks      *cache.Cache
	clock      func() time.Time

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSummaryWorker は新しいSummaryWorkerを作成
func NewSummaryWorker(summarizer repository.ReviewSummaryRepository, cfg SummaryWorkerConfig) *SummaryWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 30 * time.Second
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * time.Minute
	}
	return &SummaryWorker{
		summarizer: summarizer,
		cfg:        cfg,
		queue:      make(chan *summaryJob, cfg.QueueSize),
		tasks:      cache.New(cfg.Retention, cfg.Retention/2),
		clock:      time.Now,
	}
}

// Start はワーカーを起動する。ctxがキャンセルされるかStopで終了する
func (w *SummaryWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	ctx, w.cancel = context.WithCancel(ctx)

	log.Info().Int("workers", w.cfg.Workers).Int("queue", w.cfg.QueueSize).Msg("🚀 要約ワーカー起動")
	for i := 0; i < w.cfg.Workers; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.run(ctx)
		}()
	}
}

// Stop はワーカーを停止し、実行中のタスクの完了を待つ
func (w *SummaryWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *SummaryWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.queue:
			metrics.SummaryQueueDepth.Set(float64(len(w.queue)))
			w.process(ctx, job)
		}
	}
}

func (w *SummaryWorker) process(ctx context.Context, job *summaryJob) {
	taskCtx, cancel := context.WithTimeout(ctx, w.cfg.TaskTimeout)
	defer cancel()

	summary, err := w.summarizer.Summarize(taskCtx, job.reviews)
	if err != nil {
		log.Error().Err(err).Str("task_id", job.taskID).Str("place_id", job.placeID).Msg("❌ レビュー要約に失敗")
		w.finish(job, model.SummaryErrorMessage, fmt.Errorf("レビュー要約に失敗: %w", err))
		return
	}
	log.Debug().Str("task_id", job.taskID).Int("reviews", len(job.reviews)).Msg("✅ レビュー要約完了")
	w.finish(job, summary, nil)
}

func (w *SummaryWorker) finish(job *summaryJob, summary string, err error) {
	state := model.SummaryStateDone
	if err != nil {
		state = model.SummaryStateFailed
	}
	metrics.SummaryTasksTotal.WithLabelValues(state).Inc()
	w.tasks.SetDefault(job.taskID, &model.SummaryTaskStatus{
		TaskID:    job.taskID,
		PlaceID:   job.placeID,
		State:     state,
		Summary:   summary,
		UpdatedAt: w.clock(),
	})
	job.result <- SummaryResult{TaskID: job.taskID, PlaceID: job.placeID, Summary: summary, Err: err}
	close(job.result)
}

// Enqueue は要約タスクを登録する。リクエスト経路をブロックしないため、
// キューが満杯の場合はタスクを即座に失敗させる
func (w *SummaryWorker) Enqueue(placeID string, reviews []model.Review) (string, <-chan SummaryResult) {
	job := &summaryJob{
		taskID:  uuid.NewString(),
		placeID: placeID,
		reviews: cloneReviews(reviews),
		result:  make(chan SummaryResult, 1),
	}
	w.tasks.SetDefault(job.taskID, &model.SummaryTaskStatus{
		TaskID:    job.taskID,
		PlaceID:   placeID,
		State:     model.SummaryStatePending,
		UpdatedAt: w.clock(),
	})

	select {
	case w.queue <- job:
		metrics.SummaryQueueDepth.Set(float64(len(w.queue)))
	default:
		log.Warn().Str("task_id", job.taskID).Msg("⚠️ 要約キューが満杯のためタスクを破棄")
		metrics.SummaryTasksTotal.WithLabelValues("rejected").Inc()
		w.finish(job, model.SummaryErrorMessage, ErrSummaryQueueFull)
	}
	return job.taskID, job.result
}

// Status はタスクの状態を返す
func (w *SummaryWorker) Status(taskID string) (*model.SummaryTaskStatus, error) {
	v, ok := w.tasks.Get(taskID)
	if !ok {
		return nil, fmt.Errorf("要約タスク %s: %w", taskID, model.ErrNotFound)
	}
	status := *v.(*model.SummaryTaskStatus)
	return &status, nil
}

func cloneReviews(reviews []model.Review) []model.Review {
	out := make([]model.Review, len(reviews))
	for i, r := range reviews {
		out[i] = r.Clone()
	}
	return out
}
