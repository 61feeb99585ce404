package model

import "time"

// Review レビュー。デモ経路ではIDはミリ秒タイムスタンプ、永続化経路ではDBのID
type Review struct {
	ID             string          `json:"id" db:"id"`
	PlaceID        string          `json:"place_id,omitempty" db:"place_id"`
	UserID         string          `json:"user_id,omitempty" db:"user_id"`
	Author         string          `json:"author" db:"-"`
	Accessibility  int             `json:"accessibility" db:"accessibility"`
	Infrastructure int             `json:"infrastructure" db:"infrastructure"`
	Value          int             `json:"value" db:"value"`
	Comment        string          `json:"comment" db:"comment"`
	Photos         []Photo         `json:"photos" db:"-"`
	Profile        *ProfileSummary `json:"profiles,omitempty" db:"-"`
	CreatedAt      *time.Time      `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}

// Clone 写真配列を含めて複製する
func (r Review) Clone() Review {
	cp := r
	cp.Photos = append([]Photo(nil), r.Photos...)
	return cp
}

// ResolveAuthor 表示名を決める（プロフィール > ユーザーID）
func (r *Review) ResolveAuthor() {
	if r.Author != "" {
		return
	}
	if r.Profile != nil {
		if r.Profile.Username != "" {
			r.Author = r.Profile.Username
			return
		}
		if r.Profile.FullName != "" {
			r.Author = r.Profile.FullName
			return
		}
	}
	r.Author = r.UserID
}

// Photo レビュー写真。URLは https か data: URL
type Photo struct {
	ID        string     `json:"id,omitempty" db:"id"`
	ReviewID  string     `json:"review_id,omitempty" db:"review_id"`
	URL       string     `json:"url" db:"url"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// ReviewInput レビュー投稿の入力
type ReviewInput struct {
	Accessibility  int      `json:"accessibility" binding:"required,min=1,max=5"`
	Infrastructure int      `json:"infrastructure" binding:"required,min=1,max=5"`
	Value          int      `json:"value" binding:"required,min=1,max=5"`
	Comment        string   `json:"comment" binding:"required"`
	Photos         []string `json:"photos" binding:"max=6"`
}

// CreateReviewRequest POST /api/reviews
type CreateReviewRequest struct {
	PlaceID string `json:"place_id" binding:"required"`
	ReviewInput
}

// UpdateReviewRequest PUT /api/reviews/:id
type UpdateReviewRequest struct {
	Accessibility  int    `json:"accessibility" binding:"required,min=1,max=5"`
	Infrastructure int    `json:"infrastructure" binding:"required,min=1,max=5"`
	Value          int    `json:"value" binding:"required,min=1,max=5"`
	Comment        string `json:"comment" binding:"required"`
}

// AddPhotosRequest POST /api/reviews/:id/photos
type AddPhotosRequest struct {
	Photos []string `json:"photos" binding:"required,min=1,max=6"`
}

// PreviewReviewRequest デモ経路：クライアント保持中の場所にレビューを楽観的に追加する
type PreviewReviewRequest struct {
	Place  Place       `json:"place" binding:"required"`
	Review ReviewInput `json:"review" binding:"required"`
}

// PreviewReviewResponse 楽観的更新の結果と要約タスクID
type PreviewReviewResponse struct {
	Place         Place  `json:"place"`
	SummaryTaskID string `json:"summary_task_id"`
}

// SummaryTaskStatus 要約タスクの状態
type SummaryTaskStatus struct {
	TaskID    string    `json:"task_id"`
	PlaceID   string    `json:"place_id"`
	State     string    `json:"state"`
	Summary   string    `json:"summary,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	SummaryStatePending = "pending"
	SummaryStateDone    = "done"
	SummaryStateFailed  = "failed"
)
