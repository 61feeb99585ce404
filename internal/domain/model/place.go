package model

import "time"

// PlaceSuggestion 生成AIが返す場所候補（未検証の外部入力）
type PlaceSuggestion struct {
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate 候補の座標
func (s PlaceSuggestion) Coordinate() Coordinate {
	return Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Place 画面表示・永続化で共通の場所モデル
type Place struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Location  string      `json:"location" db:"location"`
	Address   string      `json:"address,omitempty" db:"address"`
	Latitude  *float64    `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64    `json:"longitude,omitempty" db:"longitude"`
	Category  string      `json:"category,omitempty" db:"category"`
	CreatedBy string      `json:"created_by,omitempty" db:"created_by"`
	Reviews   []Review    `json:"reviews" db:"-"`
	AISummary string      `json:"aiSummary" db:"-"`
	Distance  *Kilometers `json:"distance,omitempty" db:"-"`
	BatchID   string      `json:"batch_id,omitempty" db:"-"`
	BatchSeq  int64       `json:"batch_seq,omitempty" db:"-"`
	CreatedAt *time.Time  `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty" db:"updated_at"`
}

// Coordinate 座標が無い場合はゼロ値（＝不明）を返す
func (p *Place) Coordinate() Coordinate {
	var c Coordinate
	if p.Latitude != nil {
		c.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		c.Longitude = *p.Longitude
	}
	return c
}

// Clone レビュー配列を含めて複製する
func (p Place) Clone() Place {
	cp := p
	cp.Reviews = make([]Review, len(p.Reviews))
	for i, r := range p.Reviews {
		cp.Reviews[i] = r.Clone()
	}
	return cp
}

// PlaceBatch 1回の検索で得られた結果セット。合成IDはこのバッチ内でのみ一意
type PlaceBatch struct {
	ID        string    `json:"batch_id" firestore:"-"`
	Seq       int64     `json:"batch_seq"`
	Ranked    bool      `json:"ranked"`
	Places    []Place   `json:"places"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePlaceRequest POST /api/places
type CreatePlaceRequest struct {
	Name      string   `json:"name" binding:"required"`
	Location  string   `json:"location" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Category  string   `json:"category"`
}

// SearchRequest GET /api/places/search のクエリ
type SearchRequest struct {
	Category       string
	Query          string
	User           *Coordinate
	LocationString string
}
