package service

import (
	"sync"

	"BoraAli-App/internal/domain/model"
)

// LocationTracker は位置推定の段階を管理する
// Unresolved → Coarse → Precise の順にしか進まず、遅れて届いた粗い推定は精密な推定を上書きしない
type LocationTracker struct {
	mu     sync.RWMutex
	stage  model.LocationStage
	coord  *model.Coordinate
	source string
}

// NewLocationTracker は未解決状態のトラッカーを作成
func NewLocationTracker() *LocationTracker {
	return &LocationTracker{}
}

// Apply は現在以上の段階の推定のみ反映し、反映したかを返す
func (t *LocationTracker) Apply(stage model.LocationStage, coord model.Coordinate, source string) bool {
	if stage == model.StageUnresolved {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if stage < t.stage {
		return false
	}
	t.stage = stage
	t.coord = &coord
	t.source = source
	return true
}

// Snapshot は現在の推定結果を返す
func (t *LocationTracker) Snapshot() model.ResolvedLocation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := model.ResolvedLocation{Stage: t.stage.String(), Source: t.source}
	if t.coord != nil {
		c := *t.coord
		out.Coordinate = &c
	}
	return out
}

// Stage は現在の段階
func (t *LocationTracker) Stage() model.LocationStage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stage
}
