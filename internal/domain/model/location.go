package model

// LocationStage 位置推定の段階。値が大きいほど精度が高い
type LocationStage int

const (
	StageUnresolved LocationStage = iota
	StageCoarse
	StagePrecise
)

func (s LocationStage) String() string {
	switch s {
	case StageCoarse:
		return "coarse"
	case StagePrecise:
		return "precise"
	default:
		return "unresolved"
	}
}

// ResolvedLocation 位置推定の結果
type ResolvedLocation struct {
	Stage      string      `json:"stage"`
	Coordinate *Coordinate `json:"coordinate"`
	Source     string      `json:"source,omitempty"`
}
