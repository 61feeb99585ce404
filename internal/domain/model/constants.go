package model

// 利用者向けの文言（ポルトガル語）
const (
	NoReviewsSummary    = "Nenhuma avaliação ainda para gerar um resumo."
	SummaryErrorMessage = "Erro ao atualizar resumo"
	SummaryUnavailable  = "Não foi possível gerar o resumo das avaliações."
	AnonymousAuthor     = "Anônimo"
)

const (
	// MaxSuggestions 1回の生成で要求する最大件数
	MaxSuggestions = 15
	// SearchRadiusKm プロンプトで指定する検索半径（目安であり強制しない）
	SearchRadiusKm = 25
	// MaxPhotosPerReview 1回の投稿で受け付ける写真の上限
	MaxPhotosPerReview = 6
)

// FallbackCoordinate IP推定もできなかった場合の既定位置（フロリアノポリス）
var FallbackCoordinate = Coordinate{Latitude: -27.5948, Longitude: -48.5482}
