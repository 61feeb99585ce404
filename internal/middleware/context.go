package middleware

// ginのコンテキストに格納するキー
const (
	ContextKeyRequestID   = "request_id"
	ContextKeyPrincipal   = "principal"
	ContextKeyAccessToken = "access_token"
)
