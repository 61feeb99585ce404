package model

import "context"

type principalKey struct{}

// WithPrincipal 検証済みの呼び出し元をcontextに格納する
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext 未認証の場合はnil
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}

// Principal 検証済みの呼び出し元
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Identity レビュー投稿者の身元。匿名か検証済みのどちらか
type Identity struct {
	UserID      string
	DisplayName string
	Anonymous   bool
}

// Profile profiles テーブル
type Profile struct {
	ID        string `json:"id" db:"id"`
	Username  string `json:"username,omitempty" db:"username"`
	FullName  string `json:"full_name,omitempty" db:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty" db:"avatar_url"`
}

// ProfileSummary レビューに結合されるプロフィールの一部
type ProfileSummary struct {
	Username  string `json:"username,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SignupRequest POST /api/auth/signup
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// LoginRequest POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthSession 認証サービスから返るセッション
type AuthSession struct {
	User         Principal `json:"user"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
}

// MeResponse GET /api/auth/me
type MeResponse struct {
	User    Principal `json:"user"`
	Profile *Profile  `json:"profile"`
}
