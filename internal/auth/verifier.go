package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier はアクセストークンを検証して呼び出し元を返す
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*model.Principal, error)
}

// Claims はSupabaseが発行するアクセストークンのペイロード
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWTVerifier はSupabaseのJWTシークレットでトークンをローカル検証する
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier は新しいJWTVerifierを作成
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify は署名と有効期限を検証する
func (v *JWTVerifier) Verify(_ context.Context, token string) (*model.Principal, error) {
	if len(v.secret) == 0 {
		return nil, errors.New("JWTシークレットが設定されていません")
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token claims", model.ErrUnauthorized)
	}
	return &model.Principal{ID: claims.Subject, Email: claims.Email}, nil
}

// Sign はテストや開発用にトークンを発行する
func (v *JWTVerifier) Sign(subject, email string, ttl time.Duration) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: email,
		Role:  "authenticated",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// RemoteVerifier は認証サービスに問い合わせてトークンを検証する
type RemoteVerifier struct {
	repo repository.AuthRepository
}

// NewRemoteVerifier は新しいRemoteVerifierを作成
func NewRemoteVerifier(repo repository.AuthRepository) *RemoteVerifier {
	return &RemoteVerifier{repo: repo}
}

// Verify は認証サービスでトークンを解決する
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*model.Principal, error) {
	principal, err := v.repo.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	return principal, nil
}

// Disabled は認証基盤が構成されていない場合にすべてのトークンを拒否する
type Disabled struct{}

func (Disabled) Verify(context.Context, string) (*model.Principal, error) {
	return nil, fmt.Errorf("%w: 認証が構成されていません", model.ErrUnauthorized)
}
