package repository

import (
	"context"

	"BoraAli-App/internal/domain/model"
)

// AuthRepository は外部認証サービスとプロフィールを扱う
type AuthRepository interface {
	SignUp(ctx context.Context, req model.SignupRequest) (*model.AuthSession, error)
	Login(ctx context.Context, email, password string) (*model.AuthSession, error)
	Logout(ctx context.Context, accessToken string) error
	// GetUser はアクセストークンから利用者を解決する
	GetUser(ctx context.Context, accessToken string) (*model.Principal, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, profile *model.Profile) error
}
