package usecase

import (
	"context"
	"errors"
	"fmt"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"

	"github.com/rs/zerolog/log"
)

type AuthUseCase interface {
	SignUp(ctx context.Context, req model.SignupRequest) (*model.AuthSession, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthSession, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, principal *model.Principal) (*model.MeResponse, error)
}

// authUseCaseImpl はAuthUseCaseの実装
type authUseCaseImpl struct {
	auth repository.AuthRepository
}

// NewAuthUseCase は新しいAuthUseCaseインスタンスを作成
func NewAuthUseCase(auth repository.AuthRepository) AuthUseCase {
	return &authUseCaseImpl{auth: auth}
}

func (u *authUseCaseImpl) SignUp(ctx context.Context, req model.SignupRequest) (*model.AuthSession, error) {
	if req.Email == "" || req.Password == "" {
		return nil, model.NewValidationError("email", "Email e senha são obrigatórios")
	}
	session, err := u.auth.SignUp(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("アカウント作成に失敗: %w", err)
	}

	if req.Username != "" || req.FullName != "" {
		profile := &model.Profile{ID: session.User.ID, Username: req.Username, FullName: req.FullName}
		// プロフィール更新の失敗はサインアップを妨げない
		if err := u.auth.UpdateProfile(ctx, profile); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("user_id", session.User.ID).Msg("❌ プロフィールの更新に失敗")
		}
	}
	return session, nil
}

func (u *authUseCaseImpl) Login(ctx context.Context, req model.LoginRequest) (*model.AuthSession, error) {
	session, err := u.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("ログインに失敗: %w", err)
	}
	return session, nil
}

func (u *authUseCaseImpl) Logout(ctx context.Context, accessToken string) error {
	if err := u.auth.Logout(ctx, accessToken); err != nil {
		return fmt.Errorf("ログアウトに失敗: %w", err)
	}
	return nil
}

func (u *authUseCaseImpl) Me(ctx context.Context, principal *model.Principal) (*model.MeResponse, error) {
	if principal == nil {
		return nil, model.ErrUnauthorized
	}
	profile, err := u.auth.GetProfile(ctx, principal.ID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("プロフィールの取得に失敗: %w", err)
	}
	return &model.MeResponse{User: *principal, Profile: profile}, nil
}
