package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/infrastructure/database"

	"github.com/supabase-community/gotrue-go/types"
)

type SupabaseAuthRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseAuthRepository(client *database.SupabaseClient) repository.AuthRepository {
	return &SupabaseAuthRepository{
		client: client,
	}
}

type profileUpdateRow struct {
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

func (r *SupabaseAuthRepository) SignUp(ctx context.Context, req model.SignupRequest) (*model.AuthSession, error) {
	resp, err := r.client.GetClient().Auth.Signup(types.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return &model.AuthSession{
		User:         model.Principal{ID: resp.User.ID.String(), Email: resp.User.Email},
		AccessToken:  resp.Session.AccessToken,
		RefreshToken: resp.Session.RefreshToken,
		ExpiresIn:    resp.Session.ExpiresIn,
	}, nil
}

func (r *SupabaseAuthRepository) Login(ctx context.Context, email, password string) (*model.AuthSession, error) {
	resp, err := r.client.GetClient().Auth.Token(types.TokenRequest{
		GrantType: "password",
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	return &model.AuthSession{
		User:         model.Principal{ID: resp.User.ID.String(), Email: resp.User.Email},
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (r *SupabaseAuthRepository) Logout(ctx context.Context, accessToken string) error {
	if err := r.client.GetClient().Auth.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("ログアウト失敗: %w", err)
	}
	return nil
}

func (r *SupabaseAuthRepository) GetUser(ctx context.Context, accessToken string) (*model.Principal, error) {
	user, err := r.client.GetClient().Auth.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, fmt.Errorf("利用者の取得失敗: %w", err)
	}
	return &model.Principal{ID: user.ID.String(), Email: user.Email}, nil
}

func (r *SupabaseAuthRepository) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	data, _, err := r.client.GetClient().From("profiles").Select("*", "", false).Eq("id", userID).Execute()
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得失敗: %w", err)
	}
	var profiles []model.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("プロフィールのJSONアンマーシャル失敗: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("プロフィール %s: %w", userID, model.ErrNotFound)
	}
	return &profiles[0], nil
}

func (r *SupabaseAuthRepository) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	row := profileUpdateRow{Username: profile.Username, FullName: profile.FullName}
	if _, _, err := r.client.GetClient().From("profiles").Update(row, "minimal", "").Eq("id", profile.ID).Execute(); err != nil {
		return fmt.Errorf("プロフィールの更新失敗: %w", err)
	}
	return nil
}
