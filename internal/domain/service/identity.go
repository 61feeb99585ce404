package service

import (
	"context"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"

	"github.com/rs/zerolog/log"
)

// IdentityProvider はレビュー投稿者を決定する
type IdentityProvider interface {
	Identify(ctx context.Context) (model.Identity, error)
}

type anonymousIdentityProvider struct{}

// NewAnonymousIdentityProvider は常に匿名の投稿者を返す（デモ用）
func NewAnonymousIdentityProvider() IdentityProvider {
	return anonymousIdentityProvider{}
}

func (anonymousIdentityProvider) Identify(context.Context) (model.Identity, error) {
	return model.Identity{DisplayName: model.AnonymousAuthor, Anonymous: true}, nil
}

type contextIdentityProvider struct {
	profiles repository.AuthRepository
	fallback IdentityProvider
}

// NewContextIdentityProvider はcontext内の検証済み利用者を投稿者とする
// 利用者がいない場合はfallbackに委譲し、fallbackがnilなら ErrUnauthorized
func NewContextIdentityProvider(profiles repository.AuthRepository, fallback IdentityProvider) IdentityProvider {
	return &contextIdentityProvider{profiles: profiles, fallback: fallback}
}

func (p *contextIdentityProvider) Identify(ctx context.Context) (model.Identity, error) {
	principal := model.PrincipalFromContext(ctx)
	if principal == nil {
		if p.fallback == nil {
			return model.Identity{}, model.ErrUnauthorized
		}
		return p.fallback.Identify(ctx)
	}

	identity := model.Identity{UserID: principal.ID, DisplayName: principal.Email}
	if p.profiles == nil {
		return identity, nil
	}
	profile, err := p.profiles.GetProfile(ctx, principal.ID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", principal.ID).Msg("⚠️ プロフィール取得に失敗、メールアドレスを表示名に使用")
		return identity, nil
	}
	switch {
	case profile.Username != "":
		identity.DisplayName = profile.Username
	case profile.FullName != "":
		identity.DisplayName = profile.FullName
	}
	return identity, nil
}
