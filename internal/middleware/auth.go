package middleware

import (
	"net/http"
	"strings"

	"BoraAli-App/internal/auth"
	"BoraAli-App/internal/domain/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Authenticate はBearerトークンを必須とし、検証済みの利用者をcontextに格納する
func Authenticate(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token não fornecido"})
			return
		}
		principal, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("🔒 トークン検証に失敗")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			return
		}
		setPrincipal(c, principal, token)
		c.Next()
	}
}

// OptionalAuth はトークンがあれば検証し、無い・不正な場合も匿名として続行する
func OptionalAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if principal, err := verifier.Verify(c.Request.Context(), token); err == nil {
				setPrincipal(c, principal, token)
			}
		}
		c.Next()
	}
}

// PrincipalFromContext は検証済みの利用者を取り出す。未認証ならnil
func PrincipalFromContext(c *gin.Context) *model.Principal {
	if v, ok := c.Get(ContextKeyPrincipal); ok {
		if p, ok := v.(*model.Principal); ok {
			return p
		}
	}
	return nil
}

// AccessTokenFromContext は認証に使われたトークンを取り出す
func AccessTokenFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyAccessToken)
}

func setPrincipal(c *gin.Context, p *model.Principal, token string) {
	c.Set(ContextKeyPrincipal, p)
	c.Set(ContextKeyAccessToken, token)
	ctx := model.WithPrincipal(c.Request.Context(), p)
	l := zerolog.Ctx(ctx).With().Str("user_id", p.ID).Logger()
	c.Request = c.Request.WithContext(l.WithContext(ctx))
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
