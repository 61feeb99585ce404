package handler

import (
	"net/http"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/middleware"
	"BoraAli-App/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler は認証に関するHTTPハンドラー
type AuthHandler struct {
	auth usecase.AuthUseCase
}

// NewAuthHandler は新しいAuthHandlerインスタンスを作成
func NewAuthHandler(auth usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp POST /api/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Erro ao criar conta")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Erro ao fazer login")
		return
	}
	c.JSON(http.StatusOK, session)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.AccessTokenFromContext(c)); err != nil {
		respondError(c, err, "Erro ao fazer logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout realizado com sucesso"})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	me, err := h.auth.Me(c.Request.Context(), middleware.PrincipalFromContext(c))
	if err != nil {
		respondError(c, err, "Erro ao buscar usuário")
		return
	}
	c.JSON(http.StatusOK, me)
}
