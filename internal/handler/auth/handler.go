package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/medevel/hospital-api/internal/handler"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	authsvc "github.com/medevel/hospital-api/internal/service/auth"
)

type Handler struct {
	service *authsvc.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *authsvc.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.RegisterHospital)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/forgot-password", h.ForgotPassword)
	r.POST("/reset-password", h.ResetPassword)
	r.POST("/logout", h.auth.RequireAuth(), h.Logout)
}

// RegisterHospital provisions a hospital with its first admin account.
func (h *Handler) RegisterHospital(c *gin.Context) {
	var req model.RegisterHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	account, err := h.service.RegisterHospital(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, account)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	pair, account, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"tokens": pair, "account": account})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, pair)
}

func (h *Handler) Logout(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if err := h.service.Logout(c.Request.Context(), claims.AccountID); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "logged out"})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "otp sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "password updated"})
}
