package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/handler"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	accountsvc "github.com/medevel/hospital-api/internal/service/account"
)

type Handler struct {
	service *accountsvc.Service
}

func NewHandler(service *accountsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateAccount)
	r.GET("", h.ListAccounts)
	r.GET("/:id", h.GetAccount)
	r.PUT("/:id", h.UpdateAccount)
	r.DELETE("/:id", h.DeleteAccount)
	r.PUT("/:id/password", h.UpdatePassword)
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req model.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	account, err := h.service.Create(c.Request.Context(), claims.HospitalID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, account)
}

func (h *Handler) GetAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid account ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	account, err := h.service.Get(c.Request.Context(), claims.HospitalID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, account)
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid account ID")
		return
	}

	var req model.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	account, err := h.service.Update(c.Request.Context(), claims.HospitalID, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, account)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid account ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	if err := h.service.Delete(c.Request.Context(), claims.HospitalID, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "account deleted"})
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid account ID")
		return
	}

	var req model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	if err := h.service.UpdatePassword(c.Request.Context(), claims.HospitalID, id, &req); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "password updated"})
}

// ListAccounts serves the staff table with paging, search and sort.
func (h *Handler) ListAccounts(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.Datatable(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
