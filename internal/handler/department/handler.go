package department

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/handler"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	departmentsvc "github.com/medevel/hospital-api/internal/service/department"
)

type Handler struct {
	service *departmentsvc.Service
}

func NewHandler(service *departmentsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateDepartment)
	r.GET("", h.ListDepartments)
	r.GET("/options", h.ListOptions)
	r.GET("/:id", h.GetDepartment)
	r.PUT("/:id", h.UpdateDepartment)
	r.DELETE("/:id", h.DeleteDepartment)
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	dept, err := h.service.Create(c.Request.Context(), claims.HospitalID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, dept)
}

func (h *Handler) GetDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid department ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	dept, err := h.service.Get(c.Request.Context(), claims.HospitalID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, dept)
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid department ID")
		return
	}

	var req model.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	dept, err := h.service.Update(c.Request.Context(), claims.HospitalID, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, dept)
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid department ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	if err := h.service.Delete(c.Request.Context(), claims.HospitalID, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "department deleted"})
}

// ListOptions serves the booking-form dropdown.
func (h *Handler) ListOptions(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	options, err := h.service.Options(c.Request.Context(), claims.HospitalID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, options)
}

func (h *Handler) ListDepartments(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.Datatable(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
