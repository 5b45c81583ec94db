package medicine

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/handler"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	medicinesvc "github.com/medevel/hospital-api/internal/service/medicine"
)

type Handler struct {
	service *medicinesvc.Service
}

func NewHandler(service *medicinesvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateMedicine)
	r.GET("", h.ListMedicines)
	r.GET("/in-stock", h.ListInStock)
	r.GET("/:id", h.GetMedicine)
	r.PUT("/:id", h.UpdateMedicine)
	r.DELETE("/:id", h.DeleteMedicine)
}

func (h *Handler) CreateMedicine(c *gin.Context) {
	var req model.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	medicine, err := h.service.Create(c.Request.Context(), claims.HospitalID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, medicine)
}

func (h *Handler) GetMedicine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid medicine ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	medicine, err := h.service.Get(c.Request.Context(), claims.HospitalID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, medicine)
}

func (h *Handler) UpdateMedicine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid medicine ID")
		return
	}

	var req model.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	medicine, err := h.service.Update(c.Request.Context(), claims.HospitalID, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, medicine)
}

func (h *Handler) DeleteMedicine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid medicine ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	if err := h.service.Delete(c.Request.Context(), claims.HospitalID, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "medicine deleted"})
}

// ListInStock serves the prescription form's medicine picker.
func (h *Handler) ListInStock(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	medicines, err := h.service.InStock(c.Request.Context(), claims.HospitalID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, medicines)
}

func (h *Handler) ListMedicines(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.Datatable(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
