package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/handler"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	patientsvc "github.com/medevel/hospital-api/internal/service/patient"
)

type Handler struct {
	service *patientsvc.Service
}

func NewHandler(service *patientsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreatePatient)
	r.GET("", h.ListPatients)
	r.GET("/options", h.ListOptions)
	r.GET("/:id", h.GetPatient)
	r.PUT("/:id", h.UpdatePatient)
	r.DELETE("/:id", h.DeletePatient)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	patient, err := h.service.Create(c.Request.Context(), claims.HospitalID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, patient)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid patient ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	patient, err := h.service.Get(c.Request.Context(), claims.HospitalID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, patient)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid patient ID")
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	patient, err := h.service.Update(c.Request.Context(), claims.HospitalID, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, patient)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid patient ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	if err := h.service.Delete(c.Request.Context(), claims.HospitalID, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "patient deleted"})
}

// ListOptions serves the booking-form patient dropdown.
func (h *Handler) ListOptions(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	options, err := h.service.Options(c.Request.Context(), claims.HospitalID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, options)
}

func (h *Handler) ListPatients(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.Datatable(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
