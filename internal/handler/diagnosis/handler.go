package diagnosis

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/handler"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	diagnosissvc "github.com/medevel/hospital-api/internal/service/diagnosis"
)

type Handler struct {
	service *diagnosissvc.Service
}

func NewHandler(service *diagnosissvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListDiagnoses)
	r.GET("/:id", h.GetDiagnosis)
	r.GET("/appointment/:appointment_id", h.GetByAppointment)
}

// RegisterDoctorRoutes wires the routes only the treating doctor may call.
func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	r.POST("/diagnoses", h.CreateDiagnosis)
	r.GET("/diagnoses", h.ListDoctorDiagnoses)
}

func (h *Handler) CreateDiagnosis(c *gin.Context) {
	var req model.CreateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	diagnosis, err := h.service.Create(c.Request.Context(), claims.HospitalID, claims.AccountID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, diagnosis)
}

func (h *Handler) GetDiagnosis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid diagnosis ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	diagnosis, err := h.service.Get(c.Request.Context(), claims.HospitalID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, diagnosis)
}

func (h *Handler) GetByAppointment(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("appointment_id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	diagnosis, err := h.service.GetByAppointment(c.Request.Context(), claims.HospitalID, appointmentID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, diagnosis)
}

func (h *Handler) ListDiagnoses(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.Datatable(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListDoctorDiagnoses(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.DoctorDatatable(c.Request.Context(), claims.HospitalID, claims.AccountID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
