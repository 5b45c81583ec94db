package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/handler"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	appointmentsvc "github.com/medevel/hospital-api/internal/service/appointment"
	availabilitysvc "github.com/medevel/hospital-api/internal/service/availability"
)

type Handler struct {
	service      *appointmentsvc.Service
	availability *availabilitysvc.Service
}

func NewHandler(service *appointmentsvc.Service, availability *availabilitysvc.Service) *Handler {
	return &Handler{service: service, availability: availability}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateAppointment)
	r.GET("", h.ListAppointments)
	r.GET("/queue", h.TokenQueue)
	r.GET("/available-doctors", h.ListAvailableDoctors)
	r.GET("/:id", h.GetAppointment)
	r.PUT("/:id", h.UpdateAppointment)
	r.DELETE("/:id", h.DeleteAppointment)
	r.PATCH("/:id/present", h.SetPresent)
}

// RegisterDoctorRoutes exposes the signed-in doctor's own queue,
// history and holiday management. Holiday mutations always act on the
// caller's own record.
func (h *Handler) RegisterDoctorRoutes(r *gin.RouterGroup) {
	r.GET("/queue", h.DoctorQueue)
	r.GET("/appointments", h.ListDoctorAppointments)
	r.POST("/unavailable", h.MarkUnavailable)
	r.POST("/available", h.MarkAvailable)
}

// RegisterAvailabilityRoutes exposes read access to a doctor's
// unavailable dates for booking staff.
func (h *Handler) RegisterAvailabilityRoutes(r *gin.RouterGroup) {
	r.GET("/:doctor_id", h.GetAvailability)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	appointment, err := h.service.Create(c.Request.Context(), claims.HospitalID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, appointment)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	appointment, err := h.service.Get(c.Request.Context(), claims.HospitalID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, appointment)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	appointment, err := h.service.Update(c.Request.Context(), claims.HospitalID, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, appointment)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	if err := h.service.Delete(c.Request.Context(), claims.HospitalID, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "appointment deleted"})
}

// ListAvailableDoctors answers the booking form's doctor dropdown for a
// department and date, excluding doctors marked unavailable on that date.
func (h *Handler) ListAvailableDoctors(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Query("department_id"))
	if err != nil {
		handler.BadRequest(c, "invalid department ID")
		return
	}
	date := c.Query("date")
	if date == "" {
		handler.BadRequest(c, "date is required")
		return
	}

	claims := middleware.ClaimsFrom(c)
	doctors, err := h.service.AvailableDoctors(c.Request.Context(), claims.HospitalID, departmentID, date)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, doctors)
}

func (h *Handler) TokenQueue(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.TokenQueue(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) DoctorQueue(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.DoctorQueue(c.Request.Context(), claims.HospitalID, claims.AccountID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) SetPresent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid appointment ID")
		return
	}

	var req struct {
		Present bool `json:"present"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	if err := h.service.SetPresent(c.Request.Context(), claims.HospitalID, id, req.Present); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "attendance updated"})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.Datatable(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListDoctorAppointments(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.DoctorDatatable(c.Request.Context(), claims.HospitalID, claims.AccountID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) MarkUnavailable(c *gin.Context) {
	var req model.AvailabilityDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	record, err := h.availability.MarkUnavailable(c.Request.Context(), claims.HospitalID, claims.AccountID, req.Date)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, record)
}

func (h *Handler) MarkAvailable(c *gin.Context) {
	var req model.AvailabilityDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	record, err := h.availability.MarkAvailable(c.Request.Context(), claims.HospitalID, claims.AccountID, req.Date)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, record)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctor_id"))
	if err != nil {
		handler.BadRequest(c, "invalid doctor ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	record, err := h.availability.Get(c.Request.Context(), claims.HospitalID, doctorID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, record)
}
