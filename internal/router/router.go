package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medevel/hospital-api/internal/handler"
	accounth "github.com/medevel/hospital-api/internal/handler/account"
	appointmenth "github.com/medevel/hospital-api/internal/handler/appointment"
	authh "github.com/medevel/hospital-api/internal/handler/auth"
	billingh "github.com/medevel/hospital-api/internal/handler/billing"
	departmenth "github.com/medevel/hospital-api/internal/handler/department"
	diagnosish "github.com/medevel/hospital-api/internal/handler/diagnosis"
	medicineh "github.com/medevel/hospital-api/internal/handler/medicine"
	patienth "github.com/medevel/hospital-api/internal/handler/patient"
	roleh "github.com/medevel/hospital-api/internal/handler/role"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/pkg/logger"
	"github.com/medevel/hospital-api/pkg/metrics"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        *authh.Handler
	accountH     *accounth.Handler
	roleH        *roleh.Handler
	departmentH  *departmenth.Handler
	patientH     *patienth.Handler
	appointmentH *appointmenth.Handler
	medicineH    *medicineh.Handler
	diagnosisH   *diagnosish.Handler
	billingH     *billingh.Handler
}

func NewRouter(
	log *logger.Logger,
	m *metrics.Metrics,
	auth *middleware.AuthMiddleware,
	authH *authh.Handler,
	accountH *accounth.Handler,
	roleH *roleh.Handler,
	departmentH *departmenth.Handler,
	patientH *patienth.Handler,
	appointmentH *appointmenth.Handler,
	medicineH *medicineh.Handler,
	diagnosisH *diagnosish.Handler,
	billingH *billingh.Handler,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	handler.RegisterTagNames()

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS(),
		middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		middleware.Metrics(m),
	)

	return &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		accountH:     accountH,
		roleH:        roleH,
		departmentH:  departmentH,
		patientH:     patientH,
		appointmentH: appointmentH,
		medicineH:    medicineH,
		diagnosisH:   diagnosisH,
		billingH:     billingH,
	}
}

func (r *Router) Setup() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	r.authH.RegisterRoutes(api.Group("/auth"))

	protected := api.Group("")
	protected.Use(r.auth.RequireAuth())

	// Staff administration is reserved for hospital admins.
	admin := protected.Group("")
	admin.Use(r.auth.RequireRole(model.AdminRoleName))
	r.accountH.RegisterRoutes(admin.Group("/accounts"))
	r.roleH.RegisterRoutes(admin.Group("/roles"))
	r.departmentH.RegisterRoutes(admin.Group("/departments"))

	r.patientH.RegisterRoutes(protected.Group("/patients"))
	r.appointmentH.RegisterRoutes(protected.Group("/appointments"))
	r.appointmentH.RegisterAvailabilityRoutes(protected.Group("/availability"))
	r.medicineH.RegisterRoutes(protected.Group("/medicines"))
	r.diagnosisH.RegisterRoutes(protected.Group("/diagnoses"))
	r.billingH.RegisterRoutes(protected.Group("/billing"))

	// The signed-in doctor's own queue, history and diagnosis entry.
	doctor := protected.Group("/doctor")
	doctor.Use(r.auth.RequireRole(model.DoctorRoleName))
	r.appointmentH.RegisterDoctorRoutes(doctor)
	r.diagnosisH.RegisterDoctorRoutes(doctor)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
