package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medevel/hospital-api/internal/config"
	"github.com/medevel/hospital-api/internal/email"
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
	"github.com/medevel/hospital-api/internal/repository/postgres"
	"github.com/medevel/hospital-api/internal/router"
	accountsvc "github.com/medevel/hospital-api/internal/service/account"
	appointmentsvc "github.com/medevel/hospital-api/internal/service/appointment"
	authsvc "github.com/medevel/hospital-api/internal/service/auth"
	availabilitysvc "github.com/medevel/hospital-api/internal/service/availability"
	billingsvc "github.com/medevel/hospital-api/internal/service/billing"
	departmentsvc "github.com/medevel/hospital-api/internal/service/department"
	diagnosissvc "github.com/medevel/hospital-api/internal/service/diagnosis"
	medicinesvc "github.com/medevel/hospital-api/internal/service/medicine"
	patientsvc "github.com/medevel/hospital-api/internal/service/patient"
	rolesvc "github.com/medevel/hospital-api/internal/service/role"
	"github.com/medevel/hospital-api/pkg/auth"
	authredis "github.com/medevel/hospital-api/pkg/auth/redis"
	"github.com/medevel/hospital-api/pkg/logger"
	"github.com/medevel/hospital-api/pkg/metrics"
	"github.com/medevel/hospital-api/pkg/security"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load config")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	tokens := auth.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshExpiryHours)*time.Hour,
		authredis.NewStore(redisClient),
	)
	hasher := security.NewBcryptHasher(0)
	mailer := email.NewSMTPService(cfg.SMTP)
	m := metrics.NewMetrics("hospital_api")

	hospitalRepo := postgres.NewHospitalRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	medicineRepo := postgres.NewMedicineRepository(db)
	diagnosisRepo := postgres.NewDiagnosisRepository(db)
	billRepo := postgres.NewBillRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	otpRepo := postgres.NewOTPRepository(db)

	authService := authsvc.NewService(hospitalRepo, roleRepo, departmentRepo, accountRepo, otpRepo, hasher, tokens, mailer, cfg.OTP.TTL())
	accountService := accountsvc.NewService(accountRepo, roleRepo, departmentRepo, hasher)
	roleService := rolesvc.NewService(roleRepo)
	departmentService := departmentsvc.NewService(departmentRepo)
	patientService := patientsvc.NewService(patientRepo)
	appointmentService := appointmentsvc.NewService(appointmentRepo, accountRepo, availabilityRepo, cfg.Appointments.DailyCapacity, m)
	availabilityService := availabilitysvc.NewService(availabilityRepo, accountRepo)
	medicineService := medicinesvc.NewService(medicineRepo)
	diagnosisService := diagnosissvc.NewService(diagnosisRepo, appointmentRepo, medicineRepo)
	billingService := billingsvc.NewService(billRepo, transactionRepo, diagnosisRepo, appointmentRepo, departmentRepo, medicineRepo, patientRepo, hospitalRepo, mailer, log, m)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := router.NewRouter(
		log,
		m,
		authMiddleware,
		authh.NewHandler(authService, authMiddleware),
		accounth.NewHandler(accountService),
		roleh.NewHandler(roleService),
		departmenth.NewHandler(departmentService),
		patienth.NewHandler(patientService),
		appointmenth.NewHandler(appointmentService, availabilityService),
		medicineh.NewHandler(medicineService),
		diagnosish.NewHandler(diagnosisService),
		billingh.NewHandler(billingService),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.WithFields(map[string]interface{}{"addr": srv.Addr}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "forced shutdown")
	}
	log.Info("server stopped")
}
