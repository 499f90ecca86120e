package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"go-jobportal-backend/config"
	v1 "go-jobportal-backend/internal/delivery/http/v1"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/repository/postgres"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/database"
	"go-jobportal-backend/pkg/email"
	"go-jobportal-backend/pkg/extract"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/redis"
	"go-jobportal-backend/pkg/storage"
	"go-jobportal-backend/pkg/validation"
)

// @title           Job Portal Backend API
// @version         1.0
// @description     Resume matching, interview scheduling and application pipeline.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job portal backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	companyProfileRepo := postgres.NewCompanyProfileRepository(dbPool)

	// 6. Setup Notifier
	emailService := email.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFromEmail)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - candidate notifications will fail")
	}

	// 7. Setup resume text extraction (optional; scans fall back to profile fields)
	var extractor *extract.PDFExtractor
	if cfg.S3Bucket != "" {
		objectStore, err := storage.NewObjectStore(context.Background(), storage.Config{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			logger.Log.Warn("Object storage unavailable, resume extraction disabled", "error", err)
		} else {
			extractor = extract.NewPDFExtractor(objectStore)
		}
	}

	// 8. Setup validation. Custom rules must land on both the shared
	// instance (usecase struct validation) and gin's binding engine
	// (request payloads).
	validate := validator.New()
	validation.RegisterValidators(validate)
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(engine)
	}

	// 9. Setup UseCases
	jobUC := usecase.NewJobUsecase(jobRepo, companyProfileRepo, validate)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, validate)
	companyProfileUC := usecase.NewCompanyProfileUsecase(companyProfileRepo, validate)
	matchUC := usecase.NewMatchUsecase(applicationRepo, jobRepo, candidateRepo, extractorOrNil(extractor))
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, companyProfileRepo, matchUC, emailService, cfg.MeetingLinkBase)

	// 10. Interview reminder worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	reminderWorker := usecase.NewReminderWorker(applicationRepo, emailService, cfg.ReminderInterval, cfg.ReminderWindow)
	go reminderWorker.Run(workerCtx)

	// 11. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:            jobUC,
		CandidateUC:      candidateUC,
		ApplicationUC:    applicationUC,
		MatchUC:          matchUC,
		CompanyProfileUC: companyProfileUC,
		Config:           cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// extractorOrNil avoids handing a typed nil to the usecase, which would make
// the nil-interface check there useless.
func extractorOrNil(e *extract.PDFExtractor) domain.ResumeTextExtractor {
	if e == nil {
		return nil
	}
	return e
}
