package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-jobportal-backend/config"
	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/redis"
)

type RouterDeps struct {
	JobUC            domain.JobUsecase
	CandidateUC      domain.CandidateUsecase
	ApplicationUC    domain.ApplicationUsecase
	MatchUC          domain.MatchUsecase
	CompanyProfileUC domain.CompanyProfileUsecase
	Config           *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares. CORS must run first so even rejected requests
	// carry the right headers.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		health := gin.H{"redis": "unavailable"}
		if err := redis.HealthCheck(c.Request.Context()); err == nil {
			health["redis"] = "ok"
		}
		response.Success(c, http.StatusOK, "System operational", health)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))

	// Recruiter-only routes gate on role up front; ownership of the
	// individual job or application is still checked in the usecases.
	recruiterOnly := protected.Group("")
	recruiterOnly.Use(middleware.RequireRole(domain.RoleRecruiter, domain.RoleAdmin))

	{
		NewJobHandler(v1, protected, deps.JobUC)
		NewCandidateHandler(protected, deps.CandidateUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewMatchHandler(recruiterOnly, deps.MatchUC, deps.ApplicationUC)
		NewCompanyProfileHandler(recruiterOnly, deps.CompanyProfileUC)
	}

	return r
}
