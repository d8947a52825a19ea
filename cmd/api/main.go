package main

import (
	"context"
	"os"

	appconfig "talentgate/internal/config"
	"talentgate/internal/domain/sqlite"
	"talentgate/internal/domain/sqlite/repository"
	"talentgate/internal/http/handler"
	appmiddleware "talentgate/internal/http/middleware"
	"talentgate/internal/infrastructure/aws/storage"
	"talentgate/internal/service"
	"talentgate/internal/utils"
	"talentgate/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/talentgate/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		if err := godotenv.Load(); err != nil {
			log.Warnf("no .env file loaded: %v", err)
		}
	}

	cfg := appconfig.LoadAppConfig()

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		panic(err)
	}

	// Init S3 client
	s3Client, err := storage.NewStorageClient()
	if err != nil {
		panic(err)
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret)

	// Getting repos
	companyRepo := repository.NewCompanyRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	superAdminRepo := repository.NewSuperAdminRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	logRepo := repository.NewActivityLogRepository(db)

	// Getting services
	activityService := service.NewActivityService(logRepo)
	authService := service.NewAuthService(companyRepo, adminRepo, superAdminRepo, tokens, activityService, validate)
	jobService := service.NewJobService(jobRepo, companyRepo, activityService, validate)
	appService := service.NewApplicationService(appRepo, jobRepo, s3Client, activityService, validate)
	crmService := service.NewCRMService(noteRepo, appRepo, logRepo, activityService, validate)
	searchService := service.NewSearchService(appRepo)
	portalService := service.NewPortalService(appRepo, validate)
	superAdminService := service.NewSuperAdminService(companyRepo, adminRepo, jobRepo, appRepo, validate)

	// Getting handlers
	authRoutes := handler.NewAuthDefault(authService)
	jobRoutes := handler.NewJobDefault(jobService)
	appRoutes := handler.NewApplicationDefault(appService)
	crmRoutes := handler.NewCRMDefault(crmService)
	candidateRoutes := handler.NewCandidateDefault(searchService, portalService)
	activityRoutes := handler.NewActivityDefault(activityService)
	superAdminRoutes := handler.NewSuperAdminDefault(superAdminService, activityService)

	authCfg := &appmiddleware.AuthMiddlewareConfig{
		AdminRepo:      adminRepo,
		SuperAdminRepo: superAdminRepo,
		Tokens:         tokens,
	}
	requireAdmin := appmiddleware.RequireAdmin(authCfg)
	requireSuperAdmin := appmiddleware.RequireSuperAdmin(authCfg)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("25M"))

	// Auth
	e.POST("/api/auth/register", authRoutes.Register)
	e.POST("/api/auth/login", authRoutes.Login)
	e.POST("/api/auth/superadmin/login", authRoutes.SuperAdminLogin)
	e.GET("/api/auth/me", authRoutes.GetMe, requireAdmin)

	// Public career pages and application form
	e.GET("/api/public/companies/:companyId/jobs", jobRoutes.GetPublicJobs)
	e.GET("/api/public/jobs/:id", jobRoutes.GetPublicJob)
	e.POST("/api/public/jobs/:jobId/apply", appRoutes.Submit)

	// Candidate portal
	e.POST("/api/public/applications/status", candidateRoutes.CheckStatus)
	e.POST("/api/public/applications/mine", candidateRoutes.MyApplications)

	// Jobs (admin)
	admin := e.Group("/api", requireAdmin)
	admin.GET("/jobs", jobRoutes.GetJobs)
	admin.GET("/jobs/:id", jobRoutes.GetJob)
	admin.POST("/jobs", jobRoutes.CreateJob)
	admin.PATCH("/jobs/:id", jobRoutes.UpdateJob)
	admin.DELETE("/jobs/:id", jobRoutes.DeleteJob)
	admin.POST("/jobs/:jobId/ai-shortlist", appRoutes.AIShortlist)

	// Applications
	admin.GET("/applications", appRoutes.GetApplications)
	admin.GET("/applications/:id", appRoutes.GetApplication)
	admin.PATCH("/applications/:id/status", appRoutes.UpdateStatus)
	admin.POST("/applications/:id/cv-view", appRoutes.TrackCVView)
	admin.POST("/applications/:id/reanalyze", appRoutes.Reanalyze)
	admin.DELETE("/applications/:id", appRoutes.DeleteApplication)
	admin.POST("/applications/bulk-delete", appRoutes.BulkDelete)
	admin.POST("/applications/manual", appRoutes.AddManualCandidate)
	admin.POST("/upload/cv", appRoutes.UploadCV)
	admin.POST("/upload/portfolio", appRoutes.UploadPortfolio)

	// CRM
	admin.GET("/applications/:id/notes", crmRoutes.GetNotes)
	admin.POST("/applications/:id/notes", crmRoutes.AddNote)
	admin.PATCH("/notes/:noteId", crmRoutes.UpdateNote)
	admin.DELETE("/notes/:noteId", crmRoutes.DeleteNote)
	admin.GET("/talent-pool", crmRoutes.GetTalentPool)
	admin.POST("/applications/:id/talent-pool", crmRoutes.AddToTalentPool)
	admin.DELETE("/applications/:id/talent-pool", crmRoutes.RemoveFromTalentPool)
	admin.POST("/applications/:id/referral", crmRoutes.SetReferral)
	admin.GET("/applications/:id/timeline", crmRoutes.GetTimeline)

	// Candidate search
	admin.GET("/candidates/search", candidateRoutes.Search)

	// Activity
	admin.GET("/activity", activityRoutes.GetLogs)
	admin.GET("/activity/:entityType/:entityId", activityRoutes.GetEntityLogs)

	// Embedded dashboard: same surface, tenant-pinned by the guard
	embed := e.Group("/api/embed", requireAdmin, appmiddleware.EmbedTenantGuard())
	embed.GET("/verify", authRoutes.VerifyEmbed)
	embed.GET("/jobs", jobRoutes.GetJobs)
	embed.GET("/applications", appRoutes.GetApplications)
	embed.GET("/applications/:id", appRoutes.GetApplication)
	embed.PATCH("/applications/:id/status", appRoutes.UpdateStatus)

	// Super admin
	super := e.Group("/api/superadmin", requireSuperAdmin)
	super.GET("/stats", superAdminRoutes.GetStats)
	super.GET("/companies", superAdminRoutes.GetCompanies)
	super.GET("/companies/:id", superAdminRoutes.GetCompany)
	super.PATCH("/companies/:id/subscription", superAdminRoutes.UpdateSubscription)
	super.GET("/activity", superAdminRoutes.GetLogs)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":" + cfg.Port); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
