package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"findthem_backend/internal/config"
	"findthem_backend/internal/email"
	"findthem_backend/internal/handlers"
	"findthem_backend/internal/logger"
	"findthem_backend/internal/middleware"
	"findthem_backend/internal/models"
	"findthem_backend/internal/repositories"
	"findthem_backend/internal/routes"
	"findthem_backend/internal/services"
	"findthem_backend/internal/storage"
	"findthem_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	// TranslateError turns driver duplicate-key and FK violations into
	// gorm sentinels the repositories depend on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(&models.User{}, &models.Case{}, &models.Comment{}); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter(cfg)

	staticFilesDir := ""
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		staticFilesDir = local.BasePath()
	}
	routes.RegisterRoutes(ginRouter, appHandlers, staticFilesDir)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	emailService := initializeEmailProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	caseRepo := repositories.NewCaseRepository(gormDB)

	audit := auditLogHook

	authService := services.NewAuthService(
		userRepo,
		emailService,
		[]byte(cfg.JWT.Secret),
		time.Duration(cfg.JWT.TTLHours)*time.Hour,
		cfg.FrontendURL,
		audit,
	)
	userService := services.NewUserService(userRepo, audit)
	caseService := services.NewCaseService(caseRepo, services.Policy{
		AnonymousSubmit:             cfg.Policy.AnonymousSubmit,
		AnonymousComment:            cfg.Policy.AnonymousComment,
		StatusEditRequiresModerator: cfg.Policy.StatusEditRequiresModerator,
	})
	uploadService := services.NewUploadService(storageInstance, services.UploadConfig{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	})

	return &services.ServiceContainer{
		AuthService:   authService,
		UserService:   userService,
		CaseService:   caseService,
		UploadService: uploadService,
		EmailService:  emailService,
	}
}

func initializeEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, emails will be logged instead of sent")
		return &email.NoopProvider{}
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, email.NewTemplateManager())
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	return provider
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	jwtSecret := []byte(cfg.JWT.Secret)
	sessionTTL := time.Duration(cfg.JWT.TTLHours) * time.Hour
	secureMode := cfg.Server.Env == "production"

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, svc.AuthService, svc.UserService, jwtSecret, sessionTTL, secureMode),
		UserHandler: handlers.NewUserHandler(baseHandler, svc.UserService, jwtSecret),
		CaseHandler: handlers.NewCaseHandler(baseHandler, svc.CaseService, svc.UploadService, jwtSecret),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	return router
}

// auditLogHook records security-relevant events in the structured log.
func auditLogHook(ctx context.Context, event string, fields map[string]interface{}) {
	args := make([]any, 0, len(fields)*2+2)
	args = append(args, "event", event)
	for k, v := range fields {
		args = append(args, k, v)
	}
	logger.CtxInfo(ctx, "audit", args...)
}

// seedFirstAdmin bootstraps the first administrator account so role
// assignment has a starting point. Runs once, skips if the account exists.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("First admin credentials not set, skipping admin seeding")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", cfg.FirstAdminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists, skipping creation", "email", cfg.FirstAdminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.FirstAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	username := cfg.FirstAdminUsername
	if username == "" {
		username = "admin"
	}

	newAdmin := &models.User{
		Username:     username,
		Email:        cfg.FirstAdminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		IsVerified:   true,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", cfg.FirstAdminEmail)
	return nil
}
