package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/you/librarysvc/domain"
	"github.com/you/librarysvc/internal/config"
	httpx "github.com/you/librarysvc/internal/http"
	"github.com/you/librarysvc/internal/http/handlers"
	"github.com/you/librarysvc/internal/http/middleware"
	"github.com/you/librarysvc/internal/infrastructure/audit"
	"github.com/you/librarysvc/internal/infrastructure/auth"
	"github.com/you/librarysvc/internal/infrastructure/database"
	"github.com/you/librarysvc/internal/infrastructure/notifications"
	"github.com/you/librarysvc/internal/infrastructure/repositories"
	"github.com/you/librarysvc/internal/jobs"
	"github.com/you/librarysvc/internal/observability"
	"github.com/you/librarysvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Metrics *observability.Metrics

	// Infrastructure
	DB    *gorm.DB
	Redis *database.RedisClient

	// Repositories
	UserRepo    domain.UserRepository
	OTPRepo     domain.OTPRepository
	BookRepo    domain.BookRepository
	BookingRepo domain.BookingRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuditLogger     domain.AuditLogger
	OTPSvc          *services.OTPServiceImpl
	AuthSvc         domain.AuthService
	BookSvc         domain.BookService
	BookingSvc      domain.BookingService
	UserSvc         domain.UserService
}

// NewContainer connects to PostgreSQL and Redis, migrates the schema and wires every service
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	db, err := database.Open(cfg.DSN, cfg.GinMode == gin.DebugMode)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	notify := notifications.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, logger)
	return NewContainerWith(cfg, logger, db, rdb, notify), nil
}

// NewContainerWith wires services over connections the caller already owns.
// The schema must already be migrated.
func NewContainerWith(cfg *config.Config, logger *logrus.Logger, db *gorm.DB, rdb *database.RedisClient, notify domain.NotificationService) *Container {
	c := &Container{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		Redis:           rdb,
		NotificationSvc: notify,
	}
	c.initMetrics()
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initMetrics() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = observability.NewMetrics(registry)
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.BookRepo = repositories.NewBookRepository(c.DB)
	c.BookingRepo = repositories.NewBookingRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.AccessSecret,
		c.Config.RefreshSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.AuditLogger = audit.NewLogrusAuditLogger(c.Logger)

	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.NotificationSvc, c.Redis.Client, services.OTPConfig{
		TTL:          c.Config.OTP_TTL,
		ResendWindow: c.Config.OTP_ResendWindow,
	})
	c.OTPSvc.OnSent(func(purpose domain.OTPPurpose) {
		c.Metrics.OTPSentTotal.WithLabelValues(string(purpose)).Inc()
	})

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc, c.AuditLogger, c.Logger)
	c.BookSvc = services.NewBookService(c.BookRepo)
	c.BookingSvc = services.NewBookingService(c.BookingRepo, c.BookRepo)
	c.UserSvc = services.NewUserService(c.UserRepo)
}

// Router builds the HTTP handler tree
func (c *Container) Router() *gin.Engine {
	h := httpx.Handlers{
		Auth: handlers.NewAuthHandlers(c.AuthSvc, c.AuditLogger, handlers.CookieConfig{
			Secure: c.Config.CookieSecure,
			MaxAge: c.Config.RefreshTTL,
		}, c.Logger),
		Books:    handlers.NewBookHandlers(c.BookSvc, c.Logger),
		Bookings: handlers.NewBookingHandlers(c.BookingSvc, c.Logger),
		Users:    handlers.NewUserHandlers(c.UserSvc, c.Logger),
	}
	authmw := middleware.NewAuthMW(c.TokenSvc, c.UserRepo, c.AuditLogger)
	health := observability.NewHealthChecker(map[string]observability.Pinger{
		"database": observability.PingFunc(func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"redis": c.Redis,
	})
	return httpx.BuildRouter(h, authmw, c.Metrics, health, c.Logger)
}

// Scheduler builds the background job scheduler
func (c *Container) Scheduler() (*jobs.Scheduler, error) {
	s := jobs.NewScheduler(c.Logger)
	purge := jobs.NewOTPPurgeJob(c.OTPSvc, c.Metrics.OTPPurgedTotal, c.Logger)
	if err := s.Add(c.Config.OTP_PurgeSchedule, purge); err != nil {
		return nil, err
	}
	return s, nil
}

// SeedAdmin creates the configured administrator if no admin exists yet
func (c *Container) SeedAdmin(ctx context.Context) error {
	if c.Config.AdminEmail == "" {
		return nil
	}
	created, err := services.SeedAdmin(ctx, c.UserRepo, c.PasswordSvc, c.Config.AdminEmail, c.Config.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		c.Logger.WithField("email", c.Config.AdminEmail).Info("admin user created")
	}
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		c.Redis.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
