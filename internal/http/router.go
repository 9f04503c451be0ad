package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/librarysvc/internal/http/handlers"
	"github.com/you/librarysvc/internal/http/middleware"
	"github.com/you/librarysvc/internal/http/respond"
	"github.com/you/librarysvc/internal/observability"
)

// Handlers groups the endpoint handlers mounted by BuildRouter
type Handlers struct {
	Auth     *handlers.AuthHandlers
	Books    *handlers.BookHandlers
	Bookings *handlers.BookingHandlers
	Users    *handlers.UserHandlers
}

// BuildRouter mounts the API under /api; /health and /metrics stay at the root
func BuildRouter(h Handlers, authmw *middleware.AuthMW, metrics *observability.Metrics, health *observability.HealthChecker, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), observability.RequestLogger(logger))
	if metrics != nil {
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}
	if health != nil {
		r.GET("/health", health.Handler())
	}
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Route not found", nil)
	})

	api := r.Group("/api")
	jwt := authmw.WithJWT()

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/activate", h.Auth.Activate)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh-token", h.Auth.Refresh)
	auth.POST("/logout", jwt, h.Auth.Logout)
	auth.POST("/request-otp", h.Auth.RequestOTP)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	books := api.Group("/books")
	books.GET("", h.Books.List)
	books.GET("/:id", h.Books.Get)
	books.POST("", jwt, authmw.Admin(), h.Books.Create)
	books.PUT("/:id", jwt, authmw.Admin(), h.Books.Update)
	books.DELETE("/:id", jwt, authmw.Admin(), h.Books.Delete)

	bookings := api.Group("/bookings", jwt)
	bookings.POST("", h.Bookings.Create)
	bookings.GET("", h.Bookings.List)
	bookings.GET("/:id", h.Bookings.Get)
	bookings.DELETE("/:id", h.Bookings.Delete)

	user := api.Group("/user", jwt)
	user.GET("/profile", h.Users.Profile)
	user.PUT("/profile", h.Users.UpdateProfile)
	admin := user.Group("", authmw.Admin())
	admin.GET("", h.Users.List)
	admin.GET("/:id", h.Users.Get)
	admin.PUT("/:id", h.Users.Update)
	admin.DELETE("/:id", h.Users.Delete)

	return r
}
