package routes

import (
	"net/http"
	"time"

	"bunshack-api/handlers"
	"bunshack-api/logging"
	"bunshack-api/metrics"
	"bunshack-api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Handler        *handlers.Handler
	Auth           *middleware.Authenticator
	Metrics        *metrics.Metrics
	Logger         *logrus.Logger
	AllowedOrigins []string
}

// NewRouter builds the engine with the ambient middleware and every route.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(opts.Logger))
	r.Use(opts.Metrics.Middleware())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader},
			ExposeHeaders:    []string{"Location", logging.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Bunshack Restaurant API",
		})
	})
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Bunshack Restaurant API",
			"health":  "/health",
			"menus":   "/api/Menus",
		})
	})

	SetupRoutes(r, opts.Handler, opts.Auth)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, auth *middleware.Authenticator) {
	requireSession := middleware.RequireSession(auth)
	requireAdmin := middleware.RequireAdmin()

	// ── Login ──────────────────────────────────────────────────────
	login := r.Group("/api/Login")
	{
		login.POST("/register", h.Register)
		login.POST("/login", h.Login)
		login.GET("/logout", requireSession, h.Logout)
		login.GET("/check", h.CheckStatus)
	}

	// ── Menus ──────────────────────────────────────────────────────
	menus := r.Group("/api/Menus")
	{
		menus.GET("", h.ListMenus)
		menus.GET("/:id", requireSession, h.GetMenu)
		menus.POST("", requireSession, requireAdmin, h.CreateMenu)
		menus.PUT("/:id", requireSession, requireAdmin, h.UpdateMenu)
		menus.DELETE("/:id", requireSession, requireAdmin, h.DeleteMenu)
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := r.Group("/api/Orders")
	orders.Use(requireSession)
	{
		orders.GET("/user", h.GetMyOrders)
		orders.GET("/admin", requireAdmin, h.AdminGetAllOrders)
		orders.POST("", h.PlaceOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.ModifyOrder)
		orders.DELETE("/:id", h.CancelOrder)
		orders.GET("/:id/menus", h.GetOrderMenus)
	}
}
