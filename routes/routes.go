package routes

import (
	"time"

	"pizza-store/handlers"
	"pizza-store/middleware"
	"pizza-store/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// authAttempts bounds login and registration attempts per client IP.
const authAttempts = 10

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/health", h.Health)

	// ── Public routes ──────────────────────────────────────────────
	limiter := middleware.NewRateLimiter(rate.Every(time.Minute/authAttempts), authAttempts, 10*time.Minute)

	public := r.Group("/api")
	{
		public.POST("/auth/register", limiter.Limit(), h.Register)
		public.POST("/auth/login", limiter.Limit(), h.Login)

		public.GET("/stores", h.ListStores)
		public.GET("/menu", h.GetMenu)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(h.Auth.AuthRequired())
	{
		auth.GET("/profile", h.GetProfile)
		auth.POST("/orders", h.PlaceOrder)
		auth.GET("/orders", h.GetOrders)
		auth.GET("/orders/recent", h.GetRecentOrders)
		auth.GET("/orders/:id", h.GetOrderDetail)
	}

	// ── Driver and manager routes ──────────────────────────────────
	staff := r.Group("/api")
	staff.Use(h.Auth.AuthRequired(), middleware.RoleRequired(models.RoleDriver, models.RoleManager))
	{
		staff.PUT("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Manager routes ─────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(h.Auth.AuthRequired(), middleware.RoleRequired(models.RoleManager))
	{
		admin.POST("/items", h.CreateItem)
		admin.PUT("/items/:name", h.UpdateItem)
		admin.PUT("/users/:login", h.UpdateUser)
	}
}
