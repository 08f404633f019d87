package router

import (
	"fmt"

	"github.com/giftmart/internal/cache"
	"github.com/giftmart/internal/config"
	"github.com/giftmart/internal/http/handlers/admin"
	"github.com/giftmart/internal/http/handlers/public"
	"github.com/giftmart/internal/logger"
	"github.com/giftmart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	publicHandler := public.New(c)
	adminHandler := admin.New(c)

	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", cache.KeyPrefix()),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}
	adminLoginRule := loginRule
	adminLoginRule.Prefix = fmt.Sprintf("%s:rate:admin_login", cache.KeyPrefix())

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api/v1")
	{
		api.GET("/products", publicHandler.GetProducts)
		api.GET("/products/:id", publicHandler.GetProduct)

		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login",
				RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")),
				publicHandler.UserLogin,
			)
		}

		user := api.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/:id/invoice", publicHandler.DownloadOrderInvoice)
		}

		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/login",
				RateLimitMiddleware(cache.Client(), adminLoginRule, KeyByIP),
				adminHandler.AdminLogin,
			)

			authorized := adminGroup.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)

				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/:id/status", adminHandler.UpdateAdminUserStatus)

				authorized.PUT("/password", adminHandler.UpdateAdminPassword)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
