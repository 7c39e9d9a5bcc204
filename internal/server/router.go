package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalog-backend/internal/handlers"
	"github.com/yungbote/catalog-backend/internal/middleware"
)

type RouterConfig struct {
	AccountHandler      *handlers.AccountHandler
	UserHandler         *handlers.UserHandler
	ProductHandler      *handlers.ProductHandler
	AddonHandler        *handlers.AddonHandler
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	if cfg.RequestIDMiddleware != nil {
		router.Use(cfg.RequestIDMiddleware.Tag())
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		accounts := api.Group("/accounts")
		accounts.GET("", cfg.AccountHandler.GetAll)
		accounts.GET("/:id", cfg.AccountHandler.GetByID)
		accounts.POST("", cfg.AccountHandler.Create)
		accounts.PUT("/:id", cfg.AccountHandler.Update)
		accounts.DELETE("/:id", cfg.AccountHandler.Delete)
		accounts.POST("/:id/products/:productId", cfg.AccountHandler.Subscribe)
		accounts.DELETE("/:id/products/:productId", cfg.AccountHandler.Unsubscribe)

		users := api.Group("/users")
		users.GET("", cfg.UserHandler.GetAll)
		users.GET("/:id", cfg.UserHandler.GetByID)
		users.POST("", cfg.UserHandler.Create)
		users.PUT("/:id", cfg.UserHandler.Update)
		users.DELETE("/:id", cfg.UserHandler.Delete)

		products := api.Group("/products")
		products.GET("", cfg.ProductHandler.GetAll)
		products.GET("/:id", cfg.ProductHandler.GetByID)
		products.POST("", cfg.ProductHandler.Create)
		products.PUT("/:id", cfg.ProductHandler.Update)
		products.DELETE("/:id", cfg.ProductHandler.Delete)
		products.POST("/:id/addons", cfg.ProductHandler.AddAddons)

		addons := api.Group("/addons")
		addons.GET("", cfg.AddonHandler.GetAll)
		addons.GET("/:id", cfg.AddonHandler.GetByID)
		addons.POST("", cfg.AddonHandler.Create)
		addons.PUT("/:id", cfg.AddonHandler.Update)
		addons.DELETE("/:id", cfg.AddonHandler.Delete)
	}

	return router
}
