package main

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/cache"
	"github.com/yungbote/catalog-backend/internal/db"
	"github.com/yungbote/catalog-backend/internal/handlers"
	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/middleware"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/server"
	"github.com/yungbote/catalog-backend/internal/services"
	"github.com/yungbote/catalog-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Storage
	var gdb *gorm.DB
	switch utils.GetEnv("DB_DRIVER", "postgres", log) {
	case "sqlite":
		sqlitePath := utils.GetEnv("SQLITE_PATH", "catalog.db", log)
		sqliteService, err := db.NewSQLiteService(sqlitePath, log)
		if err != nil {
			log.Fatal("SQLite init failed", "error", err)
		}
		if err := sqliteService.AutoMigrateAll(); err != nil {
			log.Fatal("SQLite auto migration failed", "error", err)
		}
		gdb = sqliteService.DB()
	default:
		postgresService, err := db.NewPostgresService(log)
		if err != nil {
			log.Fatal("Postgres init failed", "error", err)
		}
		if err := postgresService.AutoMigrateAll(); err != nil {
			log.Fatal("Postgres auto migration failed", "error", err)
		}
		gdb = postgresService.DB()
	}

	// Product cache (optional)
	var productCache *cache.ProductCache
	if redisAddr := utils.GetEnv("REDIS_ADDR", "", log); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		cacheTTL := utils.GetEnvAsInt("CACHE_TTL_SECONDS", 300, log)
		productCache = cache.NewProductCache(redisClient, time.Duration(cacheTTL)*time.Second, log)
		log.Info("Product cache enabled", "addr", redisAddr, "ttl_seconds", cacheTTL)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	accountRepo := repos.NewAccountRepo(gdb, log)
	userRepo := repos.NewUserRepo(gdb, log)
	productRepo := repos.NewProductRepo(gdb, log)
	addonRepo := repos.NewAddonRepo(gdb, log)
	accountProductRepo := repos.NewAccountProductRepo(gdb, log)

	// Services
	log.Info("Setting up Services from main...")
	cascadeService := services.NewCascadeService(log, accountRepo, userRepo, productRepo, addonRepo, accountProductRepo)
	accountService := services.NewAccountService(gdb, log, accountRepo, cascadeService)
	userService := services.NewUserService(gdb, log, userRepo, accountRepo, cascadeService)
	productService := services.NewProductService(gdb, log, productRepo, addonRepo, cascadeService, productCache)
	addonService := services.NewAddonService(gdb, log, addonRepo, productRepo, productCache)
	subscriptionService := services.NewSubscriptionService(gdb, log, accountRepo, productRepo, accountProductRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	accountHandler := handlers.NewAccountHandler(accountService, subscriptionService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	addonHandler := handlers.NewAddonHandler(addonService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AccountHandler:      accountHandler,
		UserHandler:         userHandler,
		ProductHandler:      productHandler,
		AddonHandler:        addonHandler,
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(log),
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
