package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"liblend/database"
	"liblend/internal/api/handler"
	"liblend/internal/api/middleware"
	"liblend/internal/api/repository"
	"liblend/internal/api/service"
	"liblend/internal/cache"
	"liblend/internal/config"
)

func main() {
	log.Println("Starting liblend API server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// The book cache is optional; a nil cache is a no-op everywhere.
	var bookCache *cache.BookCache
	if cfg.RedisAddr != "" {
		bookCache, err = cache.NewBookCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			log.Printf("warning: redis connect failed, caching disabled (continuing): %v", err)
			bookCache = nil
		} else {
			defer bookCache.Close()
			log.Println("Redis book cache connected")
		}
	}

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	loanRepo := repository.NewLoanRepository(db)

	ratingService := service.NewRatingService(bookRepo, loanRepo, bookCache)
	loanService := service.NewLoanService(userRepo, bookRepo, loanRepo, ratingService)
	userService := service.NewUserService(userRepo, loanRepo)
	bookService := service.NewBookService(bookRepo, loanRepo, bookCache)

	router := gin.Default()
	router.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler())

	api := router.Group("")
	handler.NewUserHandler(userService).RegisterRoutes(api)
	handler.NewBookHandler(bookService).RegisterRoutes(api)
	handler.NewLoanHandler(loanService).RegisterRoutes(api)
	handler.NewHealthHandler(db).RegisterRoutes(router)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Printf("API server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
