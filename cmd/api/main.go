package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/repository/gormdb"
	redisRepo "github.com/yourusername/quiz-api/internal/repository/redis"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/database"
)

func main() {
	// .env не обязателен: в контейнере переменные задаются окружением
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Подключение к базе и миграции
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()
	log.Printf("Database ready (driver=%s)", cfg.Database.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis опционален: без него нет кеша викторин и лимита на ответы
	var (
		redisClient redis.UniversalClient
		cacheRepo   repository.CacheRepository
		rateLimiter *middleware.RateLimiter
	)
	if cfg.Redis.Enabled {
		redisClient, err = database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Println("Successfully connected to Redis")

		repo, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = repo
		rateLimiter = middleware.NewRateLimiter(redisClient)
	} else {
		log.Println("Redis disabled: quiz cache and answer rate limiting are off")
	}

	// Хранилище, сервисы и обработчики
	store := gormdb.NewStore(db)
	quizService := service.NewQuizService(store, cacheRepo, cfg.Cache.QuizTTL)
	userService := service.NewUserService(store)

	// В production не доверяем прокси-заголовкам (защита от IP spoofing)
	var trustedProxies []string
	if gin.Mode() != gin.ReleaseMode {
		trustedProxies = []string{"127.0.0.1", "::1"}
	}

	router := handler.NewRouter(handler.RouterOptions{
		QuizHandler:     handler.NewQuizHandler(quizService),
		UserHandler:     handler.NewUserHandler(userService),
		RateLimiter:     rateLimiter,
		AnswerRateLimit: middleware.AnswerRateLimitConfig(cfg.RateLimit.AnswerMaxRequests, cfg.RateLimit.AnswerWindow),
		AllowOrigins:    cfg.CORS.AllowOrigins,
		TrustedProxies:  trustedProxies,
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server exited properly")
}
