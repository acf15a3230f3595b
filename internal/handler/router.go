package handler

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/yourusername/quiz-api/internal/middleware"
)

// RouterOptions зависимости маршрутизатора
type RouterOptions struct {
	QuizHandler *QuizHandler
	UserHandler *UserHandler
	// RateLimiter nil, если Redis отключен
	RateLimiter     *middleware.RateLimiter
	AnswerRateLimit middleware.RateLimitConfig
	AllowOrigins    []string
	TrustedProxies  []string
}

var registerValidatorsOnce sync.Once

// RegisterValidators регистрирует дополнительные правила валидации в движке gin
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Printf("[Router] Движок валидации gin не является validator/v10")
			return
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			log.Printf("[Router] Не удалось зарегистрировать валидатор notblank: %v", err)
		}
	})
}

// NewRouter настраивает маршруты API
func NewRouter(opts RouterOptions) *gin.Engine {
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS
	if len(opts.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Quiz App API"})
	})

	router.POST("/create-quiz", opts.QuizHandler.CreateQuiz)

	quizWithID := router.Group("/quiz/:id")
	quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
	{
		quizWithID.GET("", opts.QuizHandler.GetQuiz)
		quizWithID.POST("/question", opts.QuizHandler.AddQuestion)
		quizWithID.GET("/questions", opts.QuizHandler.ListQuestions)

		answerHandlers := []gin.HandlerFunc{}
		if opts.RateLimiter != nil {
			answerHandlers = append(answerHandlers, opts.RateLimiter.Limit(opts.AnswerRateLimit))
		}
		answerHandlers = append(answerHandlers, opts.QuizHandler.SubmitAnswer)
		quizWithID.POST("/answer", answerHandlers...)
	}

	userWithID := router.Group("/user/:id")
	userWithID.Use(middleware.ExtractUintParam("id", "userID"))
	{
		userWithID.GET("/results", opts.UserHandler.GetUserResults)
		userWithID.GET("/results/export", opts.UserHandler.ExportUserResults)
	}

	return router
}
