package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// CreateQuiz обрабатывает запрос на создание викторины
// POST /create-quiz
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCreateQuizResponse(quiz))
}

// GetQuiz возвращает информацию о викторине
// GET /quiz/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// AddQuestion обрабатывает запрос на добавление вопроса к викторине
// POST /quiz/:id/question
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req dto.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.quizService.AddQuestion(c.Request.Context(), quizID, req.QuestionText, req.Options, *req.CorrectAnswer)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAddQuestionResponse(question))
}

// SubmitAnswer принимает ответ пользователя на вопрос викторины
// POST /quiz/:id/answer
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.quizService.SubmitAnswer(c.Request.Context(), quizID, *req.QuestionID, *req.UserID, req.Answer)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmitAnswerResponse(res))
}

// ListQuestions возвращает вопросы викторины без правильных ответов
// GET /quiz/:id/questions
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	list, err := h.quizService.ListQuestions(c.Request.Context(), quizID)
	if err != nil {
		handleServiceError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizQuestionsResponse(list))
}
