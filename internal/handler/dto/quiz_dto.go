package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/handler/helper"
	"github.com/yourusername/quiz-api/internal/service"
)

// Сообщения успешных операций
const (
	MessageQuizCreated     = "Quiz created successfully"
	MessageQuestionCreated = "Question created successfully"
)

// CreateQuizRequest представляет запрос на создание викторины.
// Ограничения длины совпадают с размерами колонок quizzes.title и quizzes.description.
type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

// CreateQuizResponse ответ на создание викторины
type CreateQuizResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
	Title   string `json:"title"`
}

// QuizResponse представляет викторину в формате для ответа клиенту
type QuizResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddQuestionRequest представляет запрос на добавление вопроса.
// CorrectAnswer - индекс правильного варианта в Options (с нуля).
type AddQuestionRequest struct {
	QuestionText  string   `json:"question_text" binding:"required,notblank"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer *int     `json:"correct_answer" binding:"required"`
}

// AddQuestionResponse ответ на добавление вопроса
type AddQuestionResponse struct {
	Message    string `json:"message"`
	QuestionID uint   `json:"question_id"`
	QuizID     uint   `json:"quiz_id"`
}

// SubmitAnswerRequest представляет ответ пользователя на вопрос.
// Указатели отличают отсутствующее поле от нулевого ID: 0 допустим и проверяется сервисом.
type SubmitAnswerRequest struct {
	QuestionID *uint  `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
	UserID     *uint  `json:"user_id" binding:"required"`
}

// SubmitAnswerResponse результат проверки ответа
type SubmitAnswerResponse struct {
	Message       string  `json:"message"`
	IsCorrect     bool    `json:"is_correct"`
	CorrectAnswer *string `json:"correct_answer,omitempty"` // только для неправильного ответа
	CurrentScore  int     `json:"current_score"`
}

// QuestionResponse представляет вопрос без признака правильного варианта
type QuestionResponse struct {
	ID           uint                    `json:"id"`
	QuestionText string                  `json:"question_text"`
	Options      []helper.QuestionOption `json:"options"`
}

// QuizQuestionsResponse список вопросов викторины
type QuizQuestionsResponse struct {
	QuizID    uint               `json:"quiz_id"`
	Questions []QuestionResponse `json:"questions"`
}

// NewCreateQuizResponse создает DTO для созданной викторины
func NewCreateQuizResponse(quiz *entity.Quiz) *CreateQuizResponse {
	return &CreateQuizResponse{
		Message: MessageQuizCreated,
		ID:      quiz.ID,
		Title:   quiz.Title,
	}
}

// NewQuizResponse создает DTO для викторины
func NewQuizResponse(quiz *entity.Quiz) *QuizResponse {
	return &QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		CreatedAt:   quiz.CreatedAt,
	}
}

// NewAddQuestionResponse создает DTO для добавленного вопроса
func NewAddQuestionResponse(question *entity.Question) *AddQuestionResponse {
	return &AddQuestionResponse{
		Message:    MessageQuestionCreated,
		QuestionID: question.ID,
		QuizID:     question.QuizID,
	}
}

// NewSubmitAnswerResponse создает DTO для результата ответа
func NewSubmitAnswerResponse(res *service.AnswerResult) *SubmitAnswerResponse {
	return &SubmitAnswerResponse{
		Message:       res.Message(),
		IsCorrect:     res.IsCorrect,
		CorrectAnswer: res.CorrectAnswer,
		CurrentScore:  res.CurrentScore,
	}
}

// NewQuizQuestionsResponse создает DTO для списка вопросов
func NewQuizQuestionsResponse(list *service.QuizQuestions) *QuizQuestionsResponse {
	questions := make([]QuestionResponse, len(list.Questions))
	for i, q := range list.Questions {
		questions[i] = QuestionResponse{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      helper.ConvertOptions(q.Options),
		}
	}
	return &QuizQuestionsResponse{QuizID: list.QuizID, Questions: questions}
}
