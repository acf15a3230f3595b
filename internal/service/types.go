package service

// Сообщения результата ответа
const (
	MessageCorrectAnswer   = "Correct answer!"
	MessageIncorrectAnswer = "Incorrect answer"
)

// UnknownQuizTitle подставляется, если викторина результата больше не существует
const UnknownQuizTitle = "Unknown"

// AnswerResult результат SubmitAnswer
type AnswerResult struct {
	IsCorrect bool
	// CorrectAnswer заполняется только для неправильного ответа
	CorrectAnswer *string
	// CurrentScore накопленный счет пользователя в викторине после этого ответа
	CurrentScore int
}

// Message возвращает текст для клиента
func (r *AnswerResult) Message() string {
	if r.IsCorrect {
		return MessageCorrectAnswer
	}
	return MessageIncorrectAnswer
}

// OptionView вариант ответа без признака правильности
type OptionView struct {
	ID   uint
	Text string
}

// QuestionWithOptions вопрос вместе с вариантами ответа
type QuestionWithOptions struct {
	ID           uint
	QuestionText string
	Options      []OptionView
}

// QuizQuestions результат ListQuestions
type QuizQuestions struct {
	QuizID    uint
	Questions []QuestionWithOptions
}

// UserQuizSummary итог пользователя по одной викторине
type UserQuizSummary struct {
	QuizID         uint
	QuizTitle      string
	Score          int
	TotalQuestions int64
	Percentage     float64
}

// UserResults результат GetUserResults
type UserResults struct {
	UserID  uint
	Results []UserQuizSummary
}

// scorePercentage считает процент от текущего количества вопросов; 0, если вопросов нет
func scorePercentage(score int, totalQuestions int64) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	return float64(score) / float64(totalQuestions) * 100
}
