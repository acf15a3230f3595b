package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами и вариантами ответов
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateOptions(options []entity.Option) error
	// GetByIDInQuiz возвращает вопрос, только если он принадлежит викторине quizID
	GetByIDInQuiz(quizID, questionID uint) (*entity.Question, error)
	// GetByQuizIDWithOptions возвращает вопросы викторины вместе с вариантами, в порядке вставки
	GetByQuizIDWithOptions(quizID uint) ([]entity.Question, error)
	GetCorrectOption(questionID uint) (*entity.Option, error)
	CountByQuizID(quizID uint) (int64, error)
}
