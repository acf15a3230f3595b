package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками ответа
type AttemptRepository interface {
	Exists(quizID, userID, questionID uint) (bool, error)
	// Create сохраняет попытку. Повторная попытка на ту же тройку возвращается как apperrors.ErrConflict.
	Create(attempt *entity.Attempt) error
}

// ResultRepository определяет методы для работы с результатами
type ResultRepository interface {
	// EnsureExists создает результат со счетом 0, если его еще нет
	EnsureExists(quizID, userID uint) error
	IncrementScore(quizID, userID uint, delta int) error
	GetUserResult(quizID, userID uint) (*entity.Result, error)
	// GetUserResults возвращает все результаты пользователя в порядке создания
	GetUserResults(userID uint) ([]entity.Result, error)
}
