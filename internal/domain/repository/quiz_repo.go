package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// Create сохраняет викторину. Нарушение уникальности title возвращается как apperrors.ErrConflict.
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetByTitle(title string) (*entity.Quiz, error)
}
