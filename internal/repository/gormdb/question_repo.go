package gormdb

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос (без вариантов)
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Omit("Options").Create(question).Error
}

// CreateOptions сохраняет варианты одним батчем; ID выдаются в порядке слайса
func (r *QuestionRepo) CreateOptions(options []entity.Option) error {
	if len(options) == 0 {
		return nil
	}
	return r.db.Create(&options).Error
}

// GetByIDInQuiz возвращает вопрос по ID в рамках викторины
func (r *QuestionRepo) GetByIDInQuiz(quizID, questionID uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.Where("id = ? AND quiz_id = ?", questionID, quizID).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByQuizIDWithOptions возвращает все вопросы викторины с вариантами ответа
func (r *QuestionRepo) GetByQuizIDWithOptions(quizID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Where("quiz_id = ?", quizID).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetCorrectOption возвращает вариант, помеченный правильным
func (r *QuestionRepo) GetCorrectOption(questionID uint) (*entity.Option, error) {
	var option entity.Option
	err := r.db.Where("question_id = ? AND correct_answer = ?", questionID, true).
		Order("id").
		First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &option, nil
}

// CountByQuizID возвращает текущее количество вопросов викторины
func (r *QuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
