package gormdb

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Exists проверяет, отвечал ли пользователь на вопрос викторины
func (r *AttemptRepo) Exists(quizID, userID, questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Attempt{}).
		Where("quiz_id = ? AND user_id = ? AND question_id = ?", quizID, userID, questionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create сохраняет попытку ответа
func (r *AttemptRepo) Create(attempt *entity.Attempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: attempt quiz=%d user=%d question=%d",
				apperrors.ErrConflict, attempt.QuizID, attempt.UserID, attempt.QuestionID)
		}
		return err
	}
	return nil
}

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// EnsureExists создает результат со счетом 0, если записи для (quiz_id, user_id) еще нет.
// ON CONFLICT DO NOTHING защищает от гонки двух первых ответов пользователя.
func (r *ResultRepo) EnsureExists(quizID, userID uint) error {
	result := &entity.Result{QuizID: quizID, UserID: userID, Score: 0}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(result).Error
}

// IncrementScore атомарно увеличивает счет на delta через gorm.Expr
func (r *ResultRepo) IncrementScore(quizID, userID uint, delta int) error {
	return r.db.Model(&entity.Result{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Update("score", gorm.Expr("score + ?", delta)).
		Error
}

// GetUserResult возвращает результат пользователя для конкретной викторины
func (r *ResultRepo) GetUserResult(quizID, userID uint) (*entity.Result, error) {
	var result entity.Result
	err := r.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// GetUserResults возвращает все результаты пользователя
func (r *ResultRepo) GetUserResults(userID uint) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("user_id = ?", userID).
		Order("id").
		Find(&results).Error
	// Пустой слайс - валидный результат
	return results, err
}
