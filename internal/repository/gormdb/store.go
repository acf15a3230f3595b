package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// Store реализует repository.Store поверх *gorm.DB
type Store struct {
	db *gorm.DB
}

// NewStore создает хранилище с транзакциями на каждую операцию
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction открывает транзакцию и выдает fn репозитории, привязанные к ней.
// gorm откатывает транзакцию при ошибке fn и при панике.
func (s *Store) Transaction(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

// txRepositories создает репозитории лениво над одной транзакцией
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Quizzes() repository.QuizRepository {
	return NewQuizRepo(r.tx)
}

func (r *txRepositories) Questions() repository.QuestionRepository {
	return NewQuestionRepo(r.tx)
}

func (r *txRepositories) Attempts() repository.AttemptRepository {
	return NewAttemptRepo(r.tx)
}

func (r *txRepositories) Results() repository.ResultRepository {
	return NewResultRepo(r.tx)
}

func (r *txRepositories) Users() repository.UserRepository {
	return NewUserRepo(r.tx)
}
