package repository

import "context"

// Repositories набор репозиториев, привязанных к одной транзакции
type Repositories interface {
	Quizzes() QuizRepository
	Questions() QuestionRepository
	Attempts() AttemptRepository
	Results() ResultRepository
	Users() UserRepository
}

// Store выдает репозитории в рамках транзакции.
// Транзакция коммитится, если fn вернула nil, и откатывается при ошибке или панике.
type Store interface {
	Transaction(ctx context.Context, fn func(repos Repositories) error) error
}
