package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// UserService предоставляет методы для работы с результатами пользователей
type UserService struct {
	store repository.Store
}

// NewUserService создает новый сервис пользователей
func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// GetUserResults возвращает итоги пользователя по всем викторинам, в которых у него есть результат.
// Процент считается от текущего количества вопросов викторины, поэтому меняется,
// если вопросы добавлены после ответов пользователя.
// Пользователь без результатов получает пустой список.
func (s *UserService) GetUserResults(ctx context.Context, userID uint) (*UserResults, error) {
	summaries := make([]UserQuizSummary, 0)

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		results, err := repos.Results().GetUserResults(userID)
		if err != nil {
			return fmt.Errorf("failed to get results of user #%d: %w", userID, err)
		}

		for _, result := range results {
			title := UnknownQuizTitle
			quiz, err := repos.Quizzes().GetByID(result.QuizID)
			switch {
			case err == nil:
				title = quiz.Title
			case !errors.Is(err, apperrors.ErrNotFound):
				return fmt.Errorf("failed to get quiz #%d: %w", result.QuizID, err)
			}

			total, err := repos.Questions().CountByQuizID(result.QuizID)
			if err != nil {
				return fmt.Errorf("failed to count questions of quiz #%d: %w", result.QuizID, err)
			}

			summaries = append(summaries, UserQuizSummary{
				QuizID:         result.QuizID,
				QuizTitle:      title,
				Score:          result.Score,
				TotalQuestions: total,
				Percentage:     scorePercentage(result.Score, total),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UserResults{UserID: userID, Results: summaries}, nil
}
