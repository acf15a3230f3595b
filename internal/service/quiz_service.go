package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuizService предоставляет методы для работы с викторинами, вопросами и ответами.
// Каждая операция выполняется в одной транзакции Store.
type QuizService struct {
	store        repository.Store
	cacheRepo    repository.CacheRepository // nil, если Redis отключен
	quizCacheTTL time.Duration
}

// NewQuizService создает новый сервис викторин. cacheRepo может быть nil.
func NewQuizService(
	store repository.Store,
	cacheRepo repository.CacheRepository,
	quizCacheTTL time.Duration,
) *QuizService {
	return &QuizService{
		store:        store,
		cacheRepo:    cacheRepo,
		quizCacheTTL: quizCacheTTL,
	}
}

// CreateQuiz создает новую викторину с уникальным названием
func (s *QuizService) CreateQuiz(ctx context.Context, title, description string) (*entity.Quiz, error) {
	quiz := &entity.Quiz{
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		_, err := repos.Quizzes().GetByTitle(title)
		if err == nil {
			return ErrQuizTitleExists
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check quiz title: %w", err)
		}

		if err := repos.Quizzes().Create(quiz); err != nil {
			// Параллельное создание с тем же названием ловит уникальный индекс
			if errors.Is(err, apperrors.ErrConflict) {
				return ErrQuizTitleExists
			}
			return fmt.Errorf("failed to create quiz: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[QuizService] Создана викторина ID=%d title=%q", quiz.ID, quiz.Title)
	return quiz, nil
}

// GetQuiz возвращает викторину по ID. При наличии кеша викторина читается через Redis:
// викторины не изменяются после создания, поэтому запись в кеше не устаревает.
func (s *QuizService) GetQuiz(ctx context.Context, quizID uint) (*entity.Quiz, error) {
	cacheKey := quizCacheKey(quizID)
	if s.cacheRepo != nil {
		var cached entity.Quiz
		err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] Ошибка чтения кеша %s: %v", cacheKey, err)
		}
	}

	var quiz *entity.Quiz
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		quiz, err = getQuiz(repos, quizID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(ctx, cacheKey, quiz, s.quizCacheTTL); err != nil {
			log.Printf("[QuizService] Ошибка записи кеша %s: %v", cacheKey, err)
		}
	}

	return quiz, nil
}

// AddQuestion добавляет вопрос с вариантами ответа. Вариант с индексом correctIndex
// становится единственным правильным. Вопрос и варианты сохраняются атомарно.
func (s *QuizService) AddQuestion(ctx context.Context, quizID uint, questionText string, options []string, correctIndex int) (*entity.Question, error) {
	var question *entity.Question

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		if _, err := getQuiz(repos, quizID); err != nil {
			return err
		}

		if !entity.IsValidCorrectIndex(correctIndex, len(options)) {
			return ErrInvalidCorrectIndex
		}

		question = &entity.Question{
			QuizID:       quizID,
			QuestionText: questionText,
			CreatedAt:    time.Now().UTC(),
		}
		if err := repos.Questions().Create(question); err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}

		opts := entity.NewOptions(question.ID, options, correctIndex)
		if err := repos.Questions().CreateOptions(opts); err != nil {
			return fmt.Errorf("failed to create options for question #%d: %w", question.ID, err)
		}
		question.Options = opts
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[QuizService] Добавлен вопрос ID=%d в викторину ID=%d (%d вариантов)", question.ID, quizID, len(options))
	return question, nil
}

// SubmitAnswer принимает ответ пользователя на вопрос викторины.
// Каждый пользователь отвечает на вопрос ровно один раз. Попытка сохраняется как есть,
// правильность определяется без учета регистра и пробелов по краям, счет растет на 1
// только за правильный ответ. Ошибка на любом шаге откатывает все изменения.
func (s *QuizService) SubmitAnswer(ctx context.Context, quizID, questionID, userID uint, answer string) (*AnswerResult, error) {
	var result *AnswerResult

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		if _, err := getQuiz(repos, quizID); err != nil {
			return err
		}

		if _, err := repos.Questions().GetByIDInQuiz(quizID, questionID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return fmt.Errorf("failed to get question #%d: %w", questionID, err)
		}

		attempted, err := repos.Attempts().Exists(quizID, userID, questionID)
		if err != nil {
			return fmt.Errorf("failed to check attempt: %w", err)
		}
		if attempted {
			return ErrAlreadyAttempted
		}

		attempt := &entity.Attempt{
			QuizID:         quizID,
			UserID:         userID,
			QuestionID:     questionID,
			SelectedOption: answer,
			CreatedAt:      time.Now().UTC(),
		}
		if err := repos.Attempts().Create(attempt); err != nil {
			// Параллельная отправка того же ответа ловит уникальный индекс
			if errors.Is(err, apperrors.ErrConflict) {
				return ErrAlreadyAttempted
			}
			return fmt.Errorf("failed to save attempt: %w", err)
		}

		correctOption, err := repos.Questions().GetCorrectOption(questionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				log.Printf("[QuizService] У вопроса ID=%d нет правильного варианта", questionID)
				return ErrNoCorrectOption
			}
			return fmt.Errorf("failed to get correct option: %w", err)
		}

		isCorrect := correctOption.Matches(answer)

		if err := repos.Results().EnsureExists(quizID, userID); err != nil {
			return fmt.Errorf("failed to create result: %w", err)
		}
		if isCorrect {
			if err := repos.Results().IncrementScore(quizID, userID, 1); err != nil {
				return fmt.Errorf("failed to update score: %w", err)
			}
		}
		userResult, err := repos.Results().GetUserResult(quizID, userID)
		if err != nil {
			return fmt.Errorf("failed to read result: %w", err)
		}

		result = &AnswerResult{
			IsCorrect:    isCorrect,
			CurrentScore: userResult.Score,
		}
		if !isCorrect {
			correctText := correctOption.OptionText
			result.CorrectAnswer = &correctText
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListQuestions возвращает вопросы викторины с вариантами ответа (без признака правильности)
func (s *QuizService) ListQuestions(ctx context.Context, quizID uint) (*QuizQuestions, error) {
	var questions []entity.Question

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		if _, err := getQuiz(repos, quizID); err != nil {
			return err
		}
		var err error
		questions, err = repos.Questions().GetByQuizIDWithOptions(quizID)
		if err != nil {
			return fmt.Errorf("failed to get questions of quiz #%d: %w", quizID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	views := make([]QuestionWithOptions, len(questions))
	for i, q := range questions {
		options := make([]OptionView, len(q.Options))
		for j, opt := range q.Options {
			options[j] = OptionView{ID: opt.ID, Text: opt.OptionText}
		}
		views[i] = QuestionWithOptions{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      options,
		}
	}

	return &QuizQuestions{QuizID: quizID, Questions: views}, nil
}

// getQuiz возвращает викторину или ErrQuizNotFound
func getQuiz(repos repository.Repositories, quizID uint) (*entity.Quiz, error) {
	quiz, err := repos.Quizzes().GetByID(quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz #%d: %w", quizID, err)
	}
	return quiz, nil
}

func quizCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d", quizID)
}
