package main

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

type seedQuestion struct {
	text    string
	options []string
	correct int
}

type seedQuiz struct {
	title       string
	description string
	questions   []seedQuestion
}

var mathQuiz = seedQuiz{
	title:       "Math",
	description: "Basic arithmetic",
	questions: []seedQuestion{
		{"What is 2+2?", []string{"3", "4", "5", "6"}, 1},
		{"What is 3*3?", []string{"6", "9", "12"}, 1},
		{"What is 10/2?", []string{"2", "5", "8", "20"}, 1},
	},
}

// seedDemo создает пользователя и викторину с вопросами в одной транзакции.
// Существующие пользователь и викторина не трогаются, поэтому повторный запуск безопасен.
func seedDemo(ctx context.Context, store repository.Store, userName, password string, quiz seedQuiz) error {
	return store.Transaction(ctx, func(repos repository.Repositories) error {
		if err := seedUser(repos, userName, password); err != nil {
			return err
		}

		if _, err := repos.Quizzes().GetByTitle(quiz.title); err == nil {
			log.Printf("[Seed] Викторина %q уже существует", quiz.title)
			return nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		q := &entity.Quiz{Title: quiz.title, Description: quiz.description, CreatedAt: time.Now().UTC()}
		if err := repos.Quizzes().Create(q); err != nil {
			return fmt.Errorf("failed to create quiz %q: %w", quiz.title, err)
		}

		for _, sq := range quiz.questions {
			if !entity.IsValidCorrectIndex(sq.correct, len(sq.options)) {
				return fmt.Errorf("question %q: correct index %d out of range", sq.text, sq.correct)
			}
			question := &entity.Question{QuizID: q.ID, QuestionText: sq.text, CreatedAt: time.Now().UTC()}
			if err := repos.Questions().Create(question); err != nil {
				return fmt.Errorf("failed to create question %q: %w", sq.text, err)
			}
			if err := repos.Questions().CreateOptions(entity.NewOptions(question.ID, sq.options, sq.correct)); err != nil {
				return fmt.Errorf("failed to create options for %q: %w", sq.text, err)
			}
		}

		log.Printf("[Seed] Создана викторина ID=%d, вопросов %d", q.ID, len(quiz.questions))
		return nil
	})
}

func seedUser(repos repository.Repositories, name, password string) error {
	_, err := repos.Users().GetByName(name)
	switch {
	case err == nil:
		log.Printf("[Seed] Пользователь %q уже существует", name)
		return nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return err
	}
	return repos.Users().Create(&entity.User{Name: name, Password: password})
}
