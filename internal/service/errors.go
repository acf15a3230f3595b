package service

import (
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Ошибки доменных сервисов. Сообщения возвращаются клиенту как есть.
var (
	ErrQuizNotFound        = apperrors.New(apperrors.ErrNotFound, "Quiz not found")
	ErrQuestionNotFound    = apperrors.New(apperrors.ErrNotFound, "Question not found in this quiz")
	ErrQuizTitleExists     = apperrors.New(apperrors.ErrConflict, "Quiz with this title already exists")
	ErrAlreadyAttempted    = apperrors.New(apperrors.ErrConflict, "You have already attempted this question")
	ErrInvalidCorrectIndex = apperrors.New(apperrors.ErrValidation, "Invalid correct_answer index")
	ErrNoCorrectOption     = apperrors.New(apperrors.ErrInternal, "No correct option found for this question")
)
