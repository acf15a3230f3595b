package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrConflict используется для конфликтов состояния: дубликат названия викторины,
	// повторная попытка ответа на тот же вопрос.
	ErrConflict = errors.New("resource state conflict")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrInternal означает нарушение целостности данных (например, у вопроса нет правильного варианта).
	ErrInternal = errors.New("internal error")
)
