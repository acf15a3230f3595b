package helper

import (
	"github.com/yourusername/quiz-api/internal/service"
)

// QuestionOption представляет вариант ответа для фронтенда
type QuestionOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// ConvertOptions преобразует варианты ответа сервиса в объекты с id и text.
// Признак правильности клиенту не передается.
func ConvertOptions(options []service.OptionView) []QuestionOption {
	converted := make([]QuestionOption, len(options))
	for i, opt := range options {
		converted[i] = QuestionOption{ID: opt.ID, Text: opt.Text}
	}
	return converted
}
