package entity

import (
	"strings"
	"time"
)

// Question представляет вопрос викторины
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuizID       uint      `gorm:"not null;index" json:"quiz_id"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	Options      []Option  `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Option представляет вариант ответа на вопрос.
// Порядок вариантов определяется порядком вставки (ID).
type Option struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	OptionText string    `gorm:"type:text;not null" json:"option_text"`
	IsCorrect  bool      `gorm:"column:correct_answer;not null;default:false" json:"-"` // Скрыто от клиента
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Option) TableName() string {
	return "question_options"
}

// NewOptions строит варианты ответа в порядке ввода, помечая правильным только correctIndex.
// Диапазон correctIndex проверяет вызывающий код.
func NewOptions(questionID uint, texts []string, correctIndex int) []Option {
	options := make([]Option, len(texts))
	for i, text := range texts {
		options[i] = Option{
			QuestionID: questionID,
			OptionText: text,
			IsCorrect:  i == correctIndex,
		}
	}
	return options
}

// IsValidCorrectIndex проверяет, что индекс правильного ответа попадает в [0, optionsCount)
func IsValidCorrectIndex(index, optionsCount int) bool {
	return index >= 0 && index < optionsCount
}

// Matches сравнивает ответ пользователя с текстом варианта без учета регистра
// и пробелов по краям.
func (o *Option) Matches(answer string) bool {
	return normalizeAnswer(answer) == normalizeAnswer(o.OptionText)
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
