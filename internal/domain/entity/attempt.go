package entity

import (
	"time"
)

// Attempt фиксирует один ответ пользователя на вопрос викторины.
// Уникальный индекс гарантирует не более одной попытки на (quiz_id, user_id, question_id).
type Attempt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	QuizID         uint      `gorm:"not null;uniqueIndex:idx_attempts_quiz_user_question" json:"quiz_id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_attempts_quiz_user_question" json:"user_id"`
	QuestionID     uint      `gorm:"not null;uniqueIndex:idx_attempts_quiz_user_question" json:"question_id"`
	SelectedOption string    `gorm:"type:text;not null;default:''" json:"selected_option"` // Сохраняется как есть
	CreatedAt      time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "attempts"
}
