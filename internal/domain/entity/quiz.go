package entity

import (
	"time"
)

// Quiz представляет викторину
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description string     `gorm:"size:1000;not null;default:''" json:"description"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}
