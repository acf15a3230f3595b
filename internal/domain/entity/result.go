package entity

// Result хранит накопленный счет пользователя в викторине.
// Одна запись на пару (quiz_id, user_id).
type Result struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	QuizID uint `gorm:"not null;uniqueIndex:idx_results_quiz_user" json:"quiz_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_results_quiz_user;index" json:"user_id"`
	Score  int  `gorm:"not null;default:0" json:"score"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}
