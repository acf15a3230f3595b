package dto

import "github.com/yourusername/quiz-api/internal/service"

// UserResultDTO итог пользователя по одной викторине
type UserResultDTO struct {
	QuizID         uint    `json:"quiz_id"`
	QuizTitle      string  `json:"quiz_title"`
	Score          int     `json:"score"`
	TotalQuestions int64   `json:"total_questions"`
	Percentage     float64 `json:"percentage"` // от текущего количества вопросов
}

// UserResultsResponse итоги пользователя по всем викторинам
type UserResultsResponse struct {
	UserID  uint            `json:"user_id"`
	Results []UserResultDTO `json:"results"`
}

// NewUserResultsResponse создает DTO для итогов пользователя
func NewUserResultsResponse(res *service.UserResults) *UserResultsResponse {
	results := make([]UserResultDTO, len(res.Results))
	for i, r := range res.Results {
		results[i] = UserResultDTO{
			QuizID:         r.QuizID,
			QuizTitle:      r.QuizTitle,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     r.Percentage,
		}
	}
	return &UserResultsResponse{UserID: res.UserID, Results: results}
}
