package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// handleServiceError отправляет HTTP ответ, соответствующий категории ошибки сервиса.
// Конфликты отдаются как 400, так же как и ошибки валидации.
func handleServiceError(c *gin.Context, component string, err error) {
	var appErr *apperrors.Error
	known := errors.As(err, &appErr)

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case known:
		// Нарушение целостности данных: сообщение сервиса отдается клиенту
		log.Printf("[%s] Ошибка целостности данных: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
	default:
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
