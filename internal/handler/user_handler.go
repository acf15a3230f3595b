package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/service"
)

const resultsSheetName = "Results"

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUserResults возвращает итоги пользователя по всем викторинам
// GET /user/:id/results
func (h *UserHandler) GetUserResults(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	res, err := h.userService.GetUserResults(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, "UserHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResultsResponse(res))
}

// ExportUserResults экспортирует итоги пользователя в Excel
// GET /user/:id/results/export
func (h *UserHandler) ExportUserResults(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	res, err := h.userService.GetUserResults(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, "UserHandler", err)
		return
	}

	f, err := buildResultsWorkbook(res)
	if err != nil {
		log.Printf("[UserHandler] Ошибка создания Excel файла: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("user_%d_results_%s", userID, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[UserHandler] Ошибка записи Excel в response: %v", err)
	}
}

// buildResultsWorkbook формирует книгу с одним листом: заголовок и по строке на викторину.
// Используется StreamWriter, как для больших выгрузок.
func buildResultsWorkbook(res *service.UserResults) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", resultsSheetName); err != nil {
		f.Close()
		return nil, err
	}

	sw, err := f.NewStreamWriter(resultsSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	headers := []interface{}{"Quiz ID", "Quiz", "Score", "Total questions", "Percentage"}
	if err := sw.SetRow("A1", headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range res.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2) // 1 строка - заголовки
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{r.QuizID, sanitizeForExcel(r.QuizTitle), r.Score, r.TotalQuestions, r.Percentage}
		if err := sw.SetRow(cell, row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to flush stream writer: %w", err)
	}
	return f, nil
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
