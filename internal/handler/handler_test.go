package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/repository/gormdb"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T, limiter *middleware.RateLimiter) *testAPI {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.NewSQLiteDB(dsn, "silent")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateSQLite(db))
	t.Cleanup(func() { _ = database.Close(db) })

	store := gormdb.NewStore(db)
	router := NewRouter(RouterOptions{
		QuizHandler:     NewQuizHandler(service.NewQuizService(store, nil, time.Minute)),
		UserHandler:     NewUserHandler(service.NewUserService(store)),
		RateLimiter:     limiter,
		AnswerRateLimit: middleware.AnswerRateLimitConfig(2, time.Minute),
	})
	return &testAPI{router: router, db: db}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testAPI) createQuiz(t *testing.T, title string) uint {
	t.Helper()
	w := a.do(t, http.MethodPost, "/create-quiz", gin.H{"title": title, "description": "Test"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

func (a *testAPI) addQuestion(t *testing.T, quizID uint, text string, options []string, correct int) uint {
	t.Helper()
	w := a.do(t, http.MethodPost, fmt.Sprintf("/quiz/%d/question", quizID), gin.H{
		"question_text":  text,
		"options":        options,
		"correct_answer": correct,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return uint(decode(t, w)["question_id"].(float64))
}

func (a *testAPI) answer(t *testing.T, quizID, questionID, userID uint, answer string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodPost, fmt.Sprintf("/quiz/%d/answer", quizID), gin.H{
		"question_id": questionID,
		"answer":      answer,
		"user_id":     userID,
	})
}

func TestRoot(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Quiz App API"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestCreateQuizEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, http.MethodPost, "/create-quiz", gin.H{"title": "Math Quiz", "description": "Basic math questions"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Quiz created successfully", body["message"])
	assert.Equal(t, "Math Quiz", body["title"])
	assert.NotZero(t, body["id"])

	// Повторное название
	w = api.do(t, http.MethodPost, "/create-quiz", gin.H{"title": "Math Quiz", "description": "again"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Quiz with this title already exists"}`, w.Body.String())
}

func TestCreateQuizEndpoint_InvalidBody(t *testing.T) {
	api := newTestAPI(t, nil)

	for name, body := range map[string]interface{}{
		"missing title": gin.H{"description": "x"},
		"blank title":   gin.H{"title": "   ", "description": "x"},
		"wrong type":    gin.H{"title": 42},
	} {
		t.Run(name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/create-quiz", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w), "error")
		})
	}
}

func TestCreateQuizEndpoint_TitleAndDescriptionLimits(t *testing.T) {
	api := newTestAPI(t, nil)

	tests := []struct {
		name        string
		title       string
		description string
		wantCode    int
	}{
		{"empty title", "", "d", http.StatusBadRequest},
		{"whitespace title", " \t ", "d", http.StatusBadRequest},
		{"title at column limit", strings.Repeat("t", 255), "d", http.StatusOK},
		{"title over column limit", strings.Repeat("u", 256), "d", http.StatusBadRequest},
		{"empty description", "No description", "", http.StatusOK},
		{"description at column limit", "Long description", strings.Repeat("d", 1000), http.StatusOK},
		{"description over column limit", "Too long description", strings.Repeat("d", 1001), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/create-quiz", gin.H{"title": tt.title, "description": tt.description})
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}

	var quizzes int64
	require.NoError(t, api.db.Model(&entity.Quiz{}).Count(&quizzes).Error)
	assert.Equal(t, int64(3), quizzes, "Отклоненные запросы ничего не сохраняют")
}

func TestGetQuizEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Math Quiz")

	w := api.do(t, http.MethodGet, fmt.Sprintf("/quiz/%d", quizID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(quizID), body["id"])
	assert.Equal(t, "Math Quiz", body["title"])
	assert.Equal(t, "Test", body["description"])
	assert.NotEmpty(t, body["created_at"])

	w = api.do(t, http.MethodGet, "/quiz/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Quiz not found"}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/quiz/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid id"}`, w.Body.String())
}

func TestAddQuestionEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Science Quiz")

	w := api.do(t, http.MethodPost, fmt.Sprintf("/quiz/%d/question", quizID), gin.H{
		"question_text":  "What is the chemical symbol for water?",
		"options":        []string{"H2O", "CO2", "O2", "NaCl"},
		"correct_answer": 0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Question created successfully", body["message"])
	assert.Equal(t, float64(quizID), body["quiz_id"])
	assert.Contains(t, body, "question_id")

	// Викторина не существует
	w = api.do(t, http.MethodPost, "/quiz/999/question", gin.H{
		"question_text":  "What is 2+2?",
		"options":        []string{"3", "4"},
		"correct_answer": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Quiz not found"}`, w.Body.String())

	// Индекс вне диапазона
	w = api.do(t, http.MethodPost, fmt.Sprintf("/quiz/%d/question", quizID), gin.H{
		"question_text":  "Test question?",
		"options":        []string{"A", "B"},
		"correct_answer": 5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "Invalid correct_answer index")

	// correct_answer отсутствует
	w = api.do(t, http.MethodPost, fmt.Sprintf("/quiz/%d/question", quizID), gin.H{
		"question_text": "Test question?",
		"options":       []string{"A", "B"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitAnswerEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Test Quiz")
	questionID := api.addQuestion(t, quizID, "What is 2+2?", []string{"3", "4", "5", "6"}, 1)

	// Неправильный ответ
	w := api.answer(t, quizID, questionID, 2, "3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Incorrect answer","is_correct":false,"correct_answer":"4","current_score":0}`, w.Body.String())

	// Правильный ответ
	w = api.answer(t, quizID, questionID, 1, "4")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Correct answer!","is_correct":true,"current_score":1}`, w.Body.String())

	// Повторная попытка
	w = api.answer(t, quizID, questionID, 1, "4")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "already attempted")
}

func TestSubmitAnswerEndpoint_CaseInsensitive(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Capitals")
	questionID := api.addQuestion(t, quizID, "What is the capital of France?", []string{"London", "Paris", "Berlin", "Madrid"}, 1)

	w := api.answer(t, quizID, questionID, 1, "PARIS")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["is_correct"])
}

func TestSubmitAnswerEndpoint_Errors(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Test Quiz")

	w := api.answer(t, 999, 1, 1, "4")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Quiz not found"}`, w.Body.String())

	w = api.answer(t, quizID, 999, 1, "4")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Question not found in this quiz"}`, w.Body.String())

	// Вопрос без правильного варианта
	question := &entity.Question{QuizID: quizID, QuestionText: "broken"}
	require.NoError(t, api.db.Create(question).Error)
	require.NoError(t, api.db.Create(&entity.Option{QuestionID: question.ID, OptionText: "a"}).Error)

	w = api.answer(t, quizID, question.ID, 1, "a")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"No correct option found for this question"}`, w.Body.String())

	// Некорректное тело запроса
	w = api.do(t, http.MethodPost, fmt.Sprintf("/quiz/%d/answer", quizID), gin.H{"answer": "4"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, fmt.Sprintf("/quiz/%d/answer", quizID), gin.H{"question_id": question.ID, "answer": "a"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "user_id обязателен")
}

func TestSubmitAnswerEndpoint_ZeroIDs(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Zero")
	questionID := api.addQuestion(t, quizID, "What is 2+2?", []string{"3", "4"}, 1)

	// question_id 0 проходит валидацию и не находится в викторине
	w := api.answer(t, quizID, 0, 1, "4")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Question not found in this quiz"}`, w.Body.String())

	// user_id 0 - обычный идентификатор пользователя
	w = api.answer(t, quizID, questionID, 0, "4")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["is_correct"])

	w = api.do(t, http.MethodGet, "/user/0/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["results"], 1)
}

func TestSubmitAnswerEndpoint_LongAnswer(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Essay")
	longOption := strings.Repeat("x", 600)
	questionID := api.addQuestion(t, quizID, strings.Repeat("Long question? ", 100), []string{"short", longOption}, 0)

	answer := strings.Repeat("y", 600)
	w := api.answer(t, quizID, questionID, 1, answer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, false, body["is_correct"])
	assert.Equal(t, "short", body["correct_answer"])

	var attempt entity.Attempt
	require.NoError(t, api.db.Where("question_id = ?", questionID).First(&attempt).Error)
	assert.Equal(t, answer, attempt.SelectedOption)

	w = api.do(t, http.MethodGet, fmt.Sprintf("/quiz/%d/questions", quizID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), longOption)
}

func TestSubmitAnswerEndpoint_RateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	api := newTestAPI(t, middleware.NewRateLimiter(client))
	quizID := api.createQuiz(t, "Limited")
	q1 := api.addQuestion(t, quizID, "q1", []string{"a", "b"}, 0)
	q2 := api.addQuestion(t, quizID, "q2", []string{"a", "b"}, 0)
	q3 := api.addQuestion(t, quizID, "q3", []string{"a", "b"}, 0)

	assert.Equal(t, http.StatusOK, api.answer(t, quizID, q1, 1, "a").Code)
	assert.Equal(t, http.StatusOK, api.answer(t, quizID, q2, 1, "a").Code)

	w := api.answer(t, quizID, q3, 1, "a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Отклоненный запрос не создает попытку
	var attempts int64
	require.NoError(t, api.db.Model(&entity.Attempt{}).Count(&attempts).Error)
	assert.Equal(t, int64(2), attempts)
}

func TestListQuestionsEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Test Quiz")
	api.addQuestion(t, quizID, "What is 2+2?", []string{"3", "4", "5", "6"}, 1)
	api.addQuestion(t, quizID, "What is the capital of France?", []string{"London", "Berlin", "Paris", "Madrid"}, 2)

	w := api.do(t, http.MethodGet, fmt.Sprintf("/quiz/%d/questions", quizID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		QuizID    uint `json:"quiz_id"`
		Questions []struct {
			ID           uint                     `json:"id"`
			QuestionText string                   `json:"question_text"`
			Options      []map[string]interface{} `json:"options"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, quizID, body.QuizID)
	require.Len(t, body.Questions, 2)
	assert.Equal(t, "What is 2+2?", body.Questions[0].QuestionText)
	require.Len(t, body.Questions[0].Options, 4)
	for _, opt := range body.Questions[0].Options {
		assert.Len(t, opt, 2, "Вариант содержит только id и text")
		assert.Contains(t, opt, "id")
		assert.Contains(t, opt, "text")
	}
	assert.Equal(t, "Paris", body.Questions[1].Options[2]["text"])

	w = api.do(t, http.MethodGet, "/quiz/999/questions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserResultsEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)
	quizID := api.createQuiz(t, "Test Quiz")
	questionID := api.addQuestion(t, quizID, "What is 2+2?", []string{"3", "4", "5", "6"}, 1)
	require.Equal(t, http.StatusOK, api.answer(t, quizID, questionID, 1, "4").Code)

	w := api.do(t, http.MethodGet, "/user/1/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(
		`{"user_id":1,"results":[{"quiz_id":%d,"quiz_title":"Test Quiz","score":1,"total_questions":1,"percentage":100}]}`,
		quizID), w.Body.String())

	// Пользователь без результатов
	w = api.do(t, http.MethodGet, "/user/2/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":2,"results":[]}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/user/x/results", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportUserResultsEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)
	mathID := api.createQuiz(t, "Math")
	q := api.addQuestion(t, mathID, "What is 2+2?", []string{"3", "4"}, 1)
	formulaID := api.createQuiz(t, "=SUM(A1:A2)")
	fq := api.addQuestion(t, formulaID, "?", []string{"a", "b"}, 0)
	require.Equal(t, http.StatusOK, api.answer(t, mathID, q, 1, "4").Code)
	require.Equal(t, http.StatusOK, api.answer(t, formulaID, fq, 1, "b").Code)

	w := api.do(t, http.MethodGet, "/user/1/results/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "user_1_results_")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(resultsSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3, "Заголовок и по строке на результат")
	assert.Equal(t, []string{"Quiz ID", "Quiz", "Score", "Total questions", "Percentage"}, rows[0])
	assert.Equal(t, "Math", rows[1][1])
	assert.Equal(t, "1", rows[1][2])
	assert.Equal(t, "100", rows[1][4])
	assert.Equal(t, "'=SUM(A1:A2)", rows[2][1])
	assert.Equal(t, "0", rows[2][2])
}

func TestSanitizeForExcel(t *testing.T) {
	assert.Equal(t, "", sanitizeForExcel(""))
	assert.Equal(t, "Math", sanitizeForExcel("Math"))
	assert.Equal(t, "'=1+1", sanitizeForExcel("=1+1"))
	assert.Equal(t, "'+7", sanitizeForExcel("+7"))
	assert.Equal(t, "'-7", sanitizeForExcel("-7"))
	assert.Equal(t, "'@cmd", sanitizeForExcel("@cmd"))
}
