package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/repository/gormdb"
	"github.com/yourusername/quiz-api/pkg/database"
)

// newTestDB создает изолированную SQLite базу в памяти со схемой приложения
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.NewSQLiteDB(dsn, "silent")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateSQLite(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestServices(t *testing.T) (*QuizService, *UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	store := gormdb.NewStore(db)
	return NewQuizService(store, nil, time.Minute), NewUserService(store), db
}

// createQuizWithQuestion создает викторину с одним вопросом и возвращает их ID
func createQuizWithQuestion(t *testing.T, s *QuizService, title string, options []string, correct int) (uint, uint) {
	t.Helper()
	ctx := context.Background()
	quiz, err := s.CreateQuiz(ctx, title, "desc")
	require.NoError(t, err)
	question, err := s.AddQuestion(ctx, quiz.ID, "Question of "+title, options, correct)
	require.NoError(t, err)
	return quiz.ID, question.ID
}
