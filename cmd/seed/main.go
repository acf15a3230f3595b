package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/repository/gormdb"
	"github.com/yourusername/quiz-api/pkg/database"
)

// Заполняет базу демонстрационными данными: пользователь и викторина "Math".
func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	userName := flag.String("user", "demo", "имя демонстрационного пользователя")
	password := flag.String("password", "demo-password", "пароль демонстрационного пользователя")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seedDemo(ctx, gormdb.NewStore(db), *userName, *password, mathQuiz); err != nil {
		log.Printf("Failed to seed: %v", err)
		os.Exit(1)
	}
	log.Println("[Seed] Готово")
}
