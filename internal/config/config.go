package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Поддерживаемые драйверы базы данных
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // секунды
	WriteTimeout int    `mapstructure:"write_timeout"` // секунды
}

// DatabaseConfig содержит настройки подключения к базе данных.
// Driver "postgres" использует Host/Port/User/Password/DBName/SSLMode, "sqlite" - Path.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
	// LogLevel уровень логгера gorm: silent, error, warn, info
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Enabled включает кеш викторин и rate limiting ответов. Без Redis сервис работает только с БД.
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Для 'single' используется первый адрес.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // миллисекунды
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // миллисекунды
}

// CacheConfig содержит настройки кеширования
type CacheConfig struct {
	QuizTTL time.Duration `mapstructure:"quiz_ttl"`
}

// RateLimitConfig ограничивает частоту отправки ответов с одного IP
type RateLimitConfig struct {
	AnswerMaxRequests int           `mapstructure:"answer_max_requests"`
	AnswerWindow      time.Duration `mapstructure:"answer_window"`
}

// CORSConfig содержит список разрешенных источников
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения.
// Отсутствие файла не является ошибкой.
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Driver: %s", cfg.Database.Driver)
		if cfg.Database.Driver == DriverSQLite {
			log.Printf("Database Path: %s", cfg.Database.Path)
		} else {
			log.Printf("Database Host: %s:%s, Name: %s, User: %s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.User)
		}
		log.Printf("Redis Enabled: %t, Mode: %s", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
		if os.Getenv("GIN_MODE") == "release" && c.Database.Password == "" {
			return fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("sqlite database path is required (check DATABASE_PATH env var)")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (expected %q or %q)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" && len(c.Redis.Addrs) == 0 {
		return fmt.Errorf("redis is enabled but no address configured (check REDIS_ADDR or REDIS_ADDRS env vars)")
	}
	if c.RateLimit.AnswerMaxRequests < 0 {
		return fmt.Errorf("rate_limit.answer_max_requests must not be negative")
	}

	return nil
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)

	vip.SetDefault("database.driver", DriverSQLite)
	vip.SetDefault("database.path", "quizapp.db")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.log_level", "warn")

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("cache.quiz_ttl", 10*time.Minute)

	vip.SetDefault("rate_limit.answer_max_requests", 60)
	vip.SetDefault("rate_limit.answer_window", time.Minute)

	vip.SetDefault("cors.allow_origins", []string{"http://localhost:3000", "http://localhost:5173"})
}

// bindEnv привязывает переменные окружения явно
func bindEnv(vip *viper.Viper) {
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	vip.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")

	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.path", "DATABASE_PATH")
	vip.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("cache.quiz_ttl", "CACHE_QUIZ_TTL")

	vip.BindEnv("rate_limit.answer_max_requests", "RATE_LIMIT_ANSWER_MAX_REQUESTS")
	vip.BindEnv("rate_limit.answer_window", "RATE_LIMIT_ANSWER_WINDOW")

	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")
}
