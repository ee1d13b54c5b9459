package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Quiz        QuizConfig
	CORSOrigins []string
}

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Debug   bool
	LogPath string
}

// Storage drivers accepted by DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver     string
	URL        string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	MaxConns   int32
	SQLitePath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type QuizConfig struct {
	MoviesPath              string
	TimeLimit               time.Duration
	LeaderboardSize         int
	LeaderboardMinQuestions int
}

// LoadConfig reads an optional env file and then the process environment.
// An empty path falls back to ".env".
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = ".env"
	}

	v.SetDefault("APP_NAME", "movie-quiz")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3001")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_DRIVER", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SQLITE_PATH", "quiz_results.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("MOVIES_PATH", "movies.json")
	v.SetDefault("QUIZ_TIME_LIMIT", "15s")
	v.SetDefault("LEADERBOARD_SIZE", 10)
	v.SetDefault("LEADERBOARD_MIN_QUESTIONS", 5)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Env:     v.GetString("APP_ENV"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			URL:        v.GetString("DATABASE_URL"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASS"),
			MaxConns:   v.GetInt32("DB_MAX_CONNS"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Quiz: QuizConfig{
			MoviesPath:              v.GetString("MOVIES_PATH"),
			TimeLimit:               v.GetDuration("QUIZ_TIME_LIMIT"),
			LeaderboardSize:         v.GetInt("LEADERBOARD_SIZE"),
			LeaderboardMinQuestions: v.GetInt("LEADERBOARD_MIN_QUESTIONS"),
		},
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
	}

	if config.Database.Driver == "" {
		config.Database.Driver = config.Database.defaultDriver()
	}

	switch config.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, errors.New("invalid DB_DRIVER " + config.Database.Driver + ": want postgres, sqlite or memory")
	}

	return config, nil
}

// DSN returns DATABASE_URL when set, otherwise a URL built from the DB_* keys.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=disable"
}

// the hosted store wins whenever it has been configured
func (c DatabaseConfig) defaultDriver() string {
	if c.URL != "" || c.Host != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
