package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	Port        string
	DBType      string
	DBDSN       string
	DataDir     string
	GeminiKey   string
	GeminiModel string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:         getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Port:        getEnv("PORT", "8090"),
			DBType:      getEnv("STORAGE_BACKEND", "file"),
			DBDSN:       getEnv("POSTGRES_DSN", ""),
			DataDir:     getEnv("DATA_DIR", "data"),
			GeminiKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType != "file" && c.DBType != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && c.DataDir == "" {
		return errors.New("File storage requires DATA_DIR to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

// AIEnabled reports whether a Gemini credential is configured. Without one
// the advisory client runs entirely on local fallbacks.
func (c *Config) AIEnabled() bool {
	return c.GeminiKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
