package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port       string `yaml:"port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	// AITimeoutSeconds bounds a single generation call.
	AITimeoutSeconds int `yaml:"ai_timeout_seconds"`
	// AIHistoryWindow is how many recent messages feed the reply prompt.
	AIHistoryWindow int `yaml:"ai_history_window"`
}

func LoadConfig() Config {
	cfg := Config{
		Port:             "4000",
		GeminiModel:      "gemini-2.5-flash",
		AITimeoutSeconds: 30,
		AIHistoryWindow:  20,
	}

	// Optional file config; env vars win over it.
	if data, err := os.ReadFile("config.yaml"); err == nil {
		_ = yaml.Unmarshal(data, &cfg)
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.AITimeoutSeconds = getEnvInt("AI_TIMEOUT_SECONDS", cfg.AITimeoutSeconds)
	cfg.AIHistoryWindow = getEnvInt("AI_HISTORY_WINDOW", cfg.AIHistoryWindow)

	return cfg
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
