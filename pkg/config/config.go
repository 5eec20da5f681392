package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	RAG      RAGConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LLMConfig selects the completion provider. Groq wins when both keys are
// set, same as the original deployment.
type LLMConfig struct {
	Provider    string // "groq", "openai" or "mock"
	OpenAIKey   string
	GroqKey     string
	OpenAIModel string
	GroqModel   string
}

type RAGConfig struct {
	EmbeddingModel string
	EmbeddingDim   int
	TopK           int
	MaxTopK        int
}

// ErrNoLLMProvider is returned when neither GROQ_API_KEY nor OPENAI_API_KEY
// is configured and the mock provider was not requested explicitly.
var ErrNoLLMProvider = errors.New("neither GROQ_API_KEY nor OPENAI_API_KEY is set")

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine: environment variables are used directly
	// (useful for Docker/K8s).

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "60"))
	ragTopK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "4"))
	ragMaxTopK, _ := strconv.Atoi(getEnv("RAG_MAX_TOP_K", "10"))
	embedDim, _ := strconv.Atoi(getEnv("RAG_EMBEDDING_DIM", "1536"))

	llm := LLMConfig{
		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		GroqKey:     getEnv("GROQ_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GroqModel:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
	}
	switch {
	case getEnv("LLM_PROVIDER", "") == "mock":
		llm.Provider = "mock"
	case llm.GroqKey != "":
		llm.Provider = "groq"
	case llm.OpenAIKey != "":
		llm.Provider = "openai"
	default:
		return nil, ErrNoLLMProvider
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "corep_assist"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		LLM: llm,
		RAG: RAGConfig{
			EmbeddingModel: getEnv("RAG_EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDim:   embedDim,
			TopK:           ragTopK,
			MaxTopK:        ragMaxTopK,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// Model returns the completion model name for the selected provider.
func (c *LLMConfig) Model() string {
	switch c.Provider {
	case "groq":
		return c.GroqModel
	case "mock":
		return "mock"
	default:
		return c.OpenAIModel
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
