package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	GigaChat GigaChatConfig
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

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Model              string
	Scope              string
	InsecureSkipVerify bool
	// GenerateTimeout bounds a single text-generation call.
	GenerateTimeout time.Duration
}

type RAGConfig struct {
	// ModelDir is where the ONNX sentence-embedding model is stored.
	ModelDir string
	// EmbeddingModel is the HuggingFace name of the sentence-embedding model.
	EmbeddingModel string
	// TopK is the number of ranked passages returned per chat query.
	TopK int
	// RecentLimit is how many recent records are scanned per table.
	RecentLimit int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env is fine, environment variables may be set directly (Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	ragTopK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "3"))
	recentLimit, _ := strconv.Atoi(getEnv("RAG_RECENT_LIMIT", "50"))
	generateTimeout, _ := strconv.Atoi(getEnv("GIGACHAT_GENERATE_TIMEOUT", "60"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

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
			DBName:   getEnv("DB_NAME", "hrcentral"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
			GenerateTimeout:    time.Duration(generateTimeout) * time.Second,
		},
		RAG: RAGConfig{
			ModelDir:       getEnv("RAG_MODEL_DIR", "./models"),
			EmbeddingModel: getEnv("RAG_EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
			TopK:           ragTopK,
			RecentLimit:    recentLimit,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
