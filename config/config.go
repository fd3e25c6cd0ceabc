package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	MongoURI string
	MongoDB  string

	JWTSecret string
	TokenTTL  time.Duration

	MaxFileSize  int64
	PhotoBaseURL string

	LLMServiceURI   string
	LLMTimeout      time.Duration
	IdentityPolicy  string
	RedisAddr       string
	RateLimitPerMin int

	QueryGenPort string
	OllamaURL    string
	OllamaModel  string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			log.Printf("invalid int for %s, using fallback %d", key, fallback)
			return fallback
		}
		return parsed
	}
	return fallback
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Env:      getEnv("APP_ENV", "dev"),
		Port:     getEnv("PORT", "4000"),
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "clp_alumni"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  durationEnv("TOKEN_TTL", 24*time.Hour),

		MaxFileSize:  intEnv("MAX_FILE_SIZE", 16<<20),
		PhotoBaseURL: getEnv("PHOTO_BASE_URL", "http://localhost:4000/photo"),

		LLMServiceURI:   getEnv("LLM_SERVICE_URI", "http://localhost:5000/api/llm"),
		LLMTimeout:      durationEnv("LLM_TIMEOUT", 60*time.Second),
		IdentityPolicy:  getEnv("IDENTITY_POLICY", "strict"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RateLimitPerMin: int(intEnv("RATE_LIMIT_PER_MIN", 30)),

		QueryGenPort: getEnv("QUERYGEN_PORT", "5000"),
		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "mistral"),
	}
}
