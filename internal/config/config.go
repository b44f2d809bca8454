package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	JWTSecret        string
	AIAPIKey         string
	AIURL            string
	AIModel          string
	AITimeoutSeconds int
	UploadDir        string
	ArchiveUploads   bool
	MaxUploadMB      int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "studycards.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		JWTSecret:        envOr("JWT_SECRET", ""),
		AIAPIKey:         envOr("OPENROUTER_API_KEY", ""),
		AIURL:            envOr("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		AIModel:          envOr("OPENROUTER_MODEL", "mistralai/devstral-small-2505"),
		AITimeoutSeconds: envIntOr("AI_TIMEOUT_SECONDS", 60),
		UploadDir:        envOr("UPLOAD_DIR", "uploads"),
		ArchiveUploads:   envBoolOr("ARCHIVE_UPLOADS", false),
		MaxUploadMB:      envIntOr("MAX_UPLOAD_MB", 16),
	}
}

// Validate checks the configuration for values the server cannot run without.
// The AI key is deliberately not required here: the service starts without it
// and upload requests fail with a configuration error instead.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET cannot be empty")
	}
	if c.AIURL == "" {
		problems = append(problems, "OPENROUTER_URL cannot be empty")
	}
	if c.AIModel == "" {
		problems = append(problems, "OPENROUTER_MODEL cannot be empty")
	}
	if c.AITimeoutSeconds <= 0 {
		problems = append(problems, "AI_TIMEOUT_SECONDS must be positive")
	}
	if c.MaxUploadMB <= 0 {
		problems = append(problems, "MAX_UPLOAD_MB must be positive")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
