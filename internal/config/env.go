package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Stages recognised by the server
const (
	StageLocal = "local"
	StageDev   = "dev"
	StageProd  = "prod"
)

// ServerConfig holds runtime settings for the HTTP API
type ServerConfig struct {
	Port                  int
	Stage                 string
	LogLevel              string
	RegimesFile           string
	DefaultAssessmentYear string
	CORS                  CORSConfig
}

// CORSConfig lists what browsers may send to the API
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
}

// Addr is the listen address for the configured port
func (sc ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", sc.Port)
}

// IsProduction reports whether the server runs in the prod stage
func (sc ServerConfig) IsProduction() bool {
	return sc.Stage == StageProd
}

// LoadServerConfig reads settings from the environment after loading any
// .env files. Missing .env files are not an error.
func LoadServerConfig(envFiles ...string) (ServerConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	return ServerConfigFromEnv(os.Getenv)
}

// ServerConfigFromEnv builds a ServerConfig from a lookup function
func ServerConfigFromEnv(getenv func(string) string) (ServerConfig, error) {
	cfg := ServerConfig{
		Port:                  8080,
		Stage:                 StageLocal,
		LogLevel:              "info",
		RegimesFile:           strings.TrimSpace(getenv("TAXREGIME_REGIMES_FILE")),
		DefaultAssessmentYear: strings.TrimSpace(getenv("TAXREGIME_ASSESSMENT_YEAR")),
	}

	if port := strings.TrimSpace(getenv("TAXREGIME_PORT")); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return ServerConfig{}, fmt.Errorf("invalid TAXREGIME_PORT %q", port)
		}
		cfg.Port = p
	}

	if stage := strings.TrimSpace(getenv("TAXREGIME_STAGE")); stage != "" {
		switch stage {
		case StageLocal, StageDev, StageProd:
			cfg.Stage = stage
		default:
			return ServerConfig{}, fmt.Errorf("invalid TAXREGIME_STAGE %q: must be one of %s, %s, %s", stage, StageLocal, StageDev, StageProd)
		}
	}

	if level := strings.TrimSpace(getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	cfg.CORS = CORSConfig{
		AllowedOrigins:   splitList(getenv("CORS_ALLOWED_ORIGINS"), []string{"http://localhost:3000", "http://localhost:5173"}),
		AllowedMethods:   splitList(getenv("CORS_ALLOWED_METHODS"), []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders:   splitList(getenv("CORS_ALLOWED_HEADERS"), []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}),
		ExposedHeaders:   splitList(getenv("CORS_EXPOSED_HEADERS"), []string{"X-Request-ID"}),
		AllowCredentials: getenv("CORS_ALLOW_CREDENTIALS") == "true",
	}
	return cfg, nil
}

func splitList(raw string, fallback []string) []string {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
