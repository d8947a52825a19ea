package config

import (
	"os"
	"sync"
)

type AppConfig struct {
	Env       string
	Port      string
	BaseURL   string
	JWTSecret string
	DBPath    string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

// LoadAppConfig reads the environment once. Call after godotenv / SSM
// have populated the process env.
func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = &AppConfig{
			Env:       getEnv("GO_ENV", "development"),
			Port:      getEnv("PORT", "8080"),
			BaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),
			DBPath:    getEnv("DB_PATH", "talentgate.db"),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
