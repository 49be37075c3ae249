package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath      string
	DebugPort   string
	LogLevel    string
	Username    string
	ReleasesURL string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:      getEnv("DB_PATH", "clicker.db"),
		DebugPort:   getEnv("DEBUG_PORT", "8090"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Username:    getEnv("PLAYER_USERNAME", "Player"),
		ReleasesURL: getEnv("RELEASES_URL", "https://api.github.com/repos/kwpid/ranked-clicker/releases/latest"),
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("debug_port", cfg.DebugPort).
		Str("log_level", cfg.LogLevel).
		Str("username", cfg.Username).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
