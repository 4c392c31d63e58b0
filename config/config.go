package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// League holds the defaults applied when teams and players are
// generated. Loaded once at startup and passed explicitly; there is no
// process-wide settings cache.
type League struct {
	InitialPlayerValue decimal.Decimal
	InitialTeamBudget  decimal.Decimal
	DefaultCountry     string
	SquadSize          int
}

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration time.Duration
	ServerPort    string
	League        League
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/league"),
		JWTSecret:     getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration: 24 * time.Hour,
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		League: League{
			InitialPlayerValue: getDecimalEnv("INITIAL_PLAYER_VALUE", decimal.NewFromInt(1000000)),
			InitialTeamBudget:  getDecimalEnv("INITIAL_TEAM_BUDGET", decimal.NewFromInt(5000000)),
			DefaultCountry:     getEnv("DEFAULT_COUNTRY", "KE"),
			SquadSize:          20,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return defaultValue
	}
	return d
}
