package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort           = "9191"
	defaultCompDifficulty = 3
)

type Config struct {
	Stage          string
	Port           string
	DatabaseUrl    string
	CompDifficulty int
	// 0 seeds from the clock.
	GameSeed int64
}

// Load reads .env outside production, then the environment.
func Load(envFiles ...string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, err
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Stage:          os.Getenv("STAGE"),
		Port:           os.Getenv("PORT"),
		DatabaseUrl:    os.Getenv("DATABASE_URL"),
		CompDifficulty: defaultCompDifficulty,
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got %q", cfg.Stage)
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("invalid port %q: %w", cfg.Port, err)
	}

	if raw := os.Getenv("COMP_DIFFICULTY"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || level < 1 || level > 3 {
			return Config{}, fmt.Errorf("COMP_DIFFICULTY must be 1, 2 or 3, got %q", raw)
		}
		cfg.CompDifficulty = level
	}

	if raw := os.Getenv("GAME_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GAME_SEED %q: %w", raw, err)
		}
		cfg.GameSeed = seed
	}

	return cfg, nil
}
