package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ReadEnv loads a .env file picked by ENV/env. Variables already present
// in the process environment win over the file.
// It returns os.ErrNotExist when the file is missing.
func ReadEnv() error {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))
	if env == "" {
		env = strings.ToLower(strings.TrimSpace(os.Getenv("env")))
	}
	filename := "./.env"
	switch env {
	case "prd", "prod", "production":
		filename = "./.env.production"
	case "dev", "development":
		filename = "./.env.development"
	case "local":
		filename = "./.env.local"
	}
	if _, err := os.Stat(filename); err != nil {
		return err
	}
	return godotenv.Load(filename)
}
