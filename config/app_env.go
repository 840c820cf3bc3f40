package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/akeren/seam-landing/internal/log"
	"github.com/joho/godotenv"
)

const (
	AppEnvKey  = "APP_ENV"
	dotenvPath = "DOTENV_PATH"
)

// Environment is the normalized deployment environment read from APP_ENV.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTest        Environment = "test"
	EnvProduction  Environment = "production"
)

// ParseEnvironment folds the usual aliases onto the three known
// environments. Anything else (staging, qa) is returned lowercased.
func ParseEnvironment(raw string) Environment {
	env := strings.ToLower(strings.TrimSpace(raw))

	switch env {
	case "", "dev", "development", "local":
		return EnvDevelopment
	case "test", "testing":
		return EnvTest
	case "prod", "production":
		return EnvProduction
	default:
		return Environment(env)
	}
}

func CurrentEnvironment() Environment {
	return ParseEnvironment(os.Getenv(AppEnvKey))
}

func (e Environment) IsProduction() bool {
	return e == EnvProduction
}

// AllowsAutoMigrate reports whether the server may create the schema itself
// on boot. Shared environments must go through `cli migrate`.
func (e Environment) AllowsAutoMigrate() bool {
	return e == EnvDevelopment || e == EnvTest
}

// InitializeEnvFile loads DOTENV_PATH (default .env) without overriding
// variables already present in the process environment.
func InitializeEnvFile(logger *log.Logger) {
	if os.Getenv("SKIP_DOTENV") == "true" {
		logger.Info("Skipping .env file load (SKIP_DOTENV=true)")
		return
	}

	path := strings.TrimSpace(os.Getenv(dotenvPath))
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		logger.Warn("No env file loaded; using process environment only", "path", path, "error", err.Error())
		return
	}

	logger.Info("Landing configuration loaded from env file", "path", path)
}

func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func ValidateAutoMigrateAllowed(appEnv string) error {
	env := ParseEnvironment(appEnv)
	if env.AllowsAutoMigrate() {
		return nil
	}

	return fmt.Errorf("--auto-migrate is not allowed when %s=%q; run `cli migrate` instead", AppEnvKey, env)
}
