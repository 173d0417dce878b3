package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists the environment variables every deployment must set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"JWT_SECRET",
	"ADMIN_EMAIL",
	"ADMIN_PASSWORD",
}

// RequiredPostgresEnvVars are additionally required when STORAGE=postgres
var RequiredPostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := RequiredEnvVars
	if strings.EqualFold(os.Getenv("STORAGE"), StoragePostgres) {
		required = append(append([]string(nil), RequiredEnvVars...), RequiredPostgresEnvVars...)
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using example values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv("JWT_SECRET") == ExampleJWTSecret {
		warnings = append(warnings, "JWT_SECRET appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if os.Getenv("ADMIN_PASSWORD") == ExampleAdminPassword {
		warnings = append(warnings, "ADMIN_PASSWORD appears to be using the example value - anyone can grant currency")
	}

	if getEnvAsBool("DEV_MODE", false) && !strings.EqualFold(os.Getenv("ENVIRONMENT"), DefaultEnvironment) {
		warnings = append(warnings, "DEV_MODE disables cooldowns and busy-gates outside a dev environment")
	}

	return warnings, nil
}
