package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "a-real-password")
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	clearEnvVars(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("JWT_SECRET", "a-real-secret")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_EMAIL, ADMIN_PASSWORD")
}

func TestValidateEnv_PostgresNeedsDatabaseVars(t *testing.T) {
	clearEnvVars(t)
	setRequired(t)
	require.NoError(t, ValidateEnv(), "memory storage needs no database")

	t.Setenv("STORAGE", "postgres")
	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	clearEnvVars(t)
	setRequired(t)
	t.Setenv("JWT_SECRET", ExampleJWTSecret)
	t.Setenv("ADMIN_PASSWORD", ExampleAdminPassword)
	t.Setenv("DEV_MODE", "true")
	t.Setenv("ENVIRONMENT", "prod")

	warnings, err := ValidateEnvWithWarnings()

	require.NoError(t, err)
	assert.Len(t, warnings, 3)
}

func TestValidateEnvWithWarnings_Clean(t *testing.T) {
	clearEnvVars(t)
	setRequired(t)

	warnings, err := ValidateEnvWithWarnings()

	require.NoError(t, err)
	assert.Empty(t, warnings)
}
