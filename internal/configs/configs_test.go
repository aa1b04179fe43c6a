package configs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setRequiredStorage seeds the S3 variables every environment requires.
func setRequiredStorage(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "sehra-attachments")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "minio")
	t.Setenv("S3_SECRET_ACCESS_KEY", "minio-secret")
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	setRequiredStorage(t)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 8080, cfg.Port)
	require.NotEmpty(t, cfg.JWTSecret)
	require.NotEmpty(t, cfg.DatabaseDSN)
	require.Empty(t, cfg.AllowedOrigins)
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	setRequiredStorage(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigProductionRequiresDatabaseURL(t *testing.T) {
	setRequiredStorage(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfigInvalidPort(t *testing.T) {
	setRequiredStorage(t)
	t.Setenv("PORT", "not-a-port")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigParsesOrigins(t *testing.T) {
	setRequiredStorage(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.sehra.in, https://admin.sehra.in ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"https://app.sehra.in", "https://admin.sehra.in"}, cfg.AllowedOrigins)
}

func TestLoadConfigMissingStorage(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "S3_BUCKET_NAME")
}
