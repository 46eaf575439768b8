package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"DB_TYPE", "PORT", "JWT_TTL_MINUTES", "MIGRATIONS_ENABLED", "STORAGE_TYPE", "UPLOAD_DIR", "MONGO_DB"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.MigrationsEnabled)
	assert.Equal(t, "local", cfg.StorageType)
	assert.Equal(t, "public", cfg.UploadDir)
	assert.Equal(t, "shipping_erp", cfg.MongoDB)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_TYPE", "Mongo")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("MIGRATIONS_ENABLED", "false")
	t.Setenv("STORAGE_TYPE", "R2")
	t.Setenv("R2_BUCKET", "attachments")

	cfg := FromEnv()

	assert.Equal(t, "mongo", cfg.DBType)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.False(t, cfg.MigrationsEnabled)
	assert.Equal(t, "r2", cfg.StorageType)
	assert.Equal(t, "attachments", cfg.R2.Bucket)
}

func TestFromEnv_InvalidTTLFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "abc")
	assert.Equal(t, 60*time.Minute, FromEnv().JWTTTL)

	t.Setenv("JWT_TTL_MINUTES", "-5")
	assert.Equal(t, 60*time.Minute, FromEnv().JWTTTL)
}
