// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mangashelf")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
}

/*
TestLoad_Defaults verifies defaults apply when only required variables exist.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "pt-BR", cfg.DefaultLanguage)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.StorageEnabled())
}

/*
TestLoad_MissingRequired verifies a missing DATABASE_URL aborts loading.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	_, err := config.LoadFiles()
	assert.Error(t, err)
}

/*
TestLoad_DotEnvFile verifies values from a dotenv file are applied and origins trimmed.
*/
func TestLoad_DotEnvFile(t *testing.T) {
	setRequired(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "SERVER_PORT=9090\nCORS_ORIGINS=https://a.app, https://b.app\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("CORS_ORIGINS")
	})

	cfg, err := config.LoadFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, cfg.AllowedOrigins())
}
