package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, slog.LevelInfo, cfg.App.LogLevel)
	assert.Equal(t, "UTC", cfg.App.DefaultTimezone)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExpiration)
	assert.Equal(t, time.Minute, cfg.Attendance.ClockSkew)
	assert.False(t, cfg.Attendance.OnePerDay)
	assert.Equal(t, "10-M", cfg.RateLimit.Login)
	assert.Empty(t, cfg.RateLimit.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ATTENDANCE_CLOCK_SKEW", "30s")
	t.Setenv("ATTENDANCE_ONE_PER_DAY", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DEFAULT_TIMEZONE", "America/Santiago")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.App.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Attendance.ClockSkew)
	assert.True(t, cfg.Attendance.OnePerDay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "America/Santiago", cfg.App.DefaultTimezone)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"ATTENDANCE_ONE_PER_DAY":     "sometimes",
		"JWT_ACCESS_EXPIRATION_TIME": "a day",
		"DEFAULT_TIMEZONE":           "Mars/Olympus_Mons",
		"LOG_LEVEL":                  "chatty",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET_KEY")
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss word", Name: "attendance", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/attendance?sslmode=disable", cfg.DatabaseURL())
}
