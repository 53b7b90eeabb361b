package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("LISMARKET_SET", "value")
	t.Setenv("LISMARKET_EMPTY", "")

	assert.Equal(t, "value", getEnvOrDefault("LISMARKET_SET", "fallback"))
	assert.Equal(t, "fallback", getEnvOrDefault("LISMARKET_EMPTY", "fallback"))
	assert.Equal(t, "fallback", getEnvOrDefault("LISMARKET_MISSING", "fallback"))
}

func TestRegisterDefaults(t *testing.T) {
	for _, key := range []string{"RUN_ADDRESS", "LOG_LEVEL", "DATABASE_URI", "MIGRATIONS_PATH", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	o := NewOptions()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o.register(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, ":8080", o.RunAddr())
	assert.Equal(t, "info", o.LogLevel())
	assert.Equal(t, "", o.DataBaseDSN())
	assert.Equal(t, "migrations", o.MigrationsPath())
	assert.Equal(t, []string{"http://localhost:3000"}, o.AllowedOrigins())
}

func TestRegisterPrecedence(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("DATABASE_URI", "postgres://env")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	o := NewOptions()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o.register(fs)
	require.NoError(t, fs.Parse([]string{"-d", "postgres://flag", "-l", "debug"}))

	assert.Equal(t, ":9090", o.RunAddr())
	assert.Equal(t, "postgres://flag", o.DataBaseDSN())
	assert.Equal(t, "debug", o.LogLevel())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, o.AllowedOrigins())
}
