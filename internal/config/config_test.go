package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileAndEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("REDIS_QUIZ_TTL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "data/quizdeck.db", cfg.DB.Path)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Redis.QuizTTL)
	assert.Equal(t, 24*time.Hour, cfg.Redis.ResultTTL)
	assert.Equal(t, "test-secret", cfg.JWT.SecretKey)
	assert.Equal(t, 168*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 6, cfg.Admin.MinPasswordLength)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "jwt.secret_key")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DB:  DBConfig{Driver: DriverSQLite, Path: "x.db"},
			JWT: JWTConfig{SecretKey: "s", TTL: time.Hour},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }},
		{"sqlite without path", func(c *Config) { c.DB.Path = "" }},
		{"postgres without host", func(c *Config) { c.DB.Driver = DriverPostgres; c.DB.DBName = "q" }},
		{"oracle without name", func(c *Config) { c.DB.Driver = DriverOracle; c.DB.Host = "h" }},
		{"no secret", func(c *Config) { c.JWT.SecretKey = "" }},
		{"zero ttl", func(c *Config) { c.JWT.TTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := &Config{DB: DBConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "quiz"}}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/quiz?sslmode=disable", c.GetDSN())

	c.DB.Driver = DriverOracle
	c.DB.Port = 1521
	assert.Equal(t, "oracle://u:p%40ss@db:1521/quiz", c.GetDSN())

	c.DB = DBConfig{Driver: DriverSQLite, Path: "data/q.db"}
	assert.Equal(t, "file:data/q.db?_foreign_keys=on", c.GetDSN())
}
