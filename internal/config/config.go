package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
	DriverOracle   = "oracle"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Logger LoggerConfig
	CORS   CORSConfig
	Admin  AdminConfig
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Path     string // sqlite3 only
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

// RedisConfig configures the response cache. An empty Address disables caching.
type RedisConfig struct {
	Address   string
	Password  string
	DB        int
	QuizTTL   time.Duration
	ResultTTL time.Duration
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type CORSConfig struct {
	AllowOrigins string
}

type AdminConfig struct {
	MinPasswordLength int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "data/quizdeck.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20*time.Second)
	v.SetDefault("server.write_timeout", 20*time.Second)
	v.SetDefault("server.idle_timeout", 20*time.Second)
	v.SetDefault("server.body_limit", 10*1024*1024)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.quiz_ttl", 10*time.Minute)
	v.SetDefault("redis.result_ttl", 24*time.Hour)

	v.SetDefault("jwt.ttl", 7*24*time.Hour)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("cors.allow_origins", "*")

	v.SetDefault("admin.min_password_length", 6)
}

// LoadConfig reads config.yaml (optional) from the working directory or ./configs,
// then applies environment overrides such as DB_HOST or JWT_SECRET_KEY.
// A .env file is loaded into the environment first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../configs")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("db.driver")),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			Path:     v.GetString("db.path"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Redis: RedisConfig{
			Address:   v.GetString("redis.address"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			QuizTTL:   v.GetDuration("redis.quiz_ttl"),
			ResultTTL: v.GetDuration("redis.result_ttl"),
		},
		JWT: JWTConfig{
			SecretKey: v.GetString("jwt.secret_key"),
			TTL:       v.GetDuration("jwt.ttl"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		CORS: CORSConfig{
			AllowOrigins: v.GetString("cors.allow_origins"),
		},
		Admin: AdminConfig{
			MinPasswordLength: v.GetInt("admin.min_password_length"),
		},
	}
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverOracle:
		if c.DB.Host == "" || c.DB.DBName == "" {
			return fmt.Errorf("db.host and db.name are required for driver %q", c.DB.Driver)
		}
	case DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("db.path is required for driver sqlite3")
		}
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	if c.JWT.SecretKey == "" {
		return errors.New("jwt.secret_key is required")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be positive")
	}
	return nil
}

// GetDSN returns the data source name for the configured driver.
func (c *Config) GetDSN() string {
	switch c.DB.Driver {
	case DriverPostgres:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			url.QueryEscape(c.DB.User),
			url.QueryEscape(c.DB.Password),
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
		)
	case DriverOracle:
		return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
			url.QueryEscape(c.DB.User),
			url.QueryEscape(c.DB.Password),
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
		)
	default:
		return fmt.Sprintf("file:%s?_foreign_keys=on", c.DB.Path)
	}
}
