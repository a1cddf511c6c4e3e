package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rpupo63/portfolio-backend/errs"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreKV       = "kv"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	UploadLocal = "local"
	UploadS3    = "s3"
)

type Config struct {
	Port            int      `env:"PORT" envDefault:"3000"`
	Environment     string   `env:"APP_ENV" envDefault:"development"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
	StoreDriver     string   `env:"STORE_DRIVER" envDefault:"memory"`
	SeedDemoData    bool     `env:"SEED_DEMO_DATA" envDefault:"false"`
	FrontendURL     string   `env:"FRONTEND_URL"`
	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:","`

	HTTP     HTTP
	Database Database
	Upload   Upload
}

type HTTP struct {
	ReadTimeoutSeconds  int `env:"READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int `env:"WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int `env:"IDLE_TIMEOUT_SECONDS" envDefault:"180"`
}

func (h HTTP) ReadTimeout() time.Duration {
	return time.Duration(h.ReadTimeoutSeconds) * time.Second
}

func (h HTTP) WriteTimeout() time.Duration {
	return time.Duration(h.WriteTimeoutSeconds) * time.Second
}

func (h HTTP) IdleTimeout() time.Duration {
	return time.Duration(h.IdleTimeoutSeconds) * time.Second
}

type Database struct {
	Driver       string `env:"DB_DRIVER" envDefault:"postgres"`
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         int    `env:"DB_PORT" envDefault:"5432"`
	Name         string `env:"DB_NAME" envDefault:"portfolio"`
	User         string `env:"DB_USER" envDefault:"postgres"`
	Password     string `env:"DB_PASSWORD"`
	SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	ReplicaDSN   string `env:"DB_REPLICA_DSN"`
	SQLitePath   string `env:"DB_SQLITE_PATH" envDefault:"data/portfolio.db"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
}

// DSN builds the postgres connection string.
func (d Database) DSN() string {
	parts := []string{
		"host=" + d.Host,
		fmt.Sprintf("port=%d", d.Port),
		"user=" + d.User,
		"dbname=" + d.Name,
		"sslmode=" + d.SSLMode,
	}
	if d.Password != "" {
		parts = append(parts, "password="+d.Password)
	}
	return strings.Join(parts, " ")
}

type Upload struct {
	Driver         string `env:"UPLOAD_DRIVER" envDefault:"local"`
	Dir            string `env:"UPLOAD_DIR" envDefault:"uploads"`
	BackendURL     string `env:"BACKEND_URL"`
	MaxFileSize    int64  `env:"MAX_FILE_SIZE" envDefault:"5242880"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3PublicURL    string `env:"S3_PUBLIC_URL"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the process environment into a validated Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Upload.BackendURL == "" {
		cfg.Upload.BackendURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	cfg.Upload.BackendURL = strings.TrimRight(cfg.Upload.BackendURL, "/")
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StorePostgres, StoreKV:
	default:
		return errs.NewConfigInvalidError("STORE_DRIVER", c.StoreDriver)
	}

	if c.StoreDriver != StoreMemory {
		switch c.Database.Driver {
		case DBDriverPostgres, DBDriverSQLite:
		default:
			return errs.NewConfigInvalidError("DB_DRIVER", c.Database.Driver)
		}
	}

	switch c.Upload.Driver {
	case UploadLocal:
	case UploadS3:
		if c.Upload.S3Bucket == "" {
			return errs.NewConfigMissingError("S3_BUCKET")
		}
	default:
		return errs.NewConfigInvalidError("UPLOAD_DRIVER", c.Upload.Driver)
	}

	if c.Upload.MaxFileSize <= 0 {
		return errs.NewConfigInvalidError("MAX_FILE_SIZE", fmt.Sprint(c.Upload.MaxFileSize))
	}
	return nil
}

// IsDevelopment reports whether human-readable console logging should be used.
func (c Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

// AllowedOrigins returns the CORS origin allow-list.
func (c Config) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://localhost:4173",
	}
	if c.FrontendURL != "" {
		origins = append(origins, strings.TrimRight(c.FrontendURL, "/"))
	}
	for _, o := range c.AcceptedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
