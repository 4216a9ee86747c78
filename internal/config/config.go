package config

import (
	"fmt"
	"strings"

	"anoa.com/socialfeed/pkg/database"
	"anoa.com/socialfeed/pkg/storage"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string `env:"APP_ENV" env-default:"development"`
	Port           string `env:"PORT" env-default:"8000"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	LogLevel       string `env:"LOG_LEVEL" env-default:"info"`
	MaxUploadMB    int64  `env:"MAX_UPLOAD_MB" env-default:"10"`

	DB      DBConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type DBConfig struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	User     string `env:"DB_USER" env-default:"postgres"`
	Password string `env:"DB_PASS"`
	Name     string `env:"DB_NAME" env-default:"socialfeed"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	Debug    bool   `env:"DB_DEBUG" env-default:"false"`
}

type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

type StorageConfig struct {
	Backend   string `env:"STORAGE_BACKEND" env-default:"filesystem"`
	UploadDir string `env:"UPLOAD_DIR" env-default:"uploads"`

	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION" env-default:"us-east-1"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`

	CloudinaryURL    string `env:"CLOUDINARY_URL"`
	CloudinaryFolder string `env:"CLOUDINARY_UPLOAD_FOLDER" env-default:"socialfeed"`
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %d", cfg.MaxUploadMB)
	}

	return &cfg, nil
}

func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) Database() database.Config {
	return database.Config{
		URL:      c.DB.URL,
		Host:     c.DB.Host,
		User:     c.DB.User,
		Password: c.DB.Password,
		Name:     c.DB.Name,
		Port:     c.DB.Port,
		SSLMode:  c.DB.SSLMode,
		Debug:    c.DB.Debug,
	}
}

func (c *Config) BlobStorage() storage.Config {
	return storage.Config{
		Backend:   c.Storage.Backend,
		UploadDir: c.Storage.UploadDir,
		S3: storage.S3Config{
			Bucket:          c.Storage.S3Bucket,
			Region:          c.Storage.S3Region,
			Endpoint:        c.Storage.S3Endpoint,
			AccessKeyID:     c.Storage.S3AccessKeyID,
			SecretAccessKey: c.Storage.S3SecretAccessKey,
			UsePathStyle:    c.Storage.S3UsePathStyle,
		},
		CloudinaryURL:    c.Storage.CloudinaryURL,
		CloudinaryFolder: c.Storage.CloudinaryFolder,
	}
}
