package service

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	Meta struct {
		PageID      string
		AccessToken string
		AppSecret   string
	}

	Storage struct {
		Endpoint      string
		Region        string
		AccessKey     string
		SecretKey     string
		Bucket        string
		PublicBaseURL string
	}

	Ollama struct {
		URL   string
		Model string
	}

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/okasina.db"),
	}

	// Facebook / Instagram Graph API
	config.Meta.PageID = getEnv("FB_PAGE_ID", "")
	config.Meta.AccessToken = getEnv("FB_ACCESS_TOKEN", "")
	config.Meta.AppSecret = getEnv("FB_APP_SECRET", "")

	// S3-compatible object storage
	config.Storage.Endpoint = getEnv("STORAGE_ENDPOINT", "")
	config.Storage.Region = getEnv("STORAGE_REGION", "us-east-1")
	config.Storage.AccessKey = getEnv("STORAGE_ACCESS_KEY", "")
	config.Storage.SecretKey = getEnv("STORAGE_SECRET_KEY", "")
	config.Storage.Bucket = getEnv("STORAGE_BUCKET", "")
	config.Storage.PublicBaseURL = getEnv("STORAGE_PUBLIC_URL", "")

	// Ollama
	config.Ollama.URL = getEnv("OLLAMA_URL", "http://localhost:11434")
	config.Ollama.Model = getEnv("OLLAMA_MODEL", "qwen2.5:7b")

	// SMTP relay
	config.SMTP.Host = getEnv("SMTP_HOST", "")
	config.SMTP.Username = getEnv("SMTP_USER", "")
	config.SMTP.Password = getEnv("SMTP_PASS", "")
	config.SMTP.From = getEnv("EMAIL_FROM", "noreply@okasinafashion.com")
	if port, err := strconv.Atoi(getEnv("SMTP_PORT", "587")); err == nil {
		config.SMTP.Port = port
	} else {
		config.SMTP.Port = 587
	}

	return config, nil
}

// HasMeta reports whether the Graph API credentials are configured.
func (c *Config) HasMeta() bool {
	return c.Meta.PageID != "" && c.Meta.AccessToken != ""
}

// HasStorage reports whether the object storage credentials are configured.
func (c *Config) HasStorage() bool {
	return c.Storage.Bucket != "" && c.Storage.AccessKey != "" && c.Storage.SecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
