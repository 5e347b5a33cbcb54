package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL string
}

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

type StdoutLoggerConfig struct {
	Level string
}

type AppConfig struct {
	AppName      string
	Env          string
	Database     DBconfig
	Rest         RESTconfig
	SMTP         SMTPConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLoggerConfig
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Env != "production"
}

// LoadConfig reads configuration from environment variables, optionally
// seeding them from a .env file first.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnv("APP_NAME", "storefront-service")
	cfg.Env = getEnv("APP_ENV", "development")

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.Rest.PORT = getEnv("PORT", "8080")
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Rest.AllowedOrigins = append(cfg.Rest.AllowedOrigins, o)
			}
		}
	}

	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	if cfg.SMTP.Host == "" {
		return nil, fmt.Errorf("SMTP_HOST environment variable is required")
	}
	cfg.SMTP.Port, err = getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	cfg.SMTP.From = os.Getenv("SMTP_FROM")
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	cfg.SMTP.AdminEmail = os.Getenv("ADMIN_EMAIL")
	if cfg.SMTP.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL environment variable is required")
	}

	cfg.RabbitMQ.Enabled = getEnvBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED=true")
		}
		cfg.RabbitMQ.Exchange = getEnv("RABBITMQ_EXCHANGE", "orders_events")
	}

	cfg.FluentBit.Enabled = getEnvBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = getEnv("FLUENTBIT_HOST", "localhost")
		cfg.FluentBit.Port, err = getEnvInt("FLUENTBIT_PORT", 24224)
		if err != nil {
			return nil, err
		}
		cfg.FluentBit.Level = getEnv("FLUENTBIT_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnv("LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
