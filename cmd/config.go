package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

type (
	HTTPServer struct {
		Port      string
		RateLimit string // limiter format, e.g. "300-M"
		JWTSecret string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Redis struct {
		Addr            string
		Password        string
		DB              int
		FreeShippingKey string
	}

	Kafka struct {
		Brokers  []string
		Topic    string
		ClientID string
	}

	Business struct {
		Location                     *time.Location
		DefaultFreeShippingThreshold decimal.Decimal
		LabelSender                  string
	}

	Evidence struct {
		Dir     string
		BaseURL string
	}

	Jobs struct {
		CashClosingAuditSpec string
	}

	Config struct {
		LogLevel string
		Server   HTTPServer
		Database Database
		Redis    Redis
		Kafka    Kafka
		Business Business
		Evidence Evidence
		Jobs     Jobs
	}
)

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg, err := loadFromEnv()
	if err != nil {
		return Config{}, fmt.Errorf("environment loading: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (Config, error) {
	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	threshold, err := decimal.NewFromString(getString("FREE_SHIPPING_THRESHOLD", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("FREE_SHIPPING_THRESHOLD: %w", err)
	}
	location, err := time.LoadLocation(getString("BUSINESS_TIMEZONE", "America/Bogota"))
	if err != nil {
		return Config{}, fmt.Errorf("BUSINESS_TIMEZONE: %w", err)
	}

	return Config{
		LogLevel: getString("LOG_LEVEL", "info"),
		Server: HTTPServer{
			Port:      getString("HTTP_PORT", "8080"),
			RateLimit: getString("HTTP_RATE_LIMIT", "300-M"),
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     getString("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			SSLMode:  getString("DB_SSLMODE", "disable"),
		},
		Redis: Redis{
			Addr:            os.Getenv("REDIS_ADDR"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			DB:              redisDB,
			FreeShippingKey: os.Getenv("REDIS_FREE_SHIPPING_KEY"),
		},
		Kafka: Kafka{
			Brokers:  splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:    getString("KAFKA_TOPIC", "fulfillment.events"),
			ClientID: getString("KAFKA_CLIENT_ID", "fulfillment"),
		},
		Business: Business{
			Location:                     location,
			DefaultFreeShippingThreshold: threshold,
			LabelSender:                  getString("LABEL_SENDER", "Fulfillment Center"),
		},
		Evidence: Evidence{
			Dir:     getString("EVIDENCE_DIR", "./data/evidence"),
			BaseURL: getString("EVIDENCE_BASE_URL", "/evidence"),
		},
		Jobs: Jobs{
			CashClosingAuditSpec: getString("CASH_CLOSING_AUDIT_CRON", "0 15 2 * * *"),
		},
	}, nil
}

func (c Config) validate() error {
	var errList []error
	required := map[string]string{
		"DB_HOST":     c.Database.Host,
		"DB_USER":     c.Database.User,
		"DB_NAME":     c.Database.DBName,
		"JWT_SECRET":  c.Server.JWTSecret,
		"REDIS_ADDR":  c.Redis.Addr,
		"HTTP_PORT":   c.Server.Port,
		"KAFKA_TOPIC": c.Kafka.Topic,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			errList = append(errList, fmt.Errorf("%s is required", name))
		}
	}
	if len(c.Server.JWTSecret) > 0 && len(c.Server.JWTSecret) < 16 {
		errList = append(errList, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.Business.DefaultFreeShippingThreshold.IsNegative() {
		errList = append(errList, errors.New("FREE_SHIPPING_THRESHOLD must not be negative"))
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Jobs.CashClosingAuditSpec); err != nil {
		errList = append(errList, fmt.Errorf("CASH_CLOSING_AUDIT_CRON: %w", err))
	}
	return errors.Join(errList...)
}

// DSN is the postgres connection string for gorm.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
