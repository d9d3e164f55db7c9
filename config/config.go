package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"freelance-backend/utils"

	"github.com/sirupsen/logrus"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	Port string

	DBType string // postgres or sqlite
	DBURL  string

	JWTSecret   string
	JWTExpiry   time.Duration
	BcryptCost  int
	OrderPrefix string

	CORSOrigins []string

	LogLevel  string
	LogFormat string

	LoginRatePerMinute int
	LoginRateBurst     int

	ReminderEnabled   bool
	ReminderCron      string
	ReminderDaysAhead int
	ReminderToNumber  string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DBType:               strings.ToLower(getEnv("DB_TYPE", "postgres")),
		DBURL:                os.Getenv("DB_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTExpiry:            time.Duration(getEnvAsInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		BcryptCost:           getEnvAsInt("BCRYPT_COST", 14),
		OrderPrefix:          getEnv("ORDER_PREFIX", "FM"),
		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001,http://127.0.0.1:5500")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "json"),
		LoginRatePerMinute:   getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
		LoginRateBurst:       getEnvAsInt("LOGIN_RATE_BURST", 5),
		ReminderEnabled:      getEnvAsBool("REMINDER_ENABLED", true),
		ReminderCron:         getEnv("REMINDER_CRON", "0 9 * * *"),
		ReminderDaysAhead:    getEnvAsInt("REMINDER_DAYS_AHEAD", 3),
		ReminderToNumber:     os.Getenv("REMINDER_TO_NUMBER"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}

	if cfg.DBType != "postgres" && cfg.DBType != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}
	if cfg.DBURL == "" {
		if cfg.DBType != "sqlite" {
			return nil, fmt.Errorf("DB_URL is required")
		}
		cfg.DBURL = "freelance.db"
	}

	if cfg.JWTSecret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		logrus.Warn("JWT_SECRET not set, using an ephemeral secret; tokens will not survive a restart")
		cfg.JWTSecret = utils.GenerateJWTSecret()
	}

	return cfg, nil
}

// TwilioConfigured reports whether reminders can be delivered through Twilio.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.ReminderToNumber != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
