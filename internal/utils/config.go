package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is loaded once at startup and passed by reference into the
// components that need it.
type Config struct {
	// App
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Gemini API
	GeminiAPIKey  string `yaml:"GEMINI_API_KEY"`
	GeminiModel   string `yaml:"GEMINI_MODEL"`
	ModelTimeout  time.Duration
	ModelTimeoutS int `yaml:"MODEL_TIMEOUT_SECONDS"`

	// IntaSend payment gateway
	IntaSendSecretKey      string `yaml:"INTASEND_SECRET_KEY"`
	IntaSendPublishableKey string `yaml:"INTASEND_PUBLISHABLE_KEY"`
	IntaSendBaseURL        string `yaml:"INTASEND_BASE_URL"`
	CallbackBaseURL        string `yaml:"CALLBACK_BASE_URL"`

	// Premium pricing
	PremiumPrice  float64 `yaml:"PREMIUM_PRICE"`
	Currency      string  `yaml:"CURRENCY"`
	FreeRecipeQty int     `yaml:"FREE_RECIPE_QUOTA"`

	// AWS S3
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

// LoadConfig reads config.yaml if present, then applies environment
// variable overrides (a .env file is honored via godotenv).
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:         "5000",
		IntaSendBaseURL: "https://sandbox.intasend.com/api/v1",
		PremiumPrice:    100,
		Currency:        "KES",
		FreeRecipeQty:   10,
		ModelTimeoutS:   30,
	}

	if file, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parsing config.yaml: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.ModelTimeoutS <= 0 {
		cfg.ModelTimeoutS = 30
	}
	cfg.ModelTimeout = time.Duration(cfg.ModelTimeoutS) * time.Second

	if cfg.DBHost == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("database configuration is incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.AppPort, "APP_PORT")
	overrideString(&cfg.AppURL, "APP_URL")
	overrideString(&cfg.DBUser, "DB_USER")
	overrideString(&cfg.DBName, "DB_NAME")
	overrideString(&cfg.DBPassword, "DB_PASSWORD")
	overrideString(&cfg.DBPort, "DB_PORT")
	overrideString(&cfg.DBHost, "DB_HOST")
	overrideString(&cfg.JWTSecret, "JWT_SECRET")
	overrideString(&cfg.SMTPHost, "SMTP_HOST")
	overrideString(&cfg.SMTPPort, "SMTP_PORT")
	overrideString(&cfg.SMTPSenderName, "SMTP_SENDER_NAME")
	overrideString(&cfg.SMTPAuthEmail, "SMTP_AUTH_EMAIL")
	overrideString(&cfg.SMTPAuthPassword, "SMTP_AUTH_PASSWORD")
	overrideString(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	overrideString(&cfg.GeminiModel, "GEMINI_MODEL")
	overrideString(&cfg.IntaSendSecretKey, "INTASEND_SECRET_KEY")
	overrideString(&cfg.IntaSendPublishableKey, "INTASEND_PUBLISHABLE_KEY")
	overrideString(&cfg.IntaSendBaseURL, "INTASEND_BASE_URL")
	overrideString(&cfg.CallbackBaseURL, "CALLBACK_BASE_URL")
	overrideString(&cfg.Currency, "CURRENCY")
	overrideString(&cfg.AWSS3Bucket, "AWS_S3_BUCKET")
	overrideString(&cfg.AWSS3Region, "AWS_S3_REGION")
	overrideString(&cfg.AWSAccessKey, "AWS_ACCESS_KEY")
	overrideString(&cfg.AWSSecretKey, "AWS_SECRET_KEY")
	overrideInt(&cfg.FreeRecipeQty, "FREE_RECIPE_QUOTA")
	overrideInt(&cfg.ModelTimeoutS, "MODEL_TIMEOUT_SECONDS")
	overrideFloat(&cfg.PremiumPrice, "PREMIUM_PRICE")
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overrideFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
