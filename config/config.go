package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Cap on active availability slots a provider may publish per weekday.
	MaxActiveSlotsPerDay int `mapstructure:"MAX_ACTIVE_SLOTS_PER_DAY"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB      int    `mapstructure:"REDIS_AUTH_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Hosted-video provider (server-to-server OAuth).
	VideoAPIBaseURL    string `mapstructure:"VIDEO_API_BASE_URL"`
	VideoOAuthTokenURL string `mapstructure:"VIDEO_OAUTH_TOKEN_URL"`
	VideoAccountID     string `mapstructure:"VIDEO_ACCOUNT_ID"`
	VideoClientID      string `mapstructure:"VIDEO_CLIENT_ID"`
	VideoClientSecret  string `mapstructure:"VIDEO_CLIENT_SECRET"`

	// Generated-link platform.
	MeetLinkDomain string `mapstructure:"MEET_LINK_DOMAIN"`

	// Google Calendar OAuth app credentials.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`

	// Stripe secret key, used to verify payment references on the
	// payment-deferred booking path.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Firebase service account for push notifications.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// SMTP relay for ICS invite delivery.
	SMTPAddr string `mapstructure:"SMTP_ADDR"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("MAX_ACTIVE_SLOTS_PER_DAY", 5)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("VIDEO_API_BASE_URL", "https://api.zoom.us/v2")
	viper.SetDefault("VIDEO_OAUTH_TOKEN_URL", "https://zoom.us/oauth/token")
	viper.SetDefault("MEET_LINK_DOMAIN", "meet.mentorly.app")
	viper.SetDefault("SMTP_ADDR", "localhost:25")
	viper.SetDefault("SMTP_FROM", "invites@mentorly.app")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
