package utils

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	OTP      OTPConfig
	Storage  StorageConfig
	SMS      SMSConfig
	Maps     MapsConfig
	Redis    RedisConfig
	Tracking TrackingConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

// StorageConfig describes the S3 compatible object store and the buckets
// the dashboard writes into.
type StorageConfig struct {
	Region                string
	Endpoint              string
	PublicBaseURL         string
	ProfilePictureBucket  string
	DriverDocumentBucket  string
	VehicleDocumentBucket string
	MaxUploadMB           int64
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type MapsConfig struct {
	APIKey string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TrackingConfig struct {
	PollInterval time.Duration
	SnapshotTTL  time.Duration
}

// AdminConfig seeds the first dashboard account on startup when set
type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "fleet-admin")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("STORAGE_REGION", "ap-south-1")
	viper.SetDefault("STORAGE_PROFILE_BUCKET", "driver-profile-pictures")
	viper.SetDefault("STORAGE_DRIVER_DOCS_BUCKET", "driver-documents")
	viper.SetDefault("STORAGE_VEHICLE_DOCS_BUCKET", "vehicle-documents")
	viper.SetDefault("STORAGE_MAX_UPLOAD_MB", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("TRACKING_POLL_INTERVAL", "10s")
	viper.SetDefault("TRACKING_SNAPSHOT_TTL", "60s")
	viper.SetDefault("ADMIN_FULL_NAME", "Fleet Admin")

	if err := viper.ReadInConfig(); err != nil {
		// env-only deployments ship without a .env file
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			CORSOrigins: viper.GetStringSlice("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        viper.GetInt("OTP_LENGTH"),
		},
		Storage: StorageConfig{
			Region:                viper.GetString("STORAGE_REGION"),
			Endpoint:              viper.GetString("STORAGE_ENDPOINT"),
			PublicBaseURL:         viper.GetString("STORAGE_PUBLIC_BASE_URL"),
			ProfilePictureBucket:  viper.GetString("STORAGE_PROFILE_BUCKET"),
			DriverDocumentBucket:  viper.GetString("STORAGE_DRIVER_DOCS_BUCKET"),
			VehicleDocumentBucket: viper.GetString("STORAGE_VEHICLE_DOCS_BUCKET"),
			MaxUploadMB:           viper.GetInt64("STORAGE_MAX_UPLOAD_MB"),
		},
		SMS: SMSConfig{
			AccountSID: viper.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:  viper.GetString("TWILIO_AUTH_TOKEN"),
			FromNumber: viper.GetString("TWILIO_FROM_NUMBER"),
		},
		Maps: MapsConfig{
			APIKey: viper.GetString("GOOGLE_MAPS_API_KEY"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Tracking: TrackingConfig{
			PollInterval: viper.GetDuration("TRACKING_POLL_INTERVAL"),
			SnapshotTTL:  viper.GetDuration("TRACKING_SNAPSHOT_TTL"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
			FullName: viper.GetString("ADMIN_FULL_NAME"),
		},
	}

	return config, nil
}
