package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// SMTP settings for notification and report mail.
	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFrom     string
	MailFromName string
	// MailQueueSize bounds the in-process outbound mail queue.
	MailQueueSize int

	// ReportHour is the local hour (0-23) at which the daily digest job runs.
	ReportHour int
	// AuditRetentionDays is the age threshold for the weekly audit purge.
	AuditRetentionDays int

	BackupDir string

	// LoginRateLimit is a ulule/limiter formatted rate, e.g. "10-M".
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "checkin-tracker")
	viper.SetDefault("MAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("MAIL_USER", "")
	viper.SetDefault("MAIL_PASS", "")
	viper.SetDefault("MAIL_FROM", "")
	viper.SetDefault("MAIL_FROM_NAME", "Seguimiento de Actividades")
	viper.SetDefault("MAIL_QUEUE_SIZE", 256)
	viper.SetDefault("REPORT_HOUR", 22)
	viper.SetDefault("AUDIT_RETENTION_DAYS", 90)
	viper.SetDefault("BACKUP_DIR", "./backups")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.MailHost = viper.GetString("MAIL_HOST")
	cfg.MailPort = viper.GetInt("MAIL_PORT")
	cfg.MailUser = viper.GetString("MAIL_USER")
	cfg.MailPassword = viper.GetString("MAIL_PASS")
	cfg.MailFrom = viper.GetString("MAIL_FROM")
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.MailUser
	}
	cfg.MailFromName = viper.GetString("MAIL_FROM_NAME")
	cfg.MailQueueSize = viper.GetInt("MAIL_QUEUE_SIZE")

	cfg.ReportHour = viper.GetInt("REPORT_HOUR")
	if cfg.ReportHour < 0 || cfg.ReportHour > 23 {
		log.Printf("Warning: Invalid value for REPORT_HOUR (%d). Defaulting to 22.\n", cfg.ReportHour)
		cfg.ReportHour = 22
	}

	cfg.AuditRetentionDays = viper.GetInt("AUDIT_RETENTION_DAYS")
	if cfg.AuditRetentionDays <= 0 {
		cfg.AuditRetentionDays = 90
	}

	cfg.BackupDir = viper.GetString("BACKUP_DIR")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}
