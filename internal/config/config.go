package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL settings for the optional activity log.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	// RetentionDays prunes activity older than this at startup; 0 keeps everything.
	RetentionDays int
}

// Enabled reports whether a database host was configured.
// The console runs without persistence when it is not.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// LicenseAPIConfig holds settings for the remote license management API.
type LicenseAPIConfig struct {
	BaseURL       string
	TimeoutSec    int
	ClientVersion string
}

// Timeout returns the request timeout as a duration.
func (c LicenseAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// ArchiveConfig holds S3-compatible object storage settings (MinIO, AWS S3)
// for archiving pruned activity. Archiving is off when Endpoint is empty.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
}

// Enabled reports whether an object store was configured.
func (c ArchiveConfig) Enabled() bool {
	return c.Endpoint != ""
}

// ActivityAuthConfig holds the credentials guarding the activity log pages.
// The activity log is closed to everyone when either value is empty.
type ActivityAuthConfig struct {
	User     string
	Password string
}

// Users returns the basic-auth user table, empty when unconfigured.
func (c ActivityAuthConfig) Users() map[string]string {
	if c.User == "" || c.Password == "" {
		return nil
	}
	return map[string]string{c.User: c.Password}
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	// AppHost is the public host:port advertised in the Swagger document.
	// Empty lets Swagger UI call the origin it was loaded from.
	AppHost  string
	Port     string
	Timezone string
	// SwaggerEnabled exposes the JSON API docs under /swagger.
	SwaggerEnabled bool
	LicenseAPI     LicenseAPIConfig
	Database       DatabaseConfig
	Archive        ArchiveConfig
	ActivityAuth   ActivityAuthConfig
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", ""),
		Port:           getEnv("PORT", "8080"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
		LicenseAPI: LicenseAPIConfig{
			BaseURL:       getEnv("LICENSE_API_URL", "https://black-pessah.onrender.com"),
			TimeoutSec:    getEnvInt("LICENSE_API_TIMEOUT_SEC", 30),
			ClientVersion: getEnv("LICENSE_CLIENT_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			RetentionDays:      getEnvInt("ACTIVITY_RETENTION_DAYS", 90),
		},
		Archive: ArchiveConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			Prefix:    getEnv("ARCHIVE_PREFIX", "activity/"),
		},
		ActivityAuth: ActivityAuthConfig{
			User:     getEnv("ACTIVITY_USER", ""),
			Password: getEnv("ACTIVITY_PASSWORD", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
