package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	SessionSecret string
	GinMode       string
	LogLevel      string
	TimeZone      string
	OpenAIAPIKey  string
	Identity      IdentityConfig
}

// IdentityConfig selects how bearer credentials are verified.
// Provider is one of "firebase", "google" or "hmac".
type IdentityConfig struct {
	Provider          string
	FirebaseProjectID string
	FirebaseCertsURL  string
	GoogleUserInfoURL string
	HMACSecret        string
	HMACIssuer        string
}

func Load() *Config {
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", "postgres"))

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      driver,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", defaultDBPort(driver)),
		DBUser:        getEnv("DB_USER", "dashboard"),
		DBPassword:    getEnv("DB_PASSWORD", "dashboard"),
		DBName:        getEnv("DB_NAME", "project_dashboard"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		TimeZone:      getEnv("TZ", "Local"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		Identity: IdentityConfig{
			Provider:          strings.ToLower(getEnv("IDENTITY_PROVIDER", "firebase")),
			FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
			FirebaseCertsURL:  getEnv("FIREBASE_CERTS_URL", ""),
			GoogleUserInfoURL: getEnv("GOOGLE_USERINFO_URL", ""),
			HMACSecret:        getEnv("IDENTITY_HMAC_SECRET", ""),
			HMACIssuer:        getEnv("IDENTITY_HMAC_ISSUER", "project-dashboard-dev"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// Location resolves TimeZone, falling back to the process's local zone.
// Dashboards use it to decide which calendar day "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
