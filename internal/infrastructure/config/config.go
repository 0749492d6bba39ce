package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // "mysql"(default) or "sqlite"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBPath          string // sqlite file, only used when DBDriver is "sqlite"
	DBMigrationMode string // "auto"(default) or "drop"

	// Server
	ServerPort  string
	ReleaseMode bool   // gin release mode
	BaseURL     string // absolute prefix for uploaded file URLs
	CORSOrigin  string
	UploadDir   string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// OTP
	OTPStore         string // "db"(default) or "redis"
	OTPExpiryMinutes int

	// SMTP
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string

	// JWT Authentication
	JWTSecretKey   string
	JWTExpiryHours int
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	switch strings.ToUpper(envType) {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	driver := strings.ToLower(getEnv(prefix+"DB_DRIVER", getEnv("DB_DRIVER", "mysql")))

	cfg := &Config{
		EnvType: envType,

		DBDriver:        driver,
		DBPath:          getEnv(prefix+"DB_PATH", getEnv("DB_PATH", "community.db")),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", "auto"),

		ServerPort:  getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "3000")),
		ReleaseMode: getEnvAsBool("GIN_RELEASE_MODE", strings.ToUpper(envType) == "SERVER"),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "http://localhost:3000"), "/"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),

		RedisHost:     getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort:     getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		OTPStore:         strings.ToLower(getEnv("OTP_STORE", "db")),
		OTPExpiryMinutes: getEnvAsInt("OTP_EXPIRY_MINUTES", 10),

		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Community App"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),

		JWTSecretKey:   getEnv("JWT_SECRET_KEY", "community-secret-key-change-in-production"),
		JWTExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 1),
	}

	// MySQL settings are only mandatory when MySQL is actually used
	if driver == "mysql" {
		cfg.DBHost = getEnvRequired(prefix + "DB_HOST")
		cfg.DBUser = getEnvRequired(prefix + "DB_USER")
		cfg.DBPassword = getEnvRequired(prefix + "DB_PASSWORD")
		cfg.DBName = getEnvRequired(prefix + "DB_NAME")
		cfg.DBPort = getEnv(prefix+"DB_PORT", "3306")
	}

	return cfg
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// OTPExpiry is the single validity window applied to every OTP purpose.
func (c *Config) OTPExpiry() time.Duration {
	if c.OTPExpiryMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.OTPExpiryMinutes) * time.Minute
}

// JWTExpiry returns the lifetime of issued access tokens.
func (c *Config) JWTExpiry() time.Duration {
	if c.JWTExpiryHours <= 0 {
		return time.Hour
	}
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
