package config

import (
	"fmt"     // For error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For joining validation errors
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBDriver   string        // Database driver: mysql or sqlite
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name
	SQLitePath string        // SQLite file path (sqlite driver only)
	JWTSecret  string        // JWT secret key
	JWTTTL     time.Duration // Lifetime of issued tokens
	RedisAddr  string        // Redis server address, empty disables caching
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	CacheTTL   time.Duration // TTL of cached list responses
	IsProd     bool          // Is production environment
	AIAPIKey   string        // API key of the language model endpoint
	AIBaseURL  string        // OpenAI compatible base URL
	AIModel    string        // Model name
	AITimeout  time.Duration // Upper bound for one analysis call
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "5000"),                                                       // Application port
		DBDriver:   getEnv("DB_DRIVER", DriverMySQL),                                                 // Database driver
		DBUser:     os.Getenv("DB_USER"),                                                             // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),                                                         // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),                                                   // Database host
		DBPort:     getEnv("DB_PORT", "3306"),                                                        // Database port
		DBName:     getEnv("DB_NAME", "expense_tracker"),                                             // Database name
		SQLitePath: getEnv("SQLITE_PATH", "./data/expenses.db"),                                      // SQLite file
		JWTSecret:  os.Getenv("JWT_SECRET"),                                                          // JWT secret key
		JWTTTL:     getEnvDuration("JWT_TTL", 30*24*time.Hour),                                       // Token lifetime
		RedisAddr:  os.Getenv("REDIS_ADDR"),                                                          // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                                                          // Redis password
		RedisDB:    redisDB,                                                                          // Redis database number
		CacheTTL:   getEnvDuration("CACHE_TTL", 60*time.Second),                                      // Cache TTL
		IsProd:     os.Getenv("IS_PROD") == "true",                                                   // Is production environment
		AIAPIKey:   os.Getenv("AI_API_KEY"),                                                          // Model API key
		AIBaseURL:  getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"), // Model endpoint
		AIModel:    getEnv("AI_MODEL", "gemini-2.0-flash"),                                           // Model name
		AITimeout:  getEnvDuration("AI_TIMEOUT", 60*time.Second),                                     // Model call timeout
	}
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var problems []string
	if port, err := strconv.Atoi(c.AppPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid APP_PORT %q", c.AppPort))
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.DBUser == "" || c.DBName == "" {
			problems = append(problems, "DB_USER and DB_NAME are required for mysql")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH is required for sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverMySQL, DriverSQLite))
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, "JWT_TTL must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
