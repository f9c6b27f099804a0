package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the DealHunt API server configuration.
type Config struct {
	Port              string
	Env               string
	LogLevel          string
	DBUrl             string
	JWTSecret         string
	AllowedOrigin     string
	AccessTokenExpiry time.Duration
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Cache
	CacheWishlistTTL time.Duration
	// Rate limiting (per client IP)
	RateLimitRPS   float64
	RateLimitBurst int
}

// ClientConfig configures the wishlist command line client.
type ClientConfig struct {
	Env            string
	LogLevel       string
	APIURL         string
	Token          string
	ReconcileDelay time.Duration
	Timeout        time.Duration
	// Circuit breaker
	BreakerMaxRequests  uint32
	BreakerInterval     time.Duration
	BreakerTimeout      time.Duration
	BreakerFailureRatio float64
	BreakerMinRequests  uint32
}

func loadEnvFile() {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
		return
	}
	// 2. Default fallback: .env for local dev, system env vars otherwise
	_ = godotenv.Load()
}

func LoadConfig() *Config {
	loadEnvFile()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBUrl:             getEnv("DB_DSN", ""),
		JWTSecret:         getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		AccessTokenExpiry: getDurationEnv("ACCESS_TOKEN_EXPIRY", time.Hour*24),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		CacheWishlistTTL: getDurationEnv("CACHE_WISHLIST_TTL", 2*time.Minute),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 40),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Fatal("CRITICAL: DB_DSN environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
}

// LoadClientConfig reads the client settings. Command line flags override
// APIURL and Token after loading.
func LoadClientConfig() *ClientConfig {
	loadEnvFile()

	return &ClientConfig{
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		APIURL:         getEnv("DEALHUNT_API_URL", "http://localhost:8080"),
		Token:          getEnv("DEALHUNT_TOKEN", ""),
		ReconcileDelay: getDurationEnv("WISHLIST_RECONCILE_DELAY", time.Second),
		Timeout:        getDurationEnv("CLIENT_TIMEOUT", 10*time.Second),

		BreakerMaxRequests:  getUint32Env("BREAKER_MAX_REQUESTS", 1),
		BreakerInterval:     getDurationEnv("BREAKER_INTERVAL", time.Minute),
		BreakerTimeout:      getDurationEnv("BREAKER_TIMEOUT", 30*time.Second),
		BreakerFailureRatio: getFloatEnv("BREAKER_FAILURE_RATIO", 0.5),
		BreakerMinRequests:  getUint32Env("BREAKER_MIN_REQUESTS", 5),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
