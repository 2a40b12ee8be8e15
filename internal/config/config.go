package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr        string
	DBPath            string
	ReceiptPath       string
	JWTSecret         string
	SessionTTL        time.Duration
	SeedOnStart       bool
	LowStockThreshold int
	CurrencySymbol    string
	SecureCookies     bool
	LogLevel          string
	LogFormat         string
	LogFile           string
	TestMode          bool
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory are used for variables not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		DBPath:            getEnv("DB_PATH", "/data/stock2profit.db"),
		ReceiptPath:       getEnv("RECEIPT_PATH", "/data/receipts"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		SessionTTL:        getDuration("SESSION_TTL", 12*time.Hour),
		SeedOnStart:       getBool("SEED_ON_START", true),
		LowStockThreshold: getInt("LOW_STOCK_THRESHOLD", 10),
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "₹"),
		SecureCookies:     getBool("SECURE_COOKIES", true),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		LogFile:           getEnv("LOG_FILE", ""),
		TestMode:          os.Getenv("STOCK2PROFIT_TEST_MODE") == "1",
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if b, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return b
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return defaultVal
}
