package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Outbound throttle, requests per second with a small burst
	RequestsPerSecond float64
	RequestBurst      int

	// Polling
	PollInterval       time.Duration
	WardenPollInterval time.Duration
	RefreshTimes       []string // "HH:MM" wall-clock refresh points

	// Session storage
	StorageBackend string
	SQLitePath     string
	RedisAddr      string
}

// Load reads the environment (after a best-effort .env load) and fills in
// the defaults the original frontend shipped with.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:         getEnv("HOSTEL_API_URL", "http://localhost:5000/api"),
		HTTPTimeout:        getEnvAsDuration("HOSTEL_HTTP_TIMEOUT", 15*time.Second),
		RequestsPerSecond:  getEnvAsFloat("HOSTEL_RPS", 5),
		RequestBurst:       getEnvAsInt("HOSTEL_RPS_BURST", 10),
		PollInterval:       getEnvAsDuration("HOSTEL_POLL_INTERVAL", 10*time.Second),
		WardenPollInterval: getEnvAsDuration("HOSTEL_WARDEN_POLL_INTERVAL", 30*time.Second),
		RefreshTimes:       []string{getEnv("HOSTEL_REFRESH_MORNING", "07:30"), getEnv("HOSTEL_REFRESH_EVENING", "20:00")},
		StorageBackend:     getEnv("HOSTEL_SESSION_STORAGE", StorageSQLite),
		SQLitePath:         getEnv("HOSTEL_SESSION_PATH", defaultSessionPath()),
		RedisAddr:          getEnv("HOSTEL_REDIS_ADDR", "localhost:6379"),
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hostel-session.db"
	}
	return home + "/.hostel-client/session.db"
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsFloat(name string, defaultVal float64) float64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil {
		return val
	}

	return defaultVal
}
