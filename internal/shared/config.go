package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	DBDriver       string
	DatabaseURL    string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	BookingRate    int // submissions per minute per client; 0 disables
	BookingBurst   int
	PublicBaseURL  string
	RequestTimeout time.Duration
	TrustProxy     bool // honour X-Forwarded-For / X-Real-IP
	ImportWorkers  int
	FeedRPS        int
}

// Load reads an optional .env file, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env present but unreadable; using process environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":3000"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		DBDriver:       env("DB_DRIVER", "sqlite"),
		DatabaseURL:    env("DATABASE_URL", "hotel.db"),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		BookingRate:    atoi("BOOKING_RATE_PER_MIN", 30),
		BookingBurst:   atoi("BOOKING_RATE_BURST", 5),
		PublicBaseURL:  env("PUBLIC_BASE_URL", "http://localhost:3000"),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		TrustProxy:     boolEnv("TRUST_PROXY", false),
		ImportWorkers:  atoi("IMPORT_WORKERS", 4),
		FeedRPS:        atoi("FEED_RPS", 5),
	}
	if c.ImportWorkers < 1 {
		c.ImportWorkers = 1
	}
	if c.RedisAddr == "" {
		log.Debug().Msg("REDIS_ADDR is empty; read cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
