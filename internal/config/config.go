package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimiterConfig holds one sliding-window policy set. Separate sets exist
// for authenticated users and for unauthenticated client IPs.
type RateLimiterConfig struct {
	PermitLimit       int
	Window            time.Duration
	SegmentsPerWindow int
	QueueLimit        int
}

type JwtConfig struct {
	Issuer                    string
	Audience                  string
	Key                       string
	ExpireMinutes             int
	RefreshTokenExpireMinutes int
}

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	GinMode string

	Jwt JwtConfig

	UserRateLimiter RateLimiterConfig
	IPRateLimiter   RateLimiterConfig

	// Optional SuperAdmin seed account, created on startup when all three are set.
	SeedAdminUsername string
	SeedAdminEmail    string
	SeedAdminPassword string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "tasksuser"),
		DBPassword: getEnv("DB_PASSWORD", "taskspassword"),
		DBName:     getEnv("DB_NAME", "tasks_api"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		Jwt: JwtConfig{
			Issuer:                    getEnv("JWT_ISSUER", "tasks-api"),
			Audience:                  getEnv("JWT_AUDIENCE", "tasks-api-clients"),
			Key:                       getEnv("JWT_KEY", "default-signing-key-change-me-0123456789"),
			ExpireMinutes:             getEnvInt("JWT_EXPIRE_MINUTES", 15),
			RefreshTokenExpireMinutes: getEnvInt("JWT_REFRESH_TOKEN_EXPIRE_MINUTES", 1440),
		},
		UserRateLimiter: RateLimiterConfig{
			PermitLimit:       getEnvInt("USER_RATE_LIMITER_PERMIT_LIMIT", 100),
			Window:            getEnvDuration("USER_RATE_LIMITER_WINDOW", time.Minute),
			SegmentsPerWindow: getEnvInt("USER_RATE_LIMITER_SEGMENTS_PER_WINDOW", 6),
			QueueLimit:        getEnvInt("USER_RATE_LIMITER_QUEUE_LIMIT", 0),
		},
		IPRateLimiter: RateLimiterConfig{
			PermitLimit:       getEnvInt("IP_RATE_LIMITER_PERMIT_LIMIT", 20),
			Window:            getEnvDuration("IP_RATE_LIMITER_WINDOW", time.Minute),
			SegmentsPerWindow: getEnvInt("IP_RATE_LIMITER_SEGMENTS_PER_WINDOW", 6),
			QueueLimit:        getEnvInt("IP_RATE_LIMITER_QUEUE_LIMIT", 0),
		},
		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", ""),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
