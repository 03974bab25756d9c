package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// MongoDB
	MongoURI            string
	MongoDatabase       string
	MongoMaxPool        uint64
	MongoMinPool        uint64
	MongoConnectTimeout time.Duration

	// Upper bound for a single request, store calls included
	RequestTimeout time.Duration

	// Redis (rate limiting); empty address disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Google Cloud Storage (listing images); empty bucket disables uploads
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// RabbitMQ; empty URL disables listing events
	RabbitMQURL        string
	ListingEventsQueue string

	// Mailgun
	MailgunDomain   string
	MailgunAPIKey   string
	MailgunSender   string
	NotifyRecipient string

	// Email sending toggle
	MailSendEnabled bool

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool

	// Honor CF-Connecting-IP / X-Forwarded-For; enable only behind a proxy
	TrustProxyHeaders bool

	// Seeder
	SeedAdminUsername string
	SeedAdminPassword string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	env := getenv("APP_ENV", "development")
	return &Config{
		AppName: getenv("APP_NAME", "airbnb-listing-service"),
		Env:     env,
		Port:    getenv("PORT", "3000"),
		GinMode: getenv("GIN_MODE", "release"),

		MongoURI:            getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getenv("MONGO_DATABASE", "sample_airbnb"),
		MongoMaxPool:        uint64(getint("MONGO_MAX_POOL", 20)),
		MongoMinPool:        uint64(getint("MONGO_MIN_POOL", 2)),
		MongoConnectTimeout: getdur("MONGO_CONNECT_TIMEOUT", 10*time.Second),

		RequestTimeout: getdur("REQUEST_TIMEOUT", 15*time.Second),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		JWTSecret: getenv("JWT_SECRET", "devjwtsecret"),
		JWTTTL:    getdur("JWT_TTL", time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", ""),
		// secure cookies everywhere except local development
		CookieSecure: getbool("COOKIE_SECURE", env != "development"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		ListingEventsQueue: getenv("LISTING_EVENTS_QUEUE", "listing_events"),

		MailgunDomain:   getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:   getenv("MAILGUN_API_KEY", ""),
		MailgunSender:   getenv("MAILGUN_SENDER", ""),
		NotifyRecipient: getenv("NOTIFY_RECIPIENT", ""),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", true),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", false),

		HTTPLogEnabled:    getbool("HTTP_LOG_ENABLED", false),
		TrustProxyHeaders: getbool("TRUST_PROXY_HEADERS", false),

		SeedAdminUsername: getenv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getenv("SEED_ADMIN_PASSWORD", "changeme123"),
	}
}

// IsDevelopment reports whether the service runs in local development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
