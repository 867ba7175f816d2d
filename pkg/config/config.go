package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the console service.
type Config struct {
	ServiceName string // e.g. "usuarios-console"
	Env         string // e.g. "dev", "uat", "prod"
	LogLevel    string // "debug", "info", etc.
	Port        int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	HTTPBodyLimit    int

	// Remote user-management API. APIURL always ends with "/".
	APIURL        string
	AuthLoginPath string
	APIRateRPS    float64 // 0 disables outbound rate limiting
	APIRateBurst  int

	// Session state. An empty RedisAddr selects the in-memory store.
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	SessionTTL    time.Duration
	SessionCookie string
	CookieSecure  bool

	// Audit events. An empty NATSURL disables publishing.
	NATSURL      string
	AuditSubject string
	AuditStream  string

	AWSRegion      string
	ConfigSecretID string // optional AWS Secrets Manager override
}

// Load loads configuration from environment variables and .env file if present.
func Load() *Config {
	// load .env silently (no error if missing)
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName:      GetEnv("SERVICE_NAME", "usuarios-console"),
		Env:              GetEnv("ENV", "dev"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		Port:             GetEnvInt("PORT", 9020),
		HTTPReadTimeout:  GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: GetEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		HTTPIdleTimeout:  GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPBodyLimit:    GetEnvInt("HTTP_BODY_LIMIT", 1*1024*1024),

		APIURL:        GetEnv("API_URL", "http://localhost:5000/api/"),
		AuthLoginPath: GetEnv("AUTH_LOGIN_PATH", "auth/login"),
		APIRateRPS:    GetEnvFloat("API_RATE_RPS", 0),
		APIRateBurst:  GetEnvInt("API_RATE_BURST", 10),

		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisDB:       GetEnvInt("REDIS_DB", 0),
		RedisPass:     GetEnv("REDIS_PASS", ""),
		SessionTTL:    GetEnvDuration("SESSION_TTL", 8*time.Hour),
		SessionCookie: GetEnv("SESSION_COOKIE", "sid"),
		CookieSecure:  GetEnvBool("SESSION_COOKIE_SECURE", false),

		NATSURL:      GetEnv("NATS_URL", ""),
		AuditSubject: GetEnv("AUDIT_SUBJECT", "evt.usuarios.audit.v1"),
		AuditStream:  GetEnv("AUDIT_STREAM", "USUARIOS_AUDIT"),

		AWSRegion:      GetEnv("AWS_REGION", "us-east-2"),
		ConfigSecretID: GetEnv("CONFIG_SECRET_ID", ""),
	}
	cfg.APIURL = normalizeBase(cfg.APIURL)

	return cfg
}

// ApplySecret overrides the remote API settings with values from a secret map.
// Recognised keys: api_url, auth_login_path. Unknown keys are ignored.
func (c *Config) ApplySecret(values map[string]string) {
	if v := strings.TrimSpace(values["api_url"]); v != "" {
		c.APIURL = normalizeBase(v)
	}
	if v := strings.TrimSpace(values["auth_login_path"]); v != "" {
		c.AuthLoginPath = strings.TrimPrefix(v, "/")
	}
}

func normalizeBase(u string) string {
	if u != "" && !strings.HasSuffix(u, "/") {
		return u + "/"
	}
	return u
}
