package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string        `env:"PORT,         default=8080"`
	Env          string        `env:"ENV,          default=development"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,    default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
	LogLevel     string        `env:"LOG_LEVEL,    default=info"`
	CacheTTL     time.Duration `env:"CACHE_TTL,    default=5m"`
	UploadDir    string        `env:"UPLOAD_DIR,   default=./uploads"`
	MailWorkers  int           `env:"MAIL_WORKERS, default=4"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Google GoogleConfig
	SMTP   SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=booking_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// GoogleConfig holds the OAuth client used by /auth/google-login.
// Leaving ClientID empty disables Google login.
type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
}

// SMTPConfig holds the outgoing mail relay. Leaving Host empty makes
// the service log mails instead of sending them.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@tourism-ease.example"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
