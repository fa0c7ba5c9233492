package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timeouts, grace periods, rate limits)
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Store      StoreConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Redis      RedisConfig
	AMQP       AMQPConfig
	Stripe     StripeConfig
	Booking    BookingConfig
	Commission CommissionConfig
	Worker     WorkerConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"rental_escrow"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

// StoreConfig selects the persistence backend. "memory" runs the whole service without Postgres.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Idempotency-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// RedisConfig: an empty Addr falls back to in-process caches and leases.
type RedisConfig struct {
	Addr           string        `envconfig:"REDIS_ADDR" default:""`
	Password       string        `envconfig:"REDIS_PASSWORD" default:""`
	DB             int           `envconfig:"REDIS_DB" default:"0"`
	ProcessedTTL   time.Duration `envconfig:"REDIS_PROCESSED_EVENT_TTL" default:"168h"`
	KeyPrefix      string        `envconfig:"REDIS_KEY_PREFIX" default:"rental-escrow"`
	DialTimeout    time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"3s"`
	OperationLimit time.Duration `envconfig:"REDIS_OPERATION_TIMEOUT" default:"500ms"`
}

// AMQPConfig: an empty URL routes notifications to the log publisher.
type AMQPConfig struct {
	URL               string `envconfig:"AMQP_URL" default:""`
	NotificationQueue string `envconfig:"AMQP_NOTIFICATION_QUEUE" default:"booking.notifications"`
	EmailQueue        string `envconfig:"AMQP_EMAIL_QUEUE" default:"booking.emails"`
}

type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" default:""`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" default:""`
}

type BookingConfig struct {
	CardPaymentTimeout  time.Duration `envconfig:"BOOKING_CARD_PAYMENT_TIMEOUT" default:"30m"`
	VoucherValidity     time.Duration `envconfig:"BOOKING_VOUCHER_VALIDITY" default:"72h"`
	VoucherInstructions string        `envconfig:"BOOKING_VOUCHER_INSTRUCTIONS" default:"Present this voucher number at any partner agency and pay the exact amount in cash before it expires."`
	CompleteGrace       time.Duration `envconfig:"BOOKING_COMPLETE_GRACE" default:"2h"`
	EscrowReleaseGrace  time.Duration `envconfig:"ESCROW_RELEASE_GRACE" default:"24h"`
	IdempotencyTTL      time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
}

type CommissionConfig struct {
	LuxuryThreshold   string `envconfig:"COMMISSION_LUXURY_THRESHOLD" default:"500"`
	ReferenceCurrency string `envconfig:"COMMISSION_REFERENCE_CURRENCY" default:"EUR"`
	FXRates           string `envconfig:"COMMISSION_FX_RATES" default:"EUR:1,USD:0.92,DZD:0.0068"`
}

type WorkerConfig struct {
	Enabled      bool          `envconfig:"WORKER_ENABLED" default:"true"`
	Interval     time.Duration `envconfig:"WORKER_INTERVAL" default:"1m"`
	BatchSize    int           `envconfig:"WORKER_BATCH_SIZE" default:"100"`
	LeaseTTL     time.Duration `envconfig:"WORKER_LEASE_TTL" default:"50s"`
	PayoutsDaily bool          `envconfig:"WORKER_PAYOUTS_ENABLED" default:"true"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c CommissionConfig) Threshold() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.LuxuryThreshold))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid COMMISSION_LUXURY_THRESHOLD: %w", err)
	}
	return d, nil
}

// ParseFXRates reads "CUR:rate,CUR:rate" into a map keyed by currency code.
func (c CommissionConfig) ParseFXRates() (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, pair := range strings.Split(c.FXRates, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, rate, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid COMMISSION_FX_RATES entry %q", pair)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(rate))
		if err != nil || !d.IsPositive() {
			return nil, fmt.Errorf("invalid COMMISSION_FX_RATES rate for %s", code)
		}
		out[strings.ToUpper(strings.TrimSpace(code))] = d
	}
	return out, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Store: StoreConfig{Driver: "memory"},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Redis: RedisConfig{
			ProcessedTTL: time.Hour,
			KeyPrefix:    "rental-escrow-test",
		},
		Booking: BookingConfig{
			CardPaymentTimeout:  30 * time.Minute,
			VoucherValidity:     72 * time.Hour,
			VoucherInstructions: "Pay at any partner agency.",
			CompleteGrace:       2 * time.Hour,
			EscrowReleaseGrace:  24 * time.Hour,
			IdempotencyTTL:      24 * time.Hour,
		},
		Commission: CommissionConfig{
			LuxuryThreshold:   "500",
			ReferenceCurrency: "EUR",
			FXRates:           "EUR:1,USD:0.92,DZD:0.0068",
		},
		Worker: WorkerConfig{
			Interval:  time.Minute,
			BatchSize: 50,
			LeaseTTL:  50 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	}
}
