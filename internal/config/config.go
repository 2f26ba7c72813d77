package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port           int
	LogLevel       string
	GRPCHealthAddr string

	DB        DB
	Delivery  Delivery
	Scoring   Scoring
	Auth      Auth
	WS        WS
	Kafka     Kafka
	AMQP      AMQP
	Publish   Publish
	RateLimit RateLimitConfig
	Pprof     PprofConfig
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host        string
	Port        string
	User        string
	Pass        string
	Name        string
	AutoMigrate bool
}

// DSN returns a postgres:// connection string usable by pgx and lib/pq.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Delivery stores assignment and tracking settings.
type Delivery struct {
	MaxActive         int
	OnTimeTarget      time.Duration
	OperationTimeout  time.Duration
	ReconcileInterval time.Duration
	StrictTransitions bool
}

// Scoring stores courier ranking settings.
type Scoring struct {
	MaxDistanceKM  float64
	RatingWeight   float64
	DistanceWeight float64
	LoadWeight     float64
	// Metric is "planar" or "haversine".
	Metric string
}

// Auth stores bearer token settings.
type Auth struct {
	JWTSecret string
}

// WS stores websocket transport settings.
type WS struct {
	SendBuffer  int
	AuthTimeout time.Duration
}

// Kafka stores broker settings. Empty Brokers disables Kafka.
type Kafka struct {
	Brokers     []string
	GroupID     string
	OrdersTopic string
	StatusTopic string
}

// AMQP stores RabbitMQ settings. Empty URL disables the fanout bus.
type AMQP struct {
	URL      string
	Exchange string
}

// Publish stores retry settings for outbound events.
type Publish struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimitConfig stores per-client HTTP rate limit settings.
type RateLimitConfig struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// PprofConfig stores pprof server settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return LoadFrom(pflag.CommandLine, os.Args[1:])
}

// LoadFrom is Load with an explicit flag set and argument list.
func LoadFrom(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.DB.AutoMigrate, "migrate", cfg.DB.AutoMigrate, "apply database migrations on start")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:      DefaultPort(),
		LogLevel:  "info",
		DB:        DefaultDB(),
		Delivery:  DefaultDelivery(),
		Scoring:   DefaultScoring(),
		Auth:      Auth{JWTSecret: defaultJWTSecret},
		WS:        DefaultWS(),
		Kafka:     DefaultKafka(),
		AMQP:      AMQP{Exchange: defaultAMQPExchange},
		Publish:   DefaultPublish(),
		RateLimit: DefaultRateLimit(),
		Pprof:     PprofConfig{Addr: defaultPprofAddr},
	}

	p := envParser{}
	p.int("PORT", &cfg.Port)
	p.str("LOG_LEVEL", &cfg.LogLevel)
	p.str("GRPC_HEALTH_ADDR", &cfg.GRPCHealthAddr)

	p.str("POSTGRES_HOST", &cfg.DB.Host)
	p.str("POSTGRES_PORT", &cfg.DB.Port)
	p.str("POSTGRES_USER", &cfg.DB.User)
	p.str("POSTGRES_PASSWORD", &cfg.DB.Pass)
	p.str("POSTGRES_DB", &cfg.DB.Name)
	p.bool("MIGRATIONS_AUTO", &cfg.DB.AutoMigrate)

	p.int("MAX_ACTIVE_DELIVERIES", &cfg.Delivery.MaxActive)
	p.minutes("DELIVERY_ON_TIME_TARGET_MINUTES", &cfg.Delivery.OnTimeTarget)
	p.duration("DELIVERY_OPERATION_TIMEOUT", &cfg.Delivery.OperationTimeout)
	p.duration("DELIVERY_RECONCILE_INTERVAL", &cfg.Delivery.ReconcileInterval)
	p.bool("STATUS_STRICT_TRANSITIONS", &cfg.Delivery.StrictTransitions)

	p.float("MAX_DISTANCE_KM", &cfg.Scoring.MaxDistanceKM)
	p.float("RATING_WEIGHT", &cfg.Scoring.RatingWeight)
	p.float("DISTANCE_WEIGHT", &cfg.Scoring.DistanceWeight)
	p.float("LOAD_WEIGHT", &cfg.Scoring.LoadWeight)
	p.str("GEO_DISTANCE_METRIC", &cfg.Scoring.Metric)

	p.str("AUTH_JWT_SECRET", &cfg.Auth.JWTSecret)

	p.int("WS_SEND_BUFFER", &cfg.WS.SendBuffer)
	p.duration("WS_AUTH_TIMEOUT", &cfg.WS.AuthTimeout)

	p.list("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	p.str("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	p.str("KAFKA_ORDERS_TOPIC", &cfg.Kafka.OrdersTopic)
	p.str("KAFKA_STATUS_TOPIC", &cfg.Kafka.StatusTopic)

	p.str("AMQP_URL", &cfg.AMQP.URL)
	p.str("AMQP_EXCHANGE", &cfg.AMQP.Exchange)

	p.int("PUBLISH_MAX_ATTEMPTS", &cfg.Publish.MaxAttempts)
	p.duration("PUBLISH_BASE_DELAY", &cfg.Publish.BaseDelay)
	p.duration("PUBLISH_MAX_DELAY", &cfg.Publish.MaxDelay)

	p.bool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	p.float("RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	p.int("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	p.duration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	p.int("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	p.bool("PPROF_ENABLED", &cfg.Pprof.Enabled)
	p.str("PPROF_ADDR", &cfg.Pprof.Addr)
	p.str("PPROF_USER", &cfg.Pprof.User)
	p.str("PPROF_PASSWORD", &cfg.Pprof.Pass)

	if p.err != nil {
		return nil, p.err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := strconv.Atoi(c.DB.Port); err != nil {
		return fmt.Errorf("invalid POSTGRES_PORT %q: %w", c.DB.Port, err)
	}
	if c.Delivery.MaxActive <= 0 {
		return fmt.Errorf("MAX_ACTIVE_DELIVERIES must be positive, got %d", c.Delivery.MaxActive)
	}
	if c.Scoring.MaxDistanceKM <= 0 {
		return fmt.Errorf("MAX_DISTANCE_KM must be positive, got %v", c.Scoring.MaxDistanceKM)
	}
	switch c.Scoring.Metric {
	case MetricPlanar, MetricHaversine:
	default:
		return fmt.Errorf("unknown GEO_DISTANCE_METRIC %q", c.Scoring.Metric)
	}
	if c.Delivery.ReconcileInterval <= 0 {
		return fmt.Errorf("DELIVERY_RECONCILE_INTERVAL must be positive")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is empty")
	}
	return nil
}

// envParser reads typed values and keeps the first error.
type envParser struct {
	err error
}

func (p *envParser) lookup(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *envParser) fail(key, v string, err error) {
	p.err = fmt.Errorf("parse %s=%q: %w", key, v, err)
}

func (p *envParser) str(key string, dst *string) {
	if v, ok := p.lookup(key); ok {
		*dst = v
	}
}

func (p *envParser) list(key string, dst *[]string) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func (p *envParser) int(key string, dst *int) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = n
}

func (p *envParser) float(key string, dst *float64) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = f
}

func (p *envParser) bool(key string, dst *bool) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = b
}

func (p *envParser) duration(key string, dst *time.Duration) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = d
}

func (p *envParser) minutes(key string, dst *time.Duration) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		if err == nil {
			err = errors.New("must be a positive number of minutes")
		}
		p.fail(key, v, err)
		return
	}
	*dst = time.Duration(n) * time.Minute
}
