package config

import "time"

// Distance metrics accepted by GEO_DISTANCE_METRIC.
const (
	MetricPlanar    = "planar"
	MetricHaversine = "haversine"
)

const defaultPort = 8080

const (
	defaultJWTSecret    = "dev-secret-change-me"
	defaultAMQPExchange = "order_rooms"
	defaultPprofAddr    = "127.0.0.1:6060"
)

var defaultDB = DB{
	Host:        "127.0.0.1",
	Port:        "5432",
	User:        "myuser",
	Pass:        "mypassword",
	Name:        "test_db",
	AutoMigrate: true,
}

var defaultDelivery = Delivery{
	MaxActive:         3,
	OnTimeTarget:      45 * time.Minute,
	OperationTimeout:  3 * time.Second,
	ReconcileInterval: 30 * time.Second,
	StrictTransitions: true,
}

var defaultScoring = Scoring{
	MaxDistanceKM:  10,
	RatingWeight:   0.4,
	DistanceWeight: 0.3,
	LoadWeight:     0.3,
	Metric:         MetricPlanar,
}

var defaultWS = WS{
	SendBuffer:  256,
	AuthTimeout: 5 * time.Second,
}

var defaultKafka = Kafka{
	GroupID:     "service-courier-tracking",
	OrdersTopic: "orders",
	StatusTopic: "order-status",
}

var defaultPublish = Publish{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultRateLimit = RateLimitConfig{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDelivery returns the default delivery settings.
func DefaultDelivery() Delivery {
	return defaultDelivery
}

// DefaultScoring returns the default ranking settings.
func DefaultScoring() Scoring {
	return defaultScoring
}

func DefaultWS() WS {
	return defaultWS
}

func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultPublish returns the default retry settings for outbound events.
func DefaultPublish() Publish {
	return defaultPublish
}

func DefaultRateLimit() RateLimitConfig {
	return defaultRateLimit
}
