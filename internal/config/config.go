package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores database connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Auth stores settings for the token-verifying boundary.
type Auth struct {
	JWTSecret string
}

// Kafka stores consumer settings for the partner shipment-events feed.
// An empty topic or broker list disables the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Partner stores settings for the partner orders API gateway.
type Partner struct {
	BaseURL     string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores per-IP request limiting settings.
type RateLimit struct {
	Limit      int
	Window     time.Duration
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug server settings. An empty addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Config stores service-shipment settings.
type Config struct {
	Port      int
	DB        DB
	Auth      Auth
	Kafka     Kafka
	Partner   Partner
	RateLimit RateLimit
	Pprof     Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", DefaultPort()),
		DB:        loadDB(),
		Auth:      Auth{JWTSecret: os.Getenv("JWT_SECRET")},
		Kafka:     loadKafka(),
		Partner:   loadPartner(),
		RateLimit: loadRateLimit(),
		Pprof: Pprof{
			Addr: os.Getenv("PPROF_ADDR"),
			User: os.Getenv("PPROF_USER"),
			Pass: os.Getenv("PPROF_PASS"),
		},
	}

	if !pflag.Parsed() {
		pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
		pflag.Parse()
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

func loadDB() DB {
	db := DefaultDB()
	db.Host = envStr("DB_HOST", db.Host)
	db.Port = envStr("DB_PORT", db.Port)
	db.User = envStr("DB_USER", db.User)
	db.Pass = envStr("DB_PASS", db.Pass)
	db.Name = envStr("DB_NAME", db.Name)
	return db
}

func loadKafka() Kafka {
	k := Kafka{
		Topic:   os.Getenv("KAFKA_TOPIC"),
		GroupID: envStr("KAFKA_GROUP_ID", defaultKafkaGroupID),
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				k.Brokers = append(k.Brokers, b)
			}
		}
	}
	return k
}

func loadPartner() Partner {
	p := DefaultPartner()
	p.BaseURL = envStr("PARTNER_API_URL", p.BaseURL)
	p.MaxAttempts = envInt("PARTNER_MAX_ATTEMPTS", p.MaxAttempts)
	p.BaseDelay = envDuration("PARTNER_BASE_DELAY", p.BaseDelay)
	p.MaxDelay = envDuration("PARTNER_MAX_DELAY", p.MaxDelay)
	return p
}

func loadRateLimit() RateLimit {
	rl := DefaultRateLimit()
	rl.Limit = envInt("RATE_LIMIT", rl.Limit)
	rl.Window = envDuration("RATE_LIMIT_WINDOW", rl.Window)
	rl.TTL = envDuration("RATE_LIMIT_TTL", rl.TTL)
	rl.MaxBuckets = envInt("RATE_LIMIT_MAX_BUCKETS", rl.MaxBuckets)
	return rl
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
