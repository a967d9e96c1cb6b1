package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const (
	defaultSessionTTL = 14 * 24 * time.Hour
	defaultHTTPAddr   = ":8081"
	connectTimeout    = 10 * time.Second
)

type Config struct {
	HTTPAddr       string
	UploadDir      string
	PublicBaseURL  string
	SessionBackend string
	SessionTTL     time.Duration
	KafkaBroker    string
	AllowedOrigins []string
	Contact        Contact
}

// Contact is what the contact page shows.
type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
}

func Load() Config {
	return Config{
		HTTPAddr:       getEnv("HTTP_ADDR", defaultHTTPAddr),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8081"),
		SessionBackend: getEnv("SESSION_BACKEND", "redis"),
		SessionTTL:     getDuration("SESSION_TTL", defaultSessionTTL),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS"),
		Contact: Contact{
			Phone:   getEnv("CONTACT_PHONE", "+1 555 0100"),
			Email:   getEnv("CONTACT_EMAIL", "hello@restaurant.local"),
			Address: getEnv("CONTACT_ADDRESS", "12 Market Street"),
			Hours:   getEnv("CONTACT_HOURS", "Mon-Sun 11:00-23:00"),
		},
	}
}

// PostgresDSN builds the lib/pq connection string from DB_* variables,
// defaulting to a local development database.
func PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "restaurant"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func RedisAddr() string {
	return net.JoinHostPort(getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379"))
}

func MustInitPostgres() *sql.DB {
	db, err := sql.Open("postgres", PostgresDSN())
	if err != nil {
		log.Fatal("Failed to open restaurant database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		log.Fatal("Failed to reach restaurant database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     RedisAddr(),
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis at "+RedisAddr()+":", err)
	}

	return client
}

func NewKafkaReader(topics []string, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{os.Getenv("KAFKA_BROKER")},
		GroupTopics: topics,
		GroupID:     groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("[config] invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// getList splits a comma separated variable, dropping empty items.
func getList(key string) []string {
	var values []string
	for _, value := range strings.Split(os.Getenv(key), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}
