package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	APIBaseURL         string        `mapstructure:"api_base_url"`
	HTTPAddr           string        `mapstructure:"http_addr"`
	CartStore          string        `mapstructure:"cart_store"`
	RedisHost          string        `mapstructure:"redis_host"`
	RedisPort          string        `mapstructure:"redis_port"`
	DBHost             string        `mapstructure:"db_host"`
	DBPort             string        `mapstructure:"db_port"`
	DBName             string        `mapstructure:"db_name"`
	DBUser             string        `mapstructure:"db_user"`
	DBPassword         string        `mapstructure:"db_password"`
	KafkaBroker        string        `mapstructure:"kafka_broker"`
	NotificationsTopic string        `mapstructure:"notifications_topic"`
	TrackingBaseURL    string        `mapstructure:"tracking_base_url"`
	UpstreamTimeout    time.Duration `mapstructure:"upstream_timeout"`
	LogLevel           string        `mapstructure:"log_level"`
	AllowedOrigins     []string      `mapstructure:"allowed_origins"`
}

var defaults = map[string]interface{}{
	"api_base_url":        "",
	"http_addr":           ":8080",
	"cart_store":          CartStoreRedis,
	"redis_host":          "localhost",
	"redis_port":          "6379",
	"db_host":             "localhost",
	"db_port":             "5432",
	"db_name":             "eatery",
	"db_user":             "postgres",
	"db_password":         "",
	"kafka_broker":        "",
	"notifications_topic": "notifications",
	"tracking_base_url":   "http://localhost:5173",
	"upstream_timeout":    "10s",
	"log_level":           "info",
	"allowed_origins":     []string{},
}

// Load reads the configuration from cfgFile (optional), the environment
// (API_BASE_URL, DB_HOST, ...) and whatever flags were bound to v.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("%w: api_base_url is required", ErrInvalidConfig)
	}
	switch c.CartStore {
	case CartStoreRedis, CartStorePostgres:
	default:
		return fmt.Errorf("%w: cart_store must be %q or %q, got %q", ErrInvalidConfig, CartStoreRedis, CartStorePostgres, c.CartStore)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("%w: upstream_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func NewLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, level)
	}
	return cfg.Build()
}

func MustInitPostgres(cfg *Config, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	return client
}

func NewKafkaWriter(cfg *Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.NotificationsTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}
