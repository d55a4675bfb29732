package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Application struct {
	Name        string        `yaml:"name" env:"APP_NAME" env-default:"sw-booking"`
	Environment string        `yaml:"environment" env:"APP_ENV" env-default:"development"`
	Debug       bool          `yaml:"debug" env:"APP_DEBUG" env-default:"false"`
	Port        int           `yaml:"port" env:"APP_PORT" env-default:"8080"`
	Timeout     time.Duration `yaml:"timeout" env:"APP_TIMEOUT" env-default:"15s"`
	BaseURL     string        `yaml:"base_url" env:"APP_BASE_URL" env-default:"http://localhost:8080"`
}

type JWT struct {
	PrivateKey string `yaml:"private_key" env:"JWT_PRIVATE_KEY"`
	PublicKey  string `yaml:"public_key" env:"JWT_PUBLIC_KEY"`
}

type Postgres struct {
	DSN             string        `yaml:"dsn" env:"POSTGRES_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"30m"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Kafka struct {
	Brokers        []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	Version        string   `yaml:"version" env-default:"3.6.0"`
	ConfirmedTopic string   `yaml:"confirmed_topic" env-default:"booking-confirmed"`
	CancelledTopic string   `yaml:"cancelled_topic" env-default:"booking-cancelled"`
	GroupID        string   `yaml:"group_id" env-default:"sw-booking-analytics"`
	DLQTopic       string   `yaml:"dlq_topic" env-default:"booking-confirmed-dlq"`
	Oldest         bool     `yaml:"oldest" env-default:"true"`
	ReturnErrors   bool     `yaml:"return_errors" env-default:"true"`
}

type CORS struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	MaxAge           int      `yaml:"max_age" env-default:"300"`
	AllowCredentials bool     `yaml:"allow_credentials" env-default:"true"`
}

type GCP struct {
	ProjectID      string `yaml:"project_id" env:"GCP_PROJECT_ID"`
	Location       string `yaml:"location" env-default:"africa-south1"`
	ServiceAccount string `yaml:"service_account" env:"GCP_SERVICE_ACCOUNT"`
	ReminderQueue  string `yaml:"reminder_queue" env-default:"booking-reminder"`
}

type Booking struct {
	ReminderLead time.Duration `yaml:"reminder_lead" env-default:"1h"`
}

type Notification struct {
	BaseURL string `yaml:"base_url" env:"NOTIFICATION_BASE_URL"`
	APIKey  string `yaml:"api_key" env:"NOTIFICATION_API_KEY"`
}

type Monitoring struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT" env-default:"localhost:4317"`
}

type ClickHouse struct {
	Host             string        `yaml:"host" env:"CLICKHOUSE_HOST" env-default:"localhost"`
	Port             int           `yaml:"port" env:"CLICKHOUSE_PORT" env-default:"9000"`
	Database         string        `yaml:"database" env-default:"sw_analytics"`
	Username         string        `yaml:"username" env:"CLICKHOUSE_USERNAME" env-default:"default"`
	Password         string        `yaml:"password" env:"CLICKHOUSE_PASSWORD"`
	MaxExecutionTime int           `yaml:"max_execution_time" env-default:"60"`
	DialTimeout      time.Duration `yaml:"dial_timeout" env-default:"5s"`
	MaxOpenConns     int           `yaml:"max_open_conns" env-default:"5"`
	MaxIdleConns     int           `yaml:"max_idle_conns" env-default:"2"`
	ConnMaxLifetime  time.Duration `yaml:"conn_max_lifetime" env-default:"30m"`
}

type Worker struct {
	BatchSize      int           `yaml:"batch_size" env-default:"100"`
	FlushInterval  time.Duration `yaml:"flush_interval" env-default:"5s"`
	WorkerCount    int           `yaml:"worker_count" env-default:"4"`
	RetryAttempts  uint          `yaml:"retry_attempts" env-default:"5"`
	RetryDelay     time.Duration `yaml:"retry_delay" env-default:"200ms"`
	RetryMaxDelay  time.Duration `yaml:"retry_max_delay" env-default:"2s"`
	PrometheusPort int           `yaml:"prometheus_port" env-default:"9091"`
}

type Config struct {
	Application  Application  `yaml:"application"`
	JWT          JWT          `yaml:"jwt"`
	Postgres     Postgres     `yaml:"postgres"`
	Redis        Redis        `yaml:"redis"`
	Kafka        Kafka        `yaml:"kafka"`
	CORS         CORS         `yaml:"cors"`
	GCP          GCP          `yaml:"gcp"`
	Booking      Booking      `yaml:"booking"`
	Notification Notification `yaml:"notification"`
	Monitoring   Monitoring   `yaml:"monitoring"`
	ClickHouse   ClickHouse   `yaml:"clickhouse"`
	Worker       Worker       `yaml:"worker"`
}

var (
	c    *Config
	once sync.Once
)

// Get loads the configuration once from the file referenced by CONFIG_PATH,
// falling back to environment variables when the file is not set.
func Get() *Config {
	once.Do(func() {
		c = &Config{}

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			if err := cleanenv.ReadEnv(c); err != nil {
				log.Fatalf("config: %v", err)
			}
			return
		}

		if err := cleanenv.ReadConfig(configPath, c); err != nil {
			log.Fatalf("config: %v", err)
		}
	})

	return c
}
