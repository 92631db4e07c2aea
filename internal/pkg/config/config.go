package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	Logger struct {
		Level string `env:"LOG_LEVEL" env-default:"info"`
		Path  string `env:"LOG_PATH"`
	}

	HTTPServer struct {
		Port               string        `env:"PORT" env-default:"3000"`
		RequestTimeout     time.Duration `env:"MIDDLEWARE_REQUEST_TIMEOUT" env-default:"30s"`
		RateLimiterQPS     int           `env:"MIDDLEWARE_RATE_LIMIT_QPS" env-default:"20"`
		RateLimiterBurst   int           `env:"MIDDLEWARE_RATE_LIMIT_BURST" env-default:"40"`
		CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
		PprofEnabled       bool          `env:"PPROF_ENABLED" env-default:"false"`
		PprofPort          string        `env:"PPROF_PORT"`
	}

	SMTP struct {
		Host          string `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
		Port          int    `env:"SMTP_PORT" env-default:"587"`
		User          string `env:"SMTP_USER"`
		Password      string `env:"SMTP_PASS"`
		VerifyOnStart bool   `env:"SMTP_VERIFY_ON_START" env-default:"false"`
	}

	WhatsApp struct {
		APIURL    string `env:"WHATSAPP_API_URL" env-default:"https://api.fonnte.com/send"`
		Token     string `env:"WHATSAPP_TOKEN"`
		Recipient string `env:"ADMIN_WHATSAPP"`
	}

	Store struct {
		Name          string `env:"STORE_NAME" env-default:"Azure Digital Store"`
		Email         string `env:"STORE_EMAIL"`
		AdminEmail    string `env:"ADMIN_EMAIL"`
		DownloadLink  string `env:"DOWNLOAD_LINK" env-default:"https://drive.google.com/drive/folders/1dBLXditm2_urd8lD-sHA1XRAlvcY_L5S?usp=sharing"`
		PublicBaseURL string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:3000"`
	}

	Proofs struct {
		Dir            string `env:"PROOFS_DIR" env-default:"public/proofs"`
		UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" env-default:"10485760"`
	}

	Outbox struct {
		BufferSize    int           `env:"OUTBOX_BUFFER_SIZE" env-default:"256"`
		Workers       int           `env:"OUTBOX_WORKERS" env-default:"4"`
		NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" env-default:"30s"`
	}

	Tasks struct {
		OrderStatsInterval       time.Duration `env:"BACKGROUND_ORDER_STATS_INTERVAL" env-default:"15s"`
		RateLimiterPruneInterval time.Duration `env:"BACKGROUND_RATE_LIMITER_PRUNE_INTERVAL" env-default:"1m"`
		SystemMetricsInterval    time.Duration `env:"BACKGROUND_SYSTEM_METRICS_INTERVAL" env-default:"5s"`
	}

	Kafka struct {
		Brokers       []string `env:"KAFKA_BROKERS" env-separator:","`
		Topic         string   `env:"KAFKA_TOPIC" env-default:"storefront.order.events"`
		SaramaVersion string   `env:"KAFKA_SARAMA_VERSION" env-default:"3.6.0"`
	}

	Config struct {
		Logger   Logger
		Server   HTTPServer
		SMTP     SMTP
		WhatsApp WhatsApp
		Store    Store
		Proofs   Proofs
		Outbox   Outbox
		Tasks    Tasks
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	normalize(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return &cfg, nil
}

// KafkaEnabled reports whether order events are also streamed to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func normalize(cfg *Config) {
	brokers := cfg.Kafka.Brokers[:0]
	for _, b := range cfg.Kafka.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	cfg.Kafka.Brokers = brokers

	cfg.Store.PublicBaseURL = strings.TrimRight(cfg.Store.PublicBaseURL, "/")

	if cfg.Store.Email == "" {
		cfg.Store.Email = cfg.SMTP.User
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout <= 0 {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimiterQPS <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS must be positive")
	}
	if cfg.Server.RateLimiterBurst <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST must be positive")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.SMTP.User == "" {
		return errors.New("SMTP_USER is required")
	}
	if cfg.SMTP.Password == "" {
		return errors.New("SMTP_PASS is required")
	}
	if cfg.Store.AdminEmail == "" {
		return errors.New("ADMIN_EMAIL is required")
	}

	if cfg.WhatsApp.Token == "" {
		return errors.New("WHATSAPP_TOKEN is required")
	}
	if cfg.WhatsApp.Recipient == "" {
		return errors.New("ADMIN_WHATSAPP is required")
	}

	if cfg.Proofs.Dir == "" {
		return errors.New("PROOFS_DIR is required")
	}
	if cfg.Proofs.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}

	if cfg.Outbox.BufferSize <= 0 {
		return errors.New("OUTBOX_BUFFER_SIZE must be positive")
	}
	if cfg.Outbox.Workers <= 0 {
		return errors.New("OUTBOX_WORKERS must be positive")
	}
	if cfg.Outbox.NotifyTimeout <= 0 {
		return errors.New("NOTIFY_TIMEOUT must be positive")
	}

	if cfg.Tasks.OrderStatsInterval <= 0 {
		return errors.New("BACKGROUND_ORDER_STATS_INTERVAL must be positive")
	}
	if cfg.Tasks.RateLimiterPruneInterval <= 0 {
		return errors.New("BACKGROUND_RATE_LIMITER_PRUNE_INTERVAL must be positive")
	}
	if cfg.Tasks.SystemMetricsInterval <= 0 {
		return errors.New("BACKGROUND_SYSTEM_METRICS_INTERVAL must be positive")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		if cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
		}
		if cfg.Kafka.SaramaVersion == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required when KAFKA_BROKERS is set")
		}
	}

	return nil
}
