// Package config loads and validates termindex configuration from YAML files
// with environment-variable overrides. Each subsystem (corpus source,
// lexicon, stores, logging, metrics) has its own typed section.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Corpus source names accepted in CorpusConfig.Source.
const (
	SourceMemory   = "memory"
	SourceDir      = "dir"
	SourceRedis    = "redis"
	SourcePostgres = "postgres"
	SourceKafka    = "kafka"
)

// Config is the top-level application configuration.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Server   ServerConfig   `yaml:"server"`
}

// CorpusConfig selects where documents are read from on refresh.
type CorpusConfig struct {
	Source          string `yaml:"source"`
	Dir             string `yaml:"dir"`
	ReadConcurrency int    `yaml:"readConcurrency"`
	RedisKey        string `yaml:"redisKey"`
	PostgresTable   string `yaml:"postgresTable"`
}

// LexiconConfig points at the linguistic resources used by the normalizer.
// An empty StopwordsFile selects the embedded English list.
type LexiconConfig struct {
	Language      string `yaml:"language"`
	StopwordsFile string `yaml:"stopwordsFile"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds the broker list and the compacted corpus topic.
// ReadIdleTimeout ends a snapshot read when no record arrives in time: the
// high-water mark can sit past trailing transaction markers that are never
// delivered as messages.
type KafkaConfig struct {
	Brokers         []string      `yaml:"brokers"`
	Topic           string        `yaml:"topic"`
	Partition       int           `yaml:"partition"`
	DialTimeout     time.Duration `yaml:"dialTimeout"`
	ReadIdleTimeout time.Duration `yaml:"readIdleTimeout"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"poolSize"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// ServerConfig holds settings for the health endpoint and shutdown.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the corpus layer cannot act on.
func (c *Config) Validate() error {
	switch c.Corpus.Source {
	case SourceMemory:
	case SourceDir:
		if c.Corpus.Dir == "" {
			return fmt.Errorf("corpus.dir is required for source %q", SourceDir)
		}
	case SourceRedis:
		if c.Corpus.RedisKey == "" {
			return fmt.Errorf("corpus.redisKey is required for source %q", SourceRedis)
		}
	case SourcePostgres:
		if c.Corpus.PostgresTable == "" {
			return fmt.Errorf("corpus.postgresTable is required for source %q", SourcePostgres)
		}
	case SourceKafka:
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.brokers and kafka.topic are required for source %q", SourceKafka)
		}
		if c.Kafka.ReadIdleTimeout <= 0 {
			return fmt.Errorf("kafka.readIdleTimeout must be positive, got %s", c.Kafka.ReadIdleTimeout)
		}
	default:
		return fmt.Errorf("unknown corpus source %q", c.Corpus.Source)
	}
	if c.Corpus.ReadConcurrency < 1 {
		return fmt.Errorf("corpus.readConcurrency must be positive, got %d", c.Corpus.ReadConcurrency)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Source:          SourceDir,
			Dir:             "docs",
			ReadConcurrency: 4,
			RedisKey:        "termindex:docs",
			PostgresTable:   "documents",
		},
		Lexicon: LexiconConfig{
			Language: "english",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "termindex",
			User:            "termindex",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:         []string{"localhost:9092"},
			Topic:           "termindex.corpus",
			Partition:       0,
			DialTimeout:     10 * time.Second,
			ReadIdleTimeout: 5 * time.Second,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			PoolSize: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
		},
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// applyEnvOverrides reads TI_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TI_CORPUS_SOURCE"); v != "" {
		cfg.Corpus.Source = v
	}
	if v := os.Getenv("TI_CORPUS_DIR"); v != "" {
		cfg.Corpus.Dir = v
	}
	if v := os.Getenv("TI_CORPUS_READ_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Corpus.ReadConcurrency = n
		}
	}
	if v := os.Getenv("TI_LEXICON_STOPWORDS_FILE"); v != "" {
		cfg.Lexicon.StopwordsFile = v
	}
	if v := os.Getenv("TI_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("TI_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("TI_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("TI_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("TI_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("TI_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("TI_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("TI_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("TI_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("TI_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TI_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("TI_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
