package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ALHYRA"

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Store    StoreConfig    `mapstructure:"store"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Business BusinessConfig `mapstructure:"business"`
	Login    LoginConfig    `mapstructure:"login"`
	Session  SessionConfig  `mapstructure:"session"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type StoreConfig struct {
	// Driver is "memory" or "mongo".
	Driver string `mapstructure:"driver"`
	Seed   bool   `mapstructure:"seed"`
}

type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type BusinessConfig struct {
	WhatsApp string `mapstructure:"whatsapp"`
}

type LoginConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type SessionConfig struct {
	Lifetime time.Duration `mapstructure:"lifetime"`
	Secure   bool          `mapstructure:"secure"`
}

type KafkaConfig struct {
	Brokers    []string `mapstructure:"brokers"`
	Topic      string   `mapstructure:"topic"`
	MaxRetries int      `mapstructure:"max_retries"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Load reads an optional .env file, then an optional TOML file at path, then
// ALHYRA_* environment overrides (ALHYRA_MONGO_URI for mongo.uri and so on).
// DB_URL is honoured for mongo.uri as well.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("mongo.uri", envPrefix+"_MONGO_URI", "DB_URL"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	switch c.Store.Driver {
	case "memory":
	case "mongo":
		if c.Mongo.URI == "" {
			return errors.New("mongo.uri is required for the mongo store")
		}
		if c.Mongo.Database == "" {
			return errors.New("mongo.database is required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		return errors.New("admin.email and admin.password are required")
	}
	if c.Business.WhatsApp == "" {
		return errors.New("business.whatsapp is required")
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return errors.New("kafka.topic is required when brokers are set")
	}
	if c.Login.Delay < 0 {
		return errors.New("login.delay cannot be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":4000")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", time.Minute)

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.seed", true)

	v.SetDefault("mongo.database", "alhyra")
	v.SetDefault("mongo.timeout", 10*time.Second)

	v.SetDefault("admin.email", "admin@alhyra.com")
	v.SetDefault("admin.password", "AlHyraAdmin786")
	v.SetDefault("admin.name", "Al Hyra Admin")

	v.SetDefault("business.whatsapp", "919751311724")

	v.SetDefault("login.delay", 800*time.Millisecond)

	v.SetDefault("session.lifetime", 24*time.Hour)
	v.SetDefault("session.secure", false)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "alhyra.notifications")
	v.SetDefault("kafka.max_retries", 3)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/alhyra.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)
}
