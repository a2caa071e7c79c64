package config

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port            string        `mapstructure:"port"`
		Env             string        `mapstructure:"env"`
		CORSOrigins     []string      `mapstructure:"cors_origins"`
		StaticDir       string        `mapstructure:"static_dir"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"app"`
	Mongo struct {
		URI           string        `mapstructure:"uri"`
		Database      string        `mapstructure:"database"`
		MaxRetries    int           `mapstructure:"max_retries"`
		RetryInterval time.Duration `mapstructure:"retry_interval"`
		Timeout       time.Duration `mapstructure:"timeout"`
	} `mapstructure:"mongo"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	Log struct {
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`
}

// AllowAllOrigins reports whether CORS is unrestricted.
func (c Config) AllowAllOrigins() bool {
	if len(c.App.CORSOrigins) == 0 {
		return true
	}
	for _, o := range c.App.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// LoadConfig reads path/.env and path/config.yaml when present, then applies
// environment overrides. Missing files are not an error.
func LoadConfig(path string) (cfg Config, err error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string][]string{
		"app.port":              {"APP_PORT", "PORT"},
		"app.env":               {"APP_ENV", "NODE_ENV"},
		"app.cors_origins":      {"CORS_ORIGINS"},
		"app.static_dir":        {"APP_STATIC_DIR"},
		"app.shutdown_timeout":  {"APP_SHUTDOWN_TIMEOUT"},
		"mongo.uri":             {"MONGO_URI"},
		"mongo.database":        {"MONGO_DATABASE"},
		"mongo.max_retries":     {"MONGO_MAX_RETRIES"},
		"mongo.retry_interval":  {"MONGO_RETRY_INTERVAL"},
		"mongo.timeout":         {"MONGO_TIMEOUT"},
		"redis.addr":            {"REDIS_ADDR"},
		"redis.password":        {"REDIS_PASSWORD"},
		"redis.cache_ttl":       {"REDIS_CACHE_TTL"},
		"kafka.brokers":         {"KAFKA_BROKERS"},
		"kafka.topic":           {"KAFKA_TOPIC"},
		"kafka.group_id":        {"KAFKA_GROUP_ID"},
		"tracing.otlp_endpoint": {"OTLP_ENDPOINT"},
		"log.file":              {"LOG_FILE"},
		"log.max_size_mb":       {"LOG_MAX_SIZE_MB"},
		"log.max_backups":       {"LOG_MAX_BACKUPS"},
		"log.max_age_days":      {"LOG_MAX_AGE_DAYS"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return cfg, err
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.App.CORSOrigins = cleanList(cfg.App.CORSOrigins)
	cfg.Kafka.Brokers = cleanList(cfg.Kafka.Brokers)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "5000")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.static_dir", "./staticUi")
	v.SetDefault("app.shutdown_timeout", 10*time.Second)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "profiles")
	v.SetDefault("mongo.max_retries", 5)
	v.SetDefault("mongo.retry_interval", 5*time.Second)
	v.SetDefault("mongo.timeout", 10*time.Second)
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("kafka.topic", "profile.events")
	v.SetDefault("kafka.group_id", "profile-audit")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// cleanList trims entries split from a comma separated value and drops blanks.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
