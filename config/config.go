package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Boarding BoardingConfig `yaml:"boarding"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address        string `yaml:"address"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	SwaggerEnabled bool   `yaml:"swagger_enabled"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Enabled reports whether runs should be persisted at all.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	SequenceTopic string   `yaml:"sequence_topic"`
	GroupID       string   `yaml:"group_id"`
}

type BoardingConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	RetentionHours  int `yaml:"retention_hours"`
}

type WorkerConfig struct {
	ExportDir         string `yaml:"export_dir"`
	PurgeSweepMinutes int    `yaml:"purge_sweep_minutes"`
	PublishMaxRetries int    `yaml:"publish_max_retries"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Default returns the values used for keys missing from the config file.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			MaxUploadBytes: 16 << 20,
			SwaggerEnabled: true,
		},
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable"},
		Kafka: KafkaConfig{
			SequenceTopic: "boarding.sequences",
			GroupID:       "boarding-exporter",
		},
		Boarding: BoardingConfig{
			CacheTTLSeconds: 600,
			RetentionHours:  72,
		},
		Worker: WorkerConfig{
			ExportDir:         "exports",
			PurgeSweepMinutes: 30,
			PublishMaxRetries: 3,
		},
		Log: LogConfig{Level: "INFO", Format: "json"},
	}
}
