package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the keyword/value connection string for the database.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the database URL form used by the migration runner.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// KafkaConfig holds Kafka connection settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	StorageDriver string
	// AvailabilityMode selects the room availability oracle: "stub"
	// reports every room free, "storage" checks existing bookings for
	// interval overlap.
	AvailabilityMode string
	DBConfig         DatabaseConfig
	KafkaConfig      KafkaConfig
}

// Load reads configuration from BOOKING_-prefixed environment variables
// with development defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVICE_PORT", ":8083")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORAGE_DRIVER", "postgres")
	v.SetDefault("AVAILABILITY_MODE", "stub")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "booking")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "arcn-")

	cfg := &ServiceConfig{
		Port:             v.GetString("SERVICE_PORT"),
		AppEnv:           v.GetString("APP_ENV"),
		StorageDriver:    v.GetString("STORAGE_DRIVER"),
		AvailabilityMode: v.GetString("AVAILABILITY_MODE"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
	}

	switch cfg.StorageDriver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}

	switch cfg.AvailabilityMode {
	case "stub", "storage":
	default:
		return nil, fmt.Errorf("unknown availability mode: %s", cfg.AvailabilityMode)
	}

	if !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	return cfg, nil
}
