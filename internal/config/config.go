// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration

	// Storage
	DataBackend   string
	DBPath        string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	// AMQP event publishing; disabled when AMQPURL is empty
	AMQPURL           string
	AMQPExchange      string
	AMQPRoutingPrefix string

	// Seeded admin
	AdminID    string
	AdminName  string
	AdminEmail string

	// Ledger rules
	RequireGroupMembership bool
}

// Load reads a .env file if present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DataBackend:   getEnv("DATA_BACKEND", BackendSQLite),
		DBPath:        getEnv("DB_PATH", "./data/chamaa.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "chamaa"),

		AMQPURL:           getEnv("AMQP_URL", ""),
		AMQPExchange:      getEnv("AMQP_EXCHANGE", "chamaa"),
		AMQPRoutingPrefix: getEnv("AMQP_ROUTING_PREFIX", "ledger"),

		AdminID:    getEnv("ADMIN_ID", ""),
		AdminName:  getEnv("ADMIN_NAME", "Admin"),
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@chamaa.local"),

		RequireGroupMembership: getEnvBool("REQUIRE_GROUP_MEMBERSHIP", false),
	}
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate validates the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	validBackends := []string{BackendMemory, BackendSQLite, BackendPostgres, BackendMongo}
	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendSQLite && c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty when using sqlite backend")
	}

	if c.DataBackend == BackendPostgres {
		if c.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when using postgres backend")
		} else if u, err := url.Parse(c.DatabaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid DATABASE_URL: %v", err))
		} else if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			errors = append(errors, fmt.Sprintf("invalid DATABASE_URL scheme '%s': must be 'postgres' or 'postgresql'", u.Scheme))
		}
	}

	if c.DataBackend == BackendMongo {
		if c.MongoURI == "" {
			errors = append(errors, "MONGO_URI is required when using mongo backend")
		} else if u, err := url.Parse(c.MongoURI); err != nil {
			errors = append(errors, fmt.Sprintf("invalid MONGO_URI: %v", err))
		} else if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
			errors = append(errors, fmt.Sprintf("invalid MONGO_URI scheme '%s': must be 'mongodb' or 'mongodb+srv'", u.Scheme))
		}
		if c.MongoDatabase == "" {
			errors = append(errors, "MONGO_DATABASE cannot be empty when using mongo backend")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if strings.TrimSpace(c.AdminName) == "" {
		errors = append(errors, "ADMIN_NAME cannot be empty")
	}
	if strings.TrimSpace(c.AdminEmail) == "" {
		errors = append(errors, "ADMIN_EMAIL cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
