// Package config loads the console's configuration from the environment.
// Every setting has a default, so an empty environment runs the console
// against DynamoDB in the SDK's default region with default table names.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/jacentio/vendoradmin/store"
)

// Store backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Cascade CascadeConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// RequestTimeout bounds each request, including cascades.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	// Backend is "dynamodb" or "memory".
	Backend string `env:"STORE_BACKEND" envDefault:"dynamodb"`

	// Endpoint overrides the DynamoDB endpoint (e.g., DynamoDB Local).
	Endpoint string `env:"DYNAMODB_ENDPOINT"`

	// Region overrides the SDK's default region resolution.
	Region string `env:"AWS_REGION"`

	TablePrefix  string `env:"DYNAMODB_TABLE_PREFIX" envDefault:"admin_"`
	SubItemTable string `env:"DYNAMODB_SUBITEM_TABLE"`

	// VendorIndex is the products GSI keyed by vendorId. "none" disables it
	// and filtered product lists fall back to Scan.
	VendorIndex string `env:"DYNAMODB_VENDOR_INDEX" envDefault:"vendorId-index"`
}

// Tables returns the DynamoDB table layout.
func (s StoreConfig) Tables() store.Config {
	cfg := store.Config{
		TablePrefix:  s.TablePrefix,
		SubItemTable: s.SubItemTable,
		Indexes:      map[string]string{},
	}
	if s.VendorIndex != "" && s.VendorIndex != "none" {
		cfg.Indexes["products.vendorId"] = s.VendorIndex
	}
	return cfg
}

// CascadeConfig tunes cascade deletes.
type CascadeConfig struct {
	// Limit is the number of concurrent child deletes.
	Limit int `env:"CASCADE_LIMIT" envDefault:"8"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from the process environment and validates it.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads configuration from the given variables only.
func LoadFrom(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must be non-negative"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_REQUEST_TIMEOUT must be positive"))
	}

	switch strings.ToLower(c.Store.Backend) {
	case BackendDynamoDB, BackendMemory:
		c.Store.Backend = strings.ToLower(c.Store.Backend)
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND %q must be %q or %q", c.Store.Backend, BackendDynamoDB, BackendMemory))
	}
	if c.Store.TablePrefix == "" {
		errs = append(errs, errors.New("DYNAMODB_TABLE_PREFIX must not be empty"))
	}

	if c.Cascade.Limit < 1 {
		errs = append(errs, fmt.Errorf("CASCADE_LIMIT (%d) must be positive", c.Cascade.Limit))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be \"text\" or \"json\"", c.Logging.Format))
	}

	return errors.Join(errs...)
}
