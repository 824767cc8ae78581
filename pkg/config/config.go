package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Recording RecordingConfig
	Chat      ChatConfig
}

// ServerConfig holds local gateway server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8090"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// BackendConfig holds the remote notes backend endpoints
type BackendConfig struct {
	BaseURL   string        `envconfig:"BACKEND_BASE_URL" default:"http://localhost:8000"`
	SocketURL string        `envconfig:"BACKEND_SOCKET_URL" default:"ws://localhost:8000/socket.io"`
	Timeout   time.Duration `envconfig:"BACKEND_TIMEOUT" default:"120s"`
}

// RecordingConfig holds real-time recording session configuration
type RecordingConfig struct {
	// AutoFetchDelay is the fixed delay before results of a real-time session
	// are fetched without an explicit stop: the 30s recording window plus
	// margin for the backend to finish processing.
	AutoFetchDelay time.Duration `envconfig:"RECORDING_AUTO_FETCH_DELAY" default:"35s"`
}

// ChatConfig holds chat relay configuration
type ChatConfig struct {
	// ReconnectAttempts bounds automatic reconnection. Once exhausted the
	// relay stays disconnected until the process is restarted.
	ReconnectAttempts uint64 `envconfig:"CHAT_RECONNECT_ATTEMPTS" default:"5"`
	// FilterByMeeting drops inbound messages tagged with a meeting other than
	// the selected one. Off by default: the original product shows every
	// inbound message regardless of meeting.
	FilterByMeeting bool `envconfig:"CHAT_FILTER_BY_MEETING" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Backend.SocketURL == "" {
		return fmt.Errorf("BACKEND_SOCKET_URL is required")
	}
	if c.Recording.AutoFetchDelay <= 0 {
		return fmt.Errorf("RECORDING_AUTO_FETCH_DELAY must be positive")
	}
	return nil
}

// GetServerAddr returns the local gateway listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
