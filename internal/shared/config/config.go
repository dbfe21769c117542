package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Database   DatabaseConfig
	Firebase   FirebaseConfig
	Encryption EncryptionConfig
	Retention  RetentionConfig
	TLS        TLSConfig
	Telemetry  TelemetryConfig
	Messages   MessagesConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	AllowedHosts []string
}

type StorageConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type FirebaseConfig struct {
	CredentialsFile string
	ProjectID       string
}

// EncryptionConfig controls encryption of raw messages at rest. Empty
// passphrase disables it.
type EncryptionConfig struct {
	Passphrase string
	Salt       string
}

type RetentionConfig struct {
	Enabled          bool
	ScheduleTimes    []string
	WorkerCount      int
	JobDelay         time.Duration
	QueueSize        int
	RunOnStartup     bool
	KeepTransactions int
}

type TLSConfig struct {
	Enabled      bool
	CertPath     string
	KeyPath      string
	RedirectHTTP bool
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	MetricsPort  string
}

type MessagesConfig struct {
	Path string
}

func Load() (*Config, error) {

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	retentionTimes := splitList(getEnv("RETENTION_TIMES", "03:00"))
	retentionWorkers, err := strconv.Atoi(getEnv("RETENTION_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_WORKERS: %w", err)
	}
	retentionJobDelay, err := time.ParseDuration(getEnv("RETENTION_JOB_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_JOB_DELAY: %w", err)
	}
	retentionQueueSize, err := strconv.Atoi(getEnv("RETENTION_QUEUE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_QUEUE_SIZE: %w", err)
	}
	retentionKeep, err := strconv.Atoi(getEnv("RETENTION_KEEP_TRANSACTIONS", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_KEEP_TRANSACTIONS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("HOST", "0.0.0.0"),
			AllowedHosts: splitList(getEnv("ALLOWED_HOSTS", "")),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", DriverFirestore),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "dashboard"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "dashboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Firebase: FirebaseConfig{
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Encryption: EncryptionConfig{
			Passphrase: getEnv("ENCRYPTION_PASSPHRASE", ""),
			Salt:       getEnv("ENCRYPTION_SALT", ""),
		},
		Retention: RetentionConfig{
			Enabled:          getBoolEnv("RETENTION_ENABLED", true),
			ScheduleTimes:    retentionTimes,
			WorkerCount:      retentionWorkers,
			JobDelay:         retentionJobDelay,
			QueueSize:        retentionQueueSize,
			RunOnStartup:     getBoolEnv("RETENTION_RUN_ON_STARTUP", false),
			KeepTransactions: retentionKeep,
		},
		TLS: TLSConfig{
			Enabled:      getBoolEnv("TLS_ENABLED", false),
			CertPath:     getEnv("TLS_CERT_PATH", ""),
			KeyPath:      getEnv("TLS_KEY_PATH", ""),
			RedirectHTTP: getBoolEnv("TLS_REDIRECT_HTTP", false),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "dashboard-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
			MetricsPort:  getEnv("METRICS_PORT", "9090"),
		},
		Messages: MessagesConfig{
			Path: getEnv("MESSAGES_FILE", ""),
		},
	}

	switch cfg.Storage.Driver {
	case DriverFirestore, DriverPostgres:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER: %q", cfg.Storage.Driver)
	}

	if cfg.Storage.Driver == DriverFirestore && cfg.Firebase.CredentialsFile == "" && cfg.Firebase.ProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_FILE or FIREBASE_PROJECT_ID is required with the firestore driver")
	}

	if (cfg.Encryption.Passphrase == "") != (cfg.Encryption.Salt == "") {
		return nil, fmt.Errorf("ENCRYPTION_PASSPHRASE and ENCRYPTION_SALT must be set together")
	}

	if cfg.Retention.KeepTransactions < 1 {
		return nil, fmt.Errorf("RETENTION_KEEP_TRANSACTIONS must be at least 1")
	}

	if cfg.TLS.Enabled {
		if cfg.TLS.CertPath == "" {
			return nil, fmt.Errorf("TLS_CERT_PATH is required when TLS_ENABLED=true")
		}
		if cfg.TLS.KeyPath == "" {
			return nil, fmt.Errorf("TLS_KEY_PATH is required when TLS_ENABLED=true")
		}
	}

	return cfg, nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// EncryptionEnabled reports whether raw messages should be encrypted at rest.
func (c *Config) EncryptionEnabled() bool {
	return c.Encryption.Passphrase != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept: true, false, 1, 0, yes, no (case-insensitive)
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
