package config

import (
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_PROJECT_ID", "dashboard-test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Storage.Driver != DriverFirestore {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, DriverFirestore)
	}
	if cfg.Retention.KeepTransactions != 50 {
		t.Errorf("Retention.KeepTransactions = %d, want 50", cfg.Retention.KeepTransactions)
	}
	if !cfg.Retention.Enabled {
		t.Error("Retention.Enabled = false, want true")
	}
	if cfg.EncryptionEnabled() {
		t.Error("EncryptionEnabled() = true with no passphrase set")
	}
}

func TestLoad_MissingFirebaseConfig(t *testing.T) {
	_, err := Load()
	if err == nil {
		t.Error("Load() expected error with firestore driver and no firebase config, got nil")
	}
}

func TestLoad_PostgresDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, DriverPostgres)
	}
	want := "host=localhost port=5432 user=dashboard password=secret dbname=dashboard sslmode=disable"
	if got := cfg.Database.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}

func TestLoad_InvalidStorageDriver(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("STORAGE_DRIVER", "mongodb")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for unknown STORAGE_DRIVER, got nil")
	}
}

func TestLoad_EncryptionRequiresBothValues(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("ENCRYPTION_PASSPHRASE", "hunter2")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for passphrase without salt, got nil")
	}
}

func TestLoad_RetentionSettings(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("RETENTION_TIMES", "01:00, 13:00")
	t.Setenv("RETENTION_KEEP_TRANSACTIONS", "25")
	t.Setenv("RETENTION_JOB_DELAY", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Retention.ScheduleTimes) != 2 || cfg.Retention.ScheduleTimes[1] != "13:00" {
		t.Errorf("ScheduleTimes = %v, want trimmed two entries", cfg.Retention.ScheduleTimes)
	}
	if cfg.Retention.KeepTransactions != 25 {
		t.Errorf("KeepTransactions = %d, want 25", cfg.Retention.KeepTransactions)
	}
	if cfg.Retention.JobDelay != 250*time.Millisecond {
		t.Errorf("JobDelay = %v, want 250ms", cfg.Retention.JobDelay)
	}
}

func TestLoad_InvalidRetentionKeep(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("RETENTION_KEEP_TRANSACTIONS", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for RETENTION_KEEP_TRANSACTIONS=0, got nil")
	}
}

func TestLoad_TLSRequiresCertAndKey(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("TLS_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for TLS without cert paths, got nil")
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"YES", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"banana", true}, // falls back to default
	}
	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		if got := getBoolEnv("TEST_BOOL", true); got != tt.want {
			t.Errorf("getBoolEnv(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
