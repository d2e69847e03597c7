package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SQLITE_DB_PATH", "AMQP_URL", "AMQP_EXCHANGE", "AMQP_QUEUE",
		"GOOGLE_SPREADSHEET_ID", "GOOGLE_SERVICE_ACCOUNT_JSON", "GOOGLE_SERVICE_ACCOUNT_FILE",
		"GOOGLE_APPLICATION_CREDENTIALS", "SYNC_BATCH_SIZE", "SYNC_INTERVAL",
		"DATA_BACKEND", "SEED_DATA_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want memory", cfg.DataBackend)
	}
	if cfg.AMQPExchange != "bankdash" {
		t.Errorf("AMQPExchange = %q, want bankdash", cfg.AMQPExchange)
	}
	if cfg.SyncBatchSize != 10 {
		t.Errorf("SyncBatchSize = %d, want 10", cfg.SyncBatchSize)
	}
	if cfg.SyncInterval != 30*time.Second {
		t.Errorf("SyncInterval = %v, want 30s", cfg.SyncInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SYNC_BATCH_SIZE", "25")
	t.Setenv("SYNC_INTERVAL", "2m")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %q, want sqlite", cfg.DataBackend)
	}
	if cfg.SyncBatchSize != 25 {
		t.Errorf("SyncBatchSize = %d, want 25", cfg.SyncBatchSize)
	}
	if cfg.SyncInterval != 2*time.Minute {
		t.Errorf("SyncInterval = %v, want 2m", cfg.SyncInterval)
	}
}

func TestValidateDefaultsPass(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should validate, got: %v", err)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Port = "not-a-port"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "invalid port") {
		t.Fatalf("expected port validation error, got: %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.DataBackend = "postgres"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "invalid data backend") {
		t.Fatalf("expected backend validation error, got: %v", err)
	}
}

func TestValidateSheetsBackendNeedsCredentials(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.DataBackend = "sheets"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("sheets backend without spreadsheet ID or credentials should fail validation")
	}
	if !strings.Contains(err.Error(), "Spreadsheet ID") {
		t.Errorf("error should mention the spreadsheet ID, got: %v", err)
	}
	if !strings.Contains(err.Error(), "GOOGLE_SERVICE_ACCOUNT_JSON") {
		t.Errorf("error should mention the credential envs, got: %v", err)
	}
}

func TestValidateRejectsBadAMQPScheme(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.AMQPURL = "http://localhost:5672/"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "invalid AMQP URL scheme") {
		t.Fatalf("expected AMQP scheme error, got: %v", err)
	}
}

func TestValidateAccumulatesErrors(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Port = "0"
	cfg.SyncBatchSize = 0
	cfg.SyncInterval = time.Millisecond

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	for _, want := range []string{"invalid port", "sync batch size", "sync interval"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}
