package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "STORAGE_BACKEND", "KEY_PREFIX", "FILE_STORE", "LOG_MAX_FILES", "PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StorageBackend != BackendPostgres {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendPostgres)
	}
	if cfg.FileStore != FileStoreDisk {
		t.Errorf("FileStore = %q, want %q", cfg.FileStore, FileStoreDisk)
	}
	if cfg.KeyPrefix != "dev_" {
		t.Errorf("KeyPrefix = %q, want dev_", cfg.KeyPrefix)
	}
	if cfg.LogMaxFiles != 10 {
		t.Errorf("LogMaxFiles = %d, want 10", cfg.LogMaxFiles)
	}
}

func TestGetKeyPrefix(t *testing.T) {
	tests := []struct {
		env      string
		override string
		want     string
	}{
		{env: "prod", want: "prod_"},
		{env: "test", want: "test_"},
		{env: "dev", want: "dev_"},
		{env: "staging", want: "dev_"},
		{env: "prod", override: "custom_", want: "custom_"},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.override, func(t *testing.T) {
			t.Setenv("KEY_PREFIX", tt.override)
			if got := getKeyPrefix(tt.env); got != tt.want {
				t.Errorf("getKeyPrefix(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoad_BackendIsCaseInsensitive(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "KV")
	t.Setenv("LOG_MAX_FILES", "not-a-number")

	cfg := Load()
	if cfg.StorageBackend != BackendKV {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendKV)
	}
	if cfg.LogMaxFiles != 10 {
		t.Errorf("LogMaxFiles = %d, want fallback 10", cfg.LogMaxFiles)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"irportal-2024-01-01T00-00-00.log",
		"irportal-2024-01-02T00-00-00.log",
		"irportal-2024-01-03T00-00-00.log",
		"unrelated.log",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := cleanupOldLogs(dir, 2); err != nil {
		t.Fatalf("cleanupOldLogs: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, names[0])); !os.IsNotExist(err) {
		t.Errorf("oldest log should have been removed")
	}
	for _, name := range names[1:] {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s should remain: %v", name, err)
		}
	}
}
