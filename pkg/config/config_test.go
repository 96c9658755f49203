package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadConfigOptional_EmptyPath tests loading when file path is empty
func TestLoadConfigOptional_EmptyPath(t *testing.T) {
	t.Setenv("PORT", "9999")

	cfg, err := LoadConfigOptional("")
	if err != nil {
		t.Fatalf("LoadConfigOptional with empty path should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected non-nil config")
	}
	if cfg.Port != 9999 {
		t.Errorf("Expected Port=9999 from env, got %d", cfg.Port)
	}
}

// TestLoadConfigOptional_FileNotExist tests loading when file does not exist
func TestLoadConfigOptional_FileNotExist(t *testing.T) {
	nonExistentPath := filepath.Join(t.TempDir(), "config-does-not-exist.yaml")

	cfg, err := LoadConfigOptional(nonExistentPath)
	if err != nil {
		t.Fatalf("LoadConfigOptional with non-existent file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected non-nil config")
	}
}

// TestLoadConfigOptional_InvalidYAML tests loading when file exists but has invalid YAML
func TestLoadConfigOptional_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
port: 5001
region: "us-central1"
  invalid indentation here
  more bad yaml
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := LoadConfigOptional(configPath)
	if err == nil {
		t.Fatal("Expected error when loading invalid YAML, got nil")
	}
}

// TestLoadConfigOptional_ValidConfig tests loading when file exists with valid config
func TestLoadConfigOptional_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "valid.yaml")

	validYAML := `
port: 8081
projectId: "demo-project"
region: "europe-west1"
clusterName: "etl-cluster"
bucketName: "etl-results"
logLevel: "debug"
`
	if err := os.WriteFile(configPath, []byte(validYAML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadConfigOptional(configPath)
	if err != nil {
		t.Fatalf("LoadConfigOptional failed: %v", err)
	}
	if cfg.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.Port)
	}
	if cfg.ProjectID != "demo-project" {
		t.Errorf("ProjectID = %q, want demo-project", cfg.ProjectID)
	}
	if cfg.Region != "europe-west1" {
		t.Errorf("Region = %q, want europe-west1", cfg.Region)
	}
	if cfg.ClusterName != "etl-cluster" {
		t.Errorf("ClusterName = %q, want etl-cluster", cfg.ClusterName)
	}
	if cfg.BucketName != "etl-results" {
		t.Errorf("BucketName = %q, want etl-results", cfg.BucketName)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "base.yaml")
	if err := os.WriteFile(configPath, []byte("region: us-central1\nclusterName: from-file\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	t.Setenv("CLUSTER_NAME", "from-env")
	t.Setenv("BUCKET_NAME", "bucket-env")

	cfg, err := LoadConfigOptional(configPath)
	if err != nil {
		t.Fatalf("LoadConfigOptional failed: %v", err)
	}
	if cfg.ClusterName != "from-env" {
		t.Errorf("ClusterName = %q, env should win over file", cfg.ClusterName)
	}
	if cfg.BucketName != "bucket-env" {
		t.Errorf("BucketName = %q, want bucket-env", cfg.BucketName)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfigOptional("")
	if err != nil {
		t.Fatalf("LoadConfigOptional failed: %v", err)
	}
	if cfg.Port != 5001 {
		t.Errorf("Port default = %d, want 5001", cfg.Port)
	}
	if cfg.Region != "us-central1" {
		t.Errorf("Region default = %q", cfg.Region)
	}
	if cfg.ClusterName != "cluster-dataproc" {
		t.Errorf("ClusterName default = %q", cfg.ClusterName)
	}
	if cfg.BucketName != "storage-dataproc-cluster-bucket" {
		t.Errorf("BucketName default = %q", cfg.BucketName)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat default = %q", cfg.LogFormat)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 5001, Region: "us-central1", ClusterName: "c", BucketName: "b", Env: "prod"}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "projectId") {
		t.Errorf("expected projectId validation error in prod, got %v", err)
	}

	cfg.ProjectID = "demo"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.Env = "dev"
	cfg.ProjectID = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("dev should not require projectId, got %v", err)
	}

	cfg.Port = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected port validation error")
	}
}
