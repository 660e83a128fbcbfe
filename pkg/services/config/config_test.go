package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "valid.yaml")
	content := `query:
  function_name: "telemetry-query"
  region: "eu-west-1"
  profile: "fleet"
report:
  batch_size: 50
export:
  template_path: "/opt/templates/report.docx"
server:
  addr: ":9090"`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := LoadConfig(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Query.FunctionName != "telemetry-query" {
		t.Errorf("expected FunctionName=telemetry-query, got %s", cfg.Query.FunctionName)
	}
	if cfg.Query.Region != "eu-west-1" {
		t.Errorf("expected Region=eu-west-1, got %s", cfg.Query.Region)
	}
	if cfg.Report.BatchSize != 50 {
		t.Errorf("expected BatchSize=50, got %d", cfg.Report.BatchSize)
	}
	if cfg.Export.TemplatePath != "/opt/templates/report.docx" {
		t.Errorf("expected TemplatePath=/opt/templates/report.docx, got %s", cfg.Export.TemplatePath)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected Addr=:9090, got %s", cfg.Server.Addr)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	content := `query:
  function_name: "telemetry-query"`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Report.BatchSize != 100 {
		t.Errorf("expected default BatchSize=100, got %d", cfg.Report.BatchSize)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default Addr=:8080, got %s", cfg.Server.Addr)
	}
}

func TestLoadConfig_MissingFunctionName_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nofunc.yaml")
	err := os.WriteFile(path, []byte(`report:
  batch_size: 10`), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err = LoadConfig(path)
	if err == nil {
		t.Error("expected error for missing function name, got nil")
	}
}

func TestLoadConfig_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(path, []byte("query: func: bad: nesting"), 0o644)
	if err != nil {
		t.Fatalf("failed to write bad config: %v", err)
	}

	_, err = LoadConfig(path)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}
