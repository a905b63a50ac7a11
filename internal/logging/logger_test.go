package logging

import (
	"os"
	"path/filepath"
	"testing"

	"dataviewer/internal/config"
)

func writeConfig(t *testing.T, workspace string, logging config.LoggingConfig) {
	t.Helper()
	cfg := &config.UserConfig{Logging: logging}
	if err := cfg.Save(filepath.Join(workspace, ".dataviewer", "config.json")); err != nil {
		t.Fatal(err)
	}
}

func resetState(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		CloseAll()
		cfgMu.Lock()
		cfg = config.LoggingConfig{}
		cfgMu.Unlock()
		logsDir = ""
	})
}

func TestInitializeDisabledByDefault(t *testing.T) {
	resetState(t)
	workspace := t.TempDir()

	if err := Initialize(workspace); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if IsDebugMode() {
		t.Error("debug mode must default to off")
	}

	API("should go nowhere")
	if _, err := os.Stat(filepath.Join(workspace, ".dataviewer", "logs")); !os.IsNotExist(err) {
		t.Error("no logs directory expected when debug mode is off")
	}
}

func TestInitializeDebugModeWritesFiles(t *testing.T) {
	resetState(t)
	workspace := t.TempDir()
	writeConfig(t, workspace, config.LoggingConfig{DebugMode: true})

	if err := Initialize(workspace); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !IsDebugMode() {
		t.Fatal("debug mode not picked up from config")
	}

	Generator("generated %s", "view_mnist_train.py")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(workspace, ".dataviewer", "logs"))
	if err != nil {
		t.Fatalf("logs directory missing: %v", err)
	}
	found := false
	for _, e := range entries {
		data, _ := os.ReadFile(filepath.Join(workspace, ".dataviewer", "logs", e.Name()))
		if len(data) > 0 && filepath.Ext(e.Name()) == ".log" {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one non-empty log file")
	}
}

func TestCategoryFiltering(t *testing.T) {
	resetState(t)
	workspace := t.TempDir()
	writeConfig(t, workspace, config.LoggingConfig{
		DebugMode:  true,
		Categories: map[string]bool{"api": false},
	})

	if err := Initialize(workspace); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if IsCategoryEnabled(CategoryAPI) {
		t.Error("api category must be disabled")
	}
	if !IsCategoryEnabled(CategoryDataset) {
		t.Error("unlisted categories default to enabled")
	}
}

func TestInitializeEmptyWorkspace(t *testing.T) {
	if err := Initialize(""); err == nil {
		t.Error("expected error for empty workspace")
	}
}
