package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/dblpend/internal/config"
	"github.com/san-kum/dblpend/internal/dynamo"
)

func TestLiveLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.log")
	logger, closer, err := liveLogger(path)
	if err != nil {
		t.Fatalf("live logger: %v", err)
	}
	dynamo.SetLogger(logger)
	dynamo.Logger().Debug("state diverged, restarting", "t", 1.5)
	dynamo.SetLogger(nil)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "state diverged, restarting") || !strings.Contains(string(data), "t=1.5") {
		t.Errorf("unexpected log contents: %q", data)
	}
}

func TestRunSavesResolvedConfig(t *testing.T) {
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	saveConfigPath = filepath.Join(dir, "resolved.yaml")
	defer func() { dataDir, saveConfigPath = ".dblpend", "" }()

	cmd := &cobra.Command{Use: "run"}
	addSimFlags(cmd)
	for name, value := range map[string]string{"time": "0.1", "seed": "9", "g": "2.5"} {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	cmd.SetContext(context.Background())

	if err := runSimulation(cmd, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	cfg, err := config.Load(saveConfigPath)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if cfg.Duration != 0.1 || cfg.Seed != 9 || cfg.Constants.G != 2.5 {
		t.Errorf("unexpected saved config: %+v", cfg)
	}
	entries, err := os.ReadDir(dataDir)
	if err != nil || len(entries) != 1 {
		t.Errorf("expected one stored run, got %d (%v)", len(entries), err)
	}
}
