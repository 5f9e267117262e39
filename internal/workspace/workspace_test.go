package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stylometer/internal/config"
	"stylometer/internal/similarity"
)

func TestEnsureAt(t *testing.T) {
	base := filepath.Join(t.TempDir(), BaseDirName)
	root, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}

	for _, p := range []string{filepath.Join(root, "models"), filepath.Join(root, "reports"), SettingsPath(root)} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected path to exist %s: %v", p, err)
		}
	}

	cfg, err := config.Load(SettingsPath(root), true, root)
	if err != nil {
		t.Fatalf("load seeded settings: %v", err)
	}
	if cfg.ModelDir != filepath.Join(root, "models") {
		t.Fatalf("unexpected model dir %s", cfg.ModelDir)
	}
}

func TestEnsureAtKeepsSettings(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "configs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := []byte("model_dir = \"elsewhere\"\n")
	if err := os.WriteFile(SettingsPath(base), custom, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("ensure workspace: %v", err)
	}
	raw, err := os.ReadFile(SettingsPath(base))
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if string(raw) != string(custom) {
		t.Fatalf("settings were overwritten: %s", raw)
	}
}

func TestSaveReport(t *testing.T) {
	root := t.TempDir()
	report := Report{
		RunID:     "run-1",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Result:    similarity.Result{Unknown: "mystery", Winner: "source1"},
	}
	path, err := SaveReport(root, report)
	if err != nil {
		t.Fatalf("save report: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var got Report
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if got.Result.Winner != "source1" || !got.CreatedAt.Equal(report.CreatedAt) {
		t.Fatalf("unexpected report %+v", got)
	}
}
