package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/vshooter/internal/config"
	"github.com/vovakirdan/vshooter/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRun(t *testing.T, store *storage.Store, r storage.Run) string {
	t.Helper()
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestPrintTopRunsShowsBest(t *testing.T) {
	store := openTestStore(t)
	saveRun(t, store, storage.Run{Stage: "Stage 1", Score: 300, Wave: 2, Outcome: storage.OutcomeGameOver})
	saveRun(t, store, storage.Run{Stage: "Stage 1", Score: 900, Wave: 3, Outcome: storage.OutcomeClear})

	var out bytes.Buffer
	if err := printTopRuns(&out, store, "Stage 1"); err != nil {
		t.Fatalf("printTopRuns() failed: %v", err)
	}
	if !strings.Contains(out.String(), "Best: 900") {
		t.Errorf("Expected best score line, got:\n%s", out.String())
	}

	out.Reset()
	if err := printTopRuns(&out, store, "Stage 2"); err != nil {
		t.Fatalf("printTopRuns() failed: %v", err)
	}
	if !strings.Contains(out.String(), "No runs recorded yet") {
		t.Errorf("Expected empty message, got:\n%s", out.String())
	}
}

func TestPrintRun(t *testing.T) {
	store := openTestStore(t)
	id := saveRun(t, store, storage.Run{Stage: "Stage 2", Score: 450, Wave: 2, Outcome: storage.OutcomeQuit, Ticks: 1200})

	var out bytes.Buffer
	if err := printRun(&out, store, id); err != nil {
		t.Fatalf("printRun() failed: %v", err)
	}
	for _, want := range []string{id, "Stage 2", "450", "quit", "1200"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in output:\n%s", want, out.String())
		}
	}

	if err := printRun(&out, store, "missing"); err == nil {
		t.Error("Expected error for unknown run id")
	}
}

func TestClearRuns(t *testing.T) {
	tests := []struct {
		name     string
		stage    string
		wantLeft int
	}{
		{"one stage", "Stage 1", 1},
		{"all stages", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t)
			saveRun(t, store, storage.Run{Stage: "Stage 1", Score: 100})
			saveRun(t, store, storage.Run{Stage: "Stage 2", Score: 200})

			var out bytes.Buffer
			if err := clearRuns(&out, store, tt.stage); err != nil {
				t.Fatalf("clearRuns() failed: %v", err)
			}
			if !strings.HasPrefix(out.String(), "Cleared") {
				t.Errorf("Expected confirmation, got %q", out.String())
			}

			runs, err := store.RecentRuns(10)
			if err != nil {
				t.Fatalf("RecentRuns() failed: %v", err)
			}
			if len(runs) != tt.wantLeft {
				t.Errorf("Expected %d runs left, got %d", tt.wantLeft, len(runs))
			}
		})
	}
}

func TestPrintStagesWithStats(t *testing.T) {
	store := openTestStore(t)
	saveRun(t, store, storage.Run{Stage: "Stage 1", Score: 700, Outcome: storage.OutcomeClear})
	saveRun(t, store, storage.Run{Stage: "Stage 1", Score: 200})

	stats, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}

	var out bytes.Buffer
	printStages(&out, config.DefaultShooterConfig().Stages, stats)

	lines := strings.Split(out.String(), "\n")
	var first string
	for _, l := range lines {
		if strings.Contains(l, "Stage 1") {
			first = l
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(first), "700") || !strings.Contains(first, " 2 ") {
		t.Errorf("Expected 2 runs and best 700 for Stage 1, got %q", first)
	}

	out.Reset()
	printStages(&out, nil, nil)
	if !strings.Contains(out.String(), "No stages configured") {
		t.Errorf("Expected empty message, got %q", out.String())
	}
}

func TestCheckStage(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{3, false},
		{4, true},
		{-1, true},
	}
	for _, tt := range tests {
		if err := checkStage(tt.n, 3); (err != nil) != tt.wantErr {
			t.Errorf("checkStage(%d, 3) error = %v, want error %v", tt.n, err, tt.wantErr)
		}
	}
}
