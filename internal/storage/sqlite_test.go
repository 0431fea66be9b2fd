package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{SketchID: "flappy", Frames: 600, Seconds: 10, AvgFPS: 60, Score: 100},
		{SketchID: "flappy", Frames: 300, Seconds: 5, AvgFPS: 59, Score: 50},
		{SketchID: "flappy", Frames: 900, Seconds: 15, AvgFPS: 58, Score: 200, Faults: 2},
		{SketchID: "bounce", Frames: 60, Seconds: 1, AvgFPS: 60},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("flappy", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	if top[0].Score != 200 || top[1].Score != 100 || top[2].Score != 50 {
		t.Errorf("Runs not in score order: %+v", top)
	}
	if top[0].Faults != 2 || top[0].Frames != 900 || top[0].Seconds != 15 {
		t.Errorf("Run fields not preserved: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled by the database")
	}
}

func TestStoreSaveRunWithoutSketch(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{Score: 1}); err == nil {
		t.Error("SaveRun without sketch id should fail")
	}
}

func TestStoreTopRunsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{SketchID: "test", Score: (i + 1) * 100})
	}
	store.SaveRun(Run{SketchID: "test", Score: 500, Seconds: 30})

	top, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Score != 500 || top[0].Seconds != 30 {
		t.Errorf("Tie should go to the longer run, got %+v", top[0])
	}
	if top[1].Score != 500 || top[2].Score != 400 {
		t.Errorf("Runs not in expected order: %+v", top)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{SketchID: "a"})
	store.SaveRun(Run{SketchID: "b"})
	store.SaveRun(Run{SketchID: "c"})

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(recent))
	}
	if recent[0].SketchID != "c" || recent[1].SketchID != "b" {
		t.Errorf("Expected newest first, got %s, %s", recent[0].SketchID, recent[1].SketchID)
	}
}

func TestStoreBestScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("flappy")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for a sketch without runs, got %d", best)
	}

	store.SaveRun(Run{SketchID: "flappy", Score: 100})
	store.SaveRun(Run{SketchID: "flappy", Score: 300})
	store.SaveRun(Run{SketchID: "breakout", Score: 40})

	if best, _ = store.BestScore("flappy"); best != 300 {
		t.Errorf("Expected best score 300, got %d", best)
	}

	if err := store.ClearRuns("flappy"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns("flappy", 10); len(runs) != 0 {
		t.Errorf("Expected 0 flappy runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("breakout", 10); len(runs) != 1 {
		t.Error("Breakout runs should not be affected by clearing flappy")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.SketchStats("wander")
	if err != nil {
		t.Fatalf("SketchStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected zero stats, got %+v", empty)
	}

	store.SaveRun(Run{SketchID: "wander", Seconds: 10, AvgFPS: 60, Faults: 1})
	store.SaveRun(Run{SketchID: "wander", Seconds: 20, AvgFPS: 50, Faults: 2})
	store.SaveRun(Run{SketchID: "bounce", Seconds: 5, AvgFPS: 60})

	st, err := store.SketchStats("wander")
	if err != nil {
		t.Fatalf("SketchStats() failed: %v", err)
	}
	if st.Runs != 2 || st.TotalSeconds != 30 || st.AvgFPS != 55 || st.Faults != 3 {
		t.Errorf("Unexpected stats: %+v", st)
	}

	all, err := store.AllSketchStats()
	if err != nil {
		t.Fatalf("AllSketchStats() failed: %v", err)
	}
	if len(all) != 2 || all["bounce"].Runs != 1 {
		t.Errorf("Unexpected AllSketchStats: %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
