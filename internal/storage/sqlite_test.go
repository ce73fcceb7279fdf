package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.bonanza/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".bonanza", "runs.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{CampaignID: "browser-bash", Player: "neo", Score: 100, LevelsCompleted: 5, Finished: true},
		{CampaignID: "browser-bash", Player: "trinity", Score: 45, LevelsCompleted: 3},
		{CampaignID: "browser-bash", Player: "morpheus", Score: 70, LevelsCompleted: 4},
		{CampaignID: "heist", Player: "neo", Score: 10, LevelsCompleted: 1},
	}
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("SaveRun() returned non-UUID id %q", id)
		}
	}

	top, err := store.TopRuns("browser-bash", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Should be sorted descending
	if top[0].Score != 100 || top[1].Score != 70 || top[2].Score != 45 {
		t.Errorf("Runs not in expected order: %v", top)
	}
	if top[0].Player != "neo" || !top[0].Finished || top[0].LevelsCompleted != 5 {
		t.Errorf("top run = %+v", top[0])
	}
	if top[1].Finished {
		t.Error("unfinished run read back as finished")
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreSaveRunKeepsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "fixed-id", CampaignID: "c", Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() id = %q, expected fixed-id", id)
	}

	if _, err := store.SaveRun(Run{ID: "fixed-id", CampaignID: "c", Score: 2}); err == nil {
		t.Error("SaveRun() with duplicate id should fail")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{CampaignID: "test", Score: (i + 1) * 10})
	}

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 50 || runs[1].Score != 40 || runs[2].Score != 30 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	// Non-positive limit falls back to 10
	runs, err = store.TopRuns("test", 0)
	if err != nil || len(runs) != 5 {
		t.Errorf("TopRuns(0) = %d runs, %v", len(runs), err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("browser-bash")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for no runs, got %d", high)
	}

	store.SaveRun(Run{CampaignID: "browser-bash", Score: 25})
	store.SaveRun(Run{CampaignID: "browser-bash", Score: 100})

	high, err = store.HighScore("browser-bash")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 100 {
		t.Errorf("Expected high score 100, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{CampaignID: "a", Score: 10})
	store.SaveRun(Run{CampaignID: "b", Score: 20})

	if err := store.ClearRuns("a"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("a", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	runs, _ = store.TopRuns("b", 10)
	if len(runs) != 1 {
		t.Errorf("Other campaign affected by clear, got %d runs", len(runs))
	}
}

func TestStoreCampaignStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetCampaignStats("browser-bash")
	if err != nil {
		t.Fatalf("GetCampaignStats() failed: %v", err)
	}
	if stats.RunsCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveRun(Run{CampaignID: "browser-bash", Score: 100, Finished: true})
	store.SaveRun(Run{CampaignID: "browser-bash", Score: 50})

	stats, err = store.GetCampaignStats("browser-bash")
	if err != nil {
		t.Fatalf("GetCampaignStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.FinishedCount != 1 || stats.HighScore != 100 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 75 {
		t.Errorf("AvgScore = %v, expected 75", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}
