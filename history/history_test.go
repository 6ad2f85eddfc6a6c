package history

import (
	"path/filepath"
	"testing"
	"time"

	"sokosolve/board"
)

func TestOpenCreatesTableAndSaveRecent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	started := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ended := started.Add(5 * time.Second)
	run := Run{
		ID:             "run-1",
		LevelName:      "level-1",
		StartedAt:      started,
		EndedAt:        ended,
		Solved:         true,
		StatesVisited:  42,
		PushesRequired: 3,
		Pushes:         []board.Push{{Box: 7, Dir: board.Right}},
	}
	if err := store.Save(run); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.LevelName != run.LevelName || !got.Solved {
		t.Fatalf("got %+v, want %+v", got, run)
	}
	if got.PushesRequired != 3 || got.StatesVisited != 42 {
		t.Fatalf("got %+v, want matching counts to %+v", got, run)
	}
	if len(got.Pushes) != 1 || got.Pushes[0].Box != 7 || got.Pushes[0].Dir != board.Right {
		t.Fatalf("Pushes round-trip failed: got %+v", got.Pushes)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		r := Run{
			ID:        id,
			LevelName: "lvl",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			EndedAt:   base.Add(time.Duration(i) * time.Hour),
			Solved:    true,
		}
		if err := store.Save(r); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}

	runs, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Fatalf("got order %s,%s, want run-c,run-b", runs[0].ID, runs[1].ID)
	}
}
