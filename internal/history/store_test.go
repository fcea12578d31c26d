package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	first, err := s.Save(ctx, Round{
		StartedAt:  base,
		FinishedAt: base.Add(30 * time.Second),
		Sentences:  3,
		Characters: 120,
		Keystrokes: 130,
		Mistakes:   10,
		Duration:   30 * time.Second,
		WPM:        48,
		Accuracy:   92.3,
		Source:     "builtin",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first.ID == "" {
		t.Fatal("Save should assign an ID")
	}

	second, err := s.Save(ctx, Round{
		ID:         "fixed-id",
		StartedAt:  base.Add(time.Hour),
		FinishedAt: base.Add(time.Hour + time.Minute),
		Duration:   time.Minute,
		WPM:        60,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if second.ID != "fixed-id" {
		t.Errorf("ID %q, want fixed-id", second.ID)
	}

	rounds, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("len(rounds) %d, want 2", len(rounds))
	}
	if rounds[0].ID != "fixed-id" {
		t.Errorf("newest round %q, want fixed-id", rounds[0].ID)
	}

	got := rounds[1]
	if got.ID != first.ID || got.Characters != 120 || got.Mistakes != 10 || got.Source != "builtin" {
		t.Errorf("round fields not preserved: %+v", got)
	}
	if got.Duration != 30*time.Second {
		t.Errorf("Duration %v, want 30s", got.Duration)
	}
	if !got.FinishedAt.Equal(base.Add(30 * time.Second)) {
		t.Errorf("FinishedAt %v", got.FinishedAt)
	}
}

func TestStore_RecentLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 5; i++ {
		if _, err := s.Save(ctx, Round{FinishedAt: now.Add(time.Duration(i) * time.Second)}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	rounds, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rounds) != 3 {
		t.Errorf("len(rounds) %d, want 3", len(rounds))
	}
}

func TestStore_Summary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if empty.Rounds != 0 || empty.BestWPM != 0 {
		t.Errorf("empty summary %+v", empty)
	}

	for _, wpm := range []float64{40, 60} {
		if _, err := s.Save(ctx, Round{WPM: wpm, Accuracy: 90, Duration: 10 * time.Second}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Rounds != 2 {
		t.Errorf("Rounds %d, want 2", sum.Rounds)
	}
	if sum.BestWPM != 60 || sum.AverageWPM != 50 {
		t.Errorf("BestWPM %.1f AverageWPM %.1f, want 60 and 50", sum.BestWPM, sum.AverageWPM)
	}
	if sum.AvgAccuracy != 90 {
		t.Errorf("AvgAccuracy %.1f, want 90", sum.AvgAccuracy)
	}
	if sum.TotalTime != 20*time.Second {
		t.Errorf("TotalTime %v, want 20s", sum.TotalTime)
	}
}
