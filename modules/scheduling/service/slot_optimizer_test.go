package service

import (
	"context"
	"errors"
	"testing"

	"game-scheduler/modules/scheduling/entity"

	"github.com/google/uuid"
)

func roster(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestCandidateSlots(t *testing.T) {
	o := NewSlotOptimizer(nil, nil, nil, AvailabilityPolicy{}, 8, 22)

	tests := []struct {
		name     string
		duration int
		count    int
		first    string
		last     string
	}{
		{"one hour", 60, 14, "08:00-09:00", "21:00-22:00"},
		{"two hours", 120, 13, "08:00-10:00", "20:00-22:00"},
		{"ninety minutes rounds up", 90, 13, "08:00-10:00", "20:00-22:00"},
		{"under an hour is one hour", 30, 14, "08:00-09:00", "21:00-22:00"},
		{"whole day", 14 * 60, 1, "08:00-22:00", "08:00-22:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := o.CandidateSlots(tt.duration)
			if len(slots) != tt.count {
				t.Fatalf("got %d slots, want %d: %v", len(slots), tt.count, slots)
			}
			if slots[0] != tt.first {
				t.Errorf("first = %s, want %s", slots[0], tt.first)
			}
			if slots[len(slots)-1] != tt.last {
				t.Errorf("last = %s, want %s", slots[len(slots)-1], tt.last)
			}
		})
	}

	t.Run("longer than the day has no candidates", func(t *testing.T) {
		if slots := o.CandidateSlots(15 * 60); len(slots) != 0 {
			t.Errorf("got %v, want none", slots)
		}
	})
}

func TestFindOptimalAllAvailable(t *testing.T) {
	repo := newFakeRepo()
	series := uuid.New()
	repo.seriesRosters[series] = roster(8)
	o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: true}, 8, 22)

	slot, err := o.FindOptimal(context.Background(), series, date(2024, 1, 7), 120, 6, 10)
	if err != nil {
		t.Fatalf("FindOptimal() error: %v", err)
	}
	if slot == nil {
		t.Fatal("got nil slot")
	}
	if slot.TimeSlot != "08:00-10:00" {
		t.Errorf("TimeSlot = %s, want the earliest 08:00-10:00", slot.TimeSlot)
	}
	if slot.AvailableCount != 8 {
		t.Errorf("AvailableCount = %d, want 8", slot.AvailableCount)
	}
	if slot.ConflictCount != 0 {
		t.Errorf("ConflictCount = %d, want 0", slot.ConflictCount)
	}
}

func TestFindOptimalMinPlayersUnreachable(t *testing.T) {
	repo := newFakeRepo()
	series := uuid.New()
	repo.seriesRosters[series] = roster(4)
	o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: true}, 8, 22)

	slot, err := o.FindOptimal(context.Background(), series, date(2024, 1, 7), 60, 5, 0)
	if err != nil {
		t.Fatalf("FindOptimal() error: %v", err)
	}
	if slot != nil {
		t.Errorf("slot = %+v, want nil", slot)
	}
}

func TestFindOptimalPrefersMostAvailable(t *testing.T) {
	day := date(2024, 1, 7)
	repo := newFakeRepo()
	series := uuid.New()
	players := roster(4)
	repo.seriesRosters[series] = players

	// Everyone is out in the morning, one player is out in the evening.
	for _, p := range players {
		repo.setAvailability(p, day, "08:00-09:00", entity.AvailabilityUnavailable)
		repo.setAvailability(p, day, "09:00-10:00", entity.AvailabilityUnavailable)
	}
	repo.setAvailability(players[0], day, "18:00-19:00", entity.AvailabilityUnavailable)

	o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: true}, 8, 22)
	slot, err := o.FindOptimal(context.Background(), series, day, 60, 1, 0)
	if err != nil {
		t.Fatalf("FindOptimal() error: %v", err)
	}
	if slot == nil || slot.TimeSlot != "10:00-11:00" || slot.AvailableCount != 4 {
		t.Errorf("slot = %+v, want 10:00-11:00 with 4 available", slot)
	}
}

func TestFindOptimalAbsentPolicy(t *testing.T) {
	day := date(2024, 1, 7)
	repo := newFakeRepo()
	series := uuid.New()
	players := roster(3)
	repo.seriesRosters[series] = players
	repo.setAvailability(players[0], day, "19:00-20:00", entity.AvailabilityAvailable)
	repo.setAvailability(players[1], day, "19:00-20:00", entity.AvailabilityMaybe)

	t.Run("absent counts as unavailable", func(t *testing.T) {
		o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: false}, 8, 22)
		slot, err := o.FindOptimal(context.Background(), series, day, 60, 1, 0)
		if err != nil {
			t.Fatalf("FindOptimal() error: %v", err)
		}
		if slot == nil || slot.TimeSlot != "19:00-20:00" || slot.AvailableCount != 2 {
			t.Errorf("slot = %+v, want 19:00-20:00 with 2 available (maybe counts)", slot)
		}
	})

	t.Run("absent counts as available", func(t *testing.T) {
		o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: true}, 8, 22)
		slot, err := o.FindOptimal(context.Background(), series, day, 60, 1, 0)
		if err != nil {
			t.Fatalf("FindOptimal() error: %v", err)
		}
		if slot == nil || slot.TimeSlot != "08:00-09:00" || slot.AvailableCount != 3 {
			t.Errorf("slot = %+v, want 08:00-09:00 with 3 available", slot)
		}
	})

	t.Run("no records and absent unavailable finds nothing", func(t *testing.T) {
		o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: false}, 8, 22)
		slot, err := o.FindOptimal(context.Background(), series, date(2024, 1, 14), 60, 1, 0)
		if err != nil {
			t.Fatalf("FindOptimal() error: %v", err)
		}
		if slot != nil {
			t.Errorf("slot = %+v, want nil", slot)
		}
	})
}

func TestFindOptimalMaxPlayersIsAdvisory(t *testing.T) {
	repo := newFakeRepo()
	series := uuid.New()
	repo.seriesRosters[series] = roster(12)
	o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: true}, 8, 22)

	slot, err := o.FindOptimal(context.Background(), series, date(2024, 1, 7), 60, 2, 10)
	if err != nil {
		t.Fatalf("FindOptimal() error: %v", err)
	}
	if slot == nil || slot.AvailableCount != 12 {
		t.Errorf("slot = %+v, want 12 available despite max 10", slot)
	}
}

func TestFindOptimalReportsConflicts(t *testing.T) {
	day := date(2024, 1, 7)
	repo := newFakeRepo()
	repo.addGame(newGame("Early Game", "Court A", "08:00", day))
	repo.addGame(newGame("Early Game 2", "Court B", "08:00", day))
	series := uuid.New()
	repo.seriesRosters[series] = roster(6)
	o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: true}, 8, 22)

	slot, err := o.FindOptimal(context.Background(), series, day, 60, 1, 0)
	if err != nil {
		t.Fatalf("FindOptimal() error: %v", err)
	}
	if slot == nil || slot.TimeSlot != "08:00-09:00" {
		t.Fatalf("slot = %+v, want 08:00-09:00 (conflicts do not disqualify)", slot)
	}
	if slot.ConflictCount != 2 {
		t.Errorf("ConflictCount = %d, want 2", slot.ConflictCount)
	}
}

func TestFindOptimalDuplicateRosterEntries(t *testing.T) {
	repo := newFakeRepo()
	series := uuid.New()
	p := uuid.New()
	repo.seriesRosters[series] = []uuid.UUID{p, p, p}
	o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: true}, 8, 22)

	slot, err := o.FindOptimal(context.Background(), series, date(2024, 1, 7), 60, 2, 0)
	if err != nil {
		t.Fatalf("FindOptimal() error: %v", err)
	}
	if slot != nil {
		t.Errorf("slot = %+v, want nil: one player on several teams counts once", slot)
	}
}

func TestFindOptimalRosterError(t *testing.T) {
	repo := newFakeRepo()
	repo.failReads = true
	o := NewSlotOptimizer(repo, repo, repo, AvailabilityPolicy{AbsentMeansAvailable: true}, 8, 22)

	_, err := o.FindOptimal(context.Background(), uuid.New(), date(2024, 1, 7), 60, 1, 0)
	if !errors.Is(err, errStore) {
		t.Fatalf("err = %v, want errStore", err)
	}
}
