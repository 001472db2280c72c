package statsservice

import (
	"math/rand"
	"testing"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/google/go-cmp/cmp"
)

func ev(player sharedtypes.PlayerID, kind sharedtypes.StatKind, value int, set sharedtypes.SetNumber) sharedtypes.StatEvent {
	return sharedtypes.StatEvent{
		MatchID:  42,
		PlayerID: player,
		StatName: kind,
		Value:    value,
		Set:      set,
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		events []sharedtypes.StatEvent
		player sharedtypes.PlayerID
		set    sharedtypes.SetNumber
		policy AggregatePolicy
		verify func(t *testing.T, stats sharedtypes.PlayerStats)
	}{
		{
			name:   "empty log yields fully populated zero counts",
			events: nil,
			player: "p1",
			verify: func(t *testing.T, stats sharedtypes.PlayerStats) {
				if len(stats.Counts) != len(sharedtypes.StatKinds) {
					t.Errorf("expected %d categories, got %d", len(sharedtypes.StatKinds), len(stats.Counts))
				}
				for kind, count := range stats.Counts {
					if count != 0 {
						t.Errorf("expected %s to be 0, got %d", kind, count)
					}
				}
			},
		},
		{
			name: "compensating event cancels without erasing others",
			events: []sharedtypes.StatEvent{
				ev("p1", sharedtypes.StatAces, 1, 1),
				ev("p1", sharedtypes.StatSpikes, 1, 1),
				ev("p1", sharedtypes.StatAces, -1, 1),
			},
			player: "p1",
			verify: func(t *testing.T, stats sharedtypes.PlayerStats) {
				if stats.Counts[sharedtypes.StatAces] != 0 {
					t.Errorf("expected aces 0, got %d", stats.Counts[sharedtypes.StatAces])
				}
				if stats.Counts[sharedtypes.StatSpikes] != 1 {
					t.Errorf("expected spikes 1, got %d", stats.Counts[sharedtypes.StatSpikes])
				}
				if got := TotalPoints(stats); got != 1 {
					t.Errorf("expected total points 1, got %d", got)
				}
			},
		},
		{
			name: "other players and sets are filtered out",
			events: []sharedtypes.StatEvent{
				ev("p1", sharedtypes.StatDigs, 1, 1),
				ev("p2", sharedtypes.StatDigs, 5, 1),
				ev("p1", sharedtypes.StatDigs, 3, 2),
			},
			player: "p1",
			set:    1,
			verify: func(t *testing.T, stats sharedtypes.PlayerStats) {
				if stats.Counts[sharedtypes.StatDigs] != 1 {
					t.Errorf("expected digs 1, got %d", stats.Counts[sharedtypes.StatDigs])
				}
			},
		},
		{
			name: "set zero aggregates all sets",
			events: []sharedtypes.StatEvent{
				ev("p1", sharedtypes.StatDigs, 1, 1),
				ev("p1", sharedtypes.StatDigs, 3, 2),
			},
			player: "p1",
			set:    0,
			verify: func(t *testing.T, stats sharedtypes.PlayerStats) {
				if stats.Counts[sharedtypes.StatDigs] != 4 {
					t.Errorf("expected digs 4, got %d", stats.Counts[sharedtypes.StatDigs])
				}
			},
		},
		{
			name: "unknown stat names are skipped",
			events: []sharedtypes.StatEvent{
				ev("p1", sharedtypes.StatKind("futureKind"), 7, 1),
				ev("p1", sharedtypes.StatBlocks, 2, 1),
			},
			player: "p1",
			verify: func(t *testing.T, stats sharedtypes.PlayerStats) {
				if _, ok := stats.Counts["futureKind"]; ok {
					t.Error("unknown kind leaked into counts")
				}
				if stats.Counts[sharedtypes.StatBlocks] != 2 {
					t.Errorf("expected blocks 2, got %d", stats.Counts[sharedtypes.StatBlocks])
				}
			},
		},
		{
			name: "negative aggregate allowed by default",
			events: []sharedtypes.StatEvent{
				ev("p1", sharedtypes.StatAces, -2, 1),
			},
			player: "p1",
			verify: func(t *testing.T, stats sharedtypes.PlayerStats) {
				if stats.Counts[sharedtypes.StatAces] != -2 {
					t.Errorf("expected aces -2, got %d", stats.Counts[sharedtypes.StatAces])
				}
			},
		},
		{
			name: "clamp policy floors counters at zero",
			events: []sharedtypes.StatEvent{
				ev("p1", sharedtypes.StatAces, -2, 1),
				ev("p1", sharedtypes.StatSpikes, 1, 1),
			},
			player: "p1",
			policy: AggregatePolicy{ClampToZero: true},
			verify: func(t *testing.T, stats sharedtypes.PlayerStats) {
				if stats.Counts[sharedtypes.StatAces] != 0 {
					t.Errorf("expected aces clamped to 0, got %d", stats.Counts[sharedtypes.StatAces])
				}
				if stats.Counts[sharedtypes.StatSpikes] != 1 {
					t.Errorf("expected spikes 1, got %d", stats.Counts[sharedtypes.StatSpikes])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Aggregate(tt.events, tt.player, tt.set, tt.policy)
			tt.verify(t, stats)
		})
	}
}

func TestAggregate_OrderIndependence(t *testing.T) {
	events := []sharedtypes.StatEvent{
		ev("p1", sharedtypes.StatAces, 1, 1),
		ev("p1", sharedtypes.StatSpikes, 2, 1),
		ev("p1", sharedtypes.StatAces, -1, 1),
		ev("p1", sharedtypes.StatBlocks, 1, 2),
		ev("p1", sharedtypes.StatServeErrors, 1, 1),
		ev("p2", sharedtypes.StatDigs, 4, 1),
	}

	want := Aggregate(events, "p1", 0, AggregatePolicy{})

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]sharedtypes.StatEvent, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(shuffled, "p1", 0, AggregatePolicy{})
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("permutation %d changed the aggregate (-want +got):\n%s", i, diff)
		}
	}
}

func TestTotals(t *testing.T) {
	events := []sharedtypes.StatEvent{
		ev("p1", sharedtypes.StatAces, 2, 1),
		ev("p1", sharedtypes.StatSpikes, 3, 1),
		ev("p1", sharedtypes.StatServeErrors, 1, 1),
		ev("p1", sharedtypes.StatNeutralBlocks, 5, 1),
	}
	stats := Aggregate(events, "p1", 0, AggregatePolicy{})

	if got := TotalPoints(stats); got != 5 {
		t.Errorf("expected total points 5, got %d", got)
	}
	if got := TotalFaults(stats); got != 1 {
		t.Errorf("expected total faults 1, got %d", got)
	}

	// neutralBlocks is display-only: it counts toward neither total.
	sum := 0
	for _, count := range stats.Counts {
		sum += count
	}
	if TotalPoints(stats)+TotalFaults(stats) >= sum {
		t.Errorf("expected totals to exclude neutral categories: points %d + faults %d vs sum %d",
			TotalPoints(stats), TotalFaults(stats), sum)
	}
}
