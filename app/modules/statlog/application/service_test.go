package statlogservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	statlogevents "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/events"
	statlogdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestService(repo *statlogdb.FakeRepository, guard *FakeMatchGuard, bus *eventbus.FakeEventBus, metrics *FakeMetrics) *StatLogService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewStatLogService(repo, guard, bus, utils.NewHelpers(), logger, metrics, tracer)
}

func validEvent() sharedtypes.StatEvent {
	return sharedtypes.StatEvent{
		MatchID:  7,
		PlayerID: "p1",
		StatName: sharedtypes.StatAces,
		Value:    1,
		Set:      1,
	}
}

func TestService_Append(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		event     func() sharedtypes.StatEvent
		setupMock func(r *statlogdb.FakeRepository, g *FakeMatchGuard)
		verify    func(t *testing.T, pos sharedtypes.LogPosition, err error, bus *eventbus.FakeEventBus, m *FakeMetrics)
	}{
		{
			name:  "success returns position and publishes recorded event",
			event: validEvent,
			setupMock: func(r *statlogdb.FakeRepository, g *FakeMatchGuard) {
				r.AppendEventFn = func(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error) {
					if event.Timestamp.IsZero() {
						t.Error("expected a default timestamp before storage")
					}
					return 12, nil
				}
			},
			verify: func(t *testing.T, pos sharedtypes.LogPosition, err error, bus *eventbus.FakeEventBus, m *FakeMetrics) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if pos != 12 {
					t.Errorf("expected position 12, got %d", pos)
				}
				if got := len(bus.Published(statlogevents.StatRecorded)); got != 1 {
					t.Errorf("expected 1 recorded event, got %d", got)
				}
				if m.Successes != 1 {
					t.Errorf("expected 1 success metric, got %d", m.Successes)
				}
			},
		},
		{
			name:  "completed match rejects with ErrMatchLocked",
			event: validEvent,
			setupMock: func(r *statlogdb.FakeRepository, g *FakeMatchGuard) {
				g.GetMatchStatusFn = func(ctx context.Context, matchID sharedtypes.MatchID) (sharedtypes.MatchStatus, error) {
					return sharedtypes.MatchCompleted, nil
				}
				r.AppendEventFn = func(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error) {
					t.Error("locked match must not reach storage")
					return 0, nil
				}
			},
			verify: func(t *testing.T, pos sharedtypes.LogPosition, err error, bus *eventbus.FakeEventBus, m *FakeMetrics) {
				if !errors.Is(err, ErrMatchLocked) {
					t.Fatalf("expected ErrMatchLocked, got %v", err)
				}
				if got := len(bus.Published(statlogevents.StatRecorded)); got != 0 {
					t.Errorf("expected no recorded events, got %d", got)
				}
			},
		},
		{
			name: "zero value is accepted and recorded",
			event: func() sharedtypes.StatEvent {
				e := validEvent()
				e.Value = 0
				return e
			},
			setupMock: func(r *statlogdb.FakeRepository, g *FakeMatchGuard) {
				r.AppendEventFn = func(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error) {
					if event.Value != 0 {
						t.Errorf("expected the zero value to reach storage as-is, got %d", event.Value)
					}
					return 3, nil
				}
			},
			verify: func(t *testing.T, pos sharedtypes.LogPosition, err error, bus *eventbus.FakeEventBus, m *FakeMetrics) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got := len(bus.Published(statlogevents.StatRecorded)); got != 1 {
					t.Errorf("expected 1 recorded event, got %d", got)
				}
			},
		},
		{
			name: "unknown stat kind is rejected",
			event: func() sharedtypes.StatEvent {
				e := validEvent()
				e.StatName = "notAKind"
				return e
			},
			verify: func(t *testing.T, pos sharedtypes.LogPosition, err error, bus *eventbus.FakeEventBus, m *FakeMetrics) {
				if !IsValidationError(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
			},
		},
		{
			name: "negative compensating value is accepted",
			event: func() sharedtypes.StatEvent {
				e := validEvent()
				e.Value = -1
				return e
			},
			verify: func(t *testing.T, pos sharedtypes.LogPosition, err error, bus *eventbus.FakeEventBus, m *FakeMetrics) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			},
		},
		{
			name:  "storage failure reports as retryable",
			event: validEvent,
			setupMock: func(r *statlogdb.FakeRepository, g *FakeMatchGuard) {
				r.AppendEventFn = func(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error) {
					return 0, errors.New("connection refused")
				}
			},
			verify: func(t *testing.T, pos sharedtypes.LogPosition, err error, bus *eventbus.FakeEventBus, m *FakeMetrics) {
				if !errors.Is(err, ErrStorageUnavailable) {
					t.Fatalf("expected ErrStorageUnavailable, got %v", err)
				}
				if IsValidationError(err) {
					t.Errorf("a storage outage must not look like bad input: %v", err)
				}
				if len(m.Failures) != 1 || m.Failures[0] != "storage" {
					t.Errorf("expected storage failure metric, got %v", m.Failures)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &statlogdb.FakeRepository{}
			guard := &FakeMatchGuard{}
			bus := eventbus.NewFakeEventBus()
			metrics := &FakeMetrics{}
			if tt.setupMock != nil {
				tt.setupMock(repo, guard)
			}

			service := newTestService(repo, guard, bus, metrics)
			pos, err := service.Append(ctx, tt.event())
			tt.verify(t, pos, err, bus, metrics)
		})
	}
}

func TestService_Read_IgnoresLockState(t *testing.T) {
	ctx := context.Background()
	want := []sharedtypes.StatEvent{validEvent()}

	repo := &statlogdb.FakeRepository{
		ReadEventsFn: func(ctx context.Context, matchID sharedtypes.MatchID, filter statlogdb.EventFilter) ([]sharedtypes.StatEvent, error) {
			return want, nil
		},
	}
	guard := &FakeMatchGuard{
		GetMatchStatusFn: func(ctx context.Context, matchID sharedtypes.MatchID) (sharedtypes.MatchStatus, error) {
			t.Error("reads must not consult lock state")
			return sharedtypes.MatchCompleted, nil
		},
	}

	service := newTestService(repo, guard, eventbus.NewFakeEventBus(), &FakeMetrics{})
	events, err := service.Read(ctx, 7, statlogdb.EventFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestService_Read_StorageFailureReportsAsRetryable(t *testing.T) {
	ctx := context.Background()

	repo := &statlogdb.FakeRepository{
		ReadEventsFn: func(ctx context.Context, matchID sharedtypes.MatchID, filter statlogdb.EventFilter) ([]sharedtypes.StatEvent, error) {
			return nil, errors.New("connection refused")
		},
	}

	service := newTestService(repo, &FakeMatchGuard{}, eventbus.NewFakeEventBus(), &FakeMetrics{})
	if _, err := service.Read(ctx, 7, statlogdb.EventFilter{}); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestService_Append_LockedAppendLeavesLogUntouched(t *testing.T) {
	ctx := context.Background()

	var stored []sharedtypes.StatEvent
	repo := &statlogdb.FakeRepository{
		AppendEventFn: func(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error) {
			stored = append(stored, event)
			return sharedtypes.LogPosition(len(stored)), nil
		},
		ReadEventsFn: func(ctx context.Context, matchID sharedtypes.MatchID, filter statlogdb.EventFilter) ([]sharedtypes.StatEvent, error) {
			return stored, nil
		},
	}

	locked := false
	guard := &FakeMatchGuard{
		GetMatchStatusFn: func(ctx context.Context, matchID sharedtypes.MatchID) (sharedtypes.MatchStatus, error) {
			if locked {
				return sharedtypes.MatchCompleted, nil
			}
			return sharedtypes.MatchActive, nil
		},
	}

	service := newTestService(repo, guard, eventbus.NewFakeEventBus(), &FakeMetrics{})

	if _, err := service.Append(ctx, validEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	locked = true
	if _, err := service.Append(ctx, validEvent()); !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("expected ErrMatchLocked, got %v", err)
	}

	events, err := service.Read(ctx, 7, statlogdb.EventFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("rejected append must not grow the log: got %d events", len(events))
	}
}
