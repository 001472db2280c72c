package matchservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	authservice "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/auth/application"
	matchdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/match/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/eventbus"
	"github.com/Bayview-Volleyball-Club/volley-tracker/internal/utils"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestMatchService(repo *matchdb.FakeRepository, verifier *FakeCredentialVerifier, scheduler *FakeScheduler, bus *eventbus.FakeEventBus, metrics *FakeMetrics) *MatchService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	var sched ActivationScheduler
	if scheduler != nil {
		sched = scheduler
	}
	return NewMatchService(repo, verifier, sched, bus, utils.NewHelpers(), logger, metrics, tracer)
}

// statusRepo tracks status transitions in memory with the guarded
// update contract.
func statusRepo(initial sharedtypes.MatchStatus) (*matchdb.FakeRepository, *sharedtypes.MatchStatus) {
	status := initial
	repo := &matchdb.FakeRepository{
		GetMatchStatusFn: func(ctx context.Context, id sharedtypes.MatchID) (sharedtypes.MatchStatus, error) {
			return status, nil
		},
		SetMatchStatusFn: func(ctx context.Context, id sharedtypes.MatchID, expected, next sharedtypes.MatchStatus) error {
			if status != expected {
				return matchdb.ErrStatusConflict
			}
			status = next
			return nil
		},
	}
	return repo, &status
}

func TestService_StartMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled match activates", func(t *testing.T) {
		repo, status := statusRepo(sharedtypes.MatchScheduled)
		metrics := &FakeMetrics{}
		service := newTestMatchService(repo, &FakeCredentialVerifier{}, nil, eventbus.NewFakeEventBus(), metrics)

		if err := service.StartMatch(ctx, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *status != sharedtypes.MatchActive {
			t.Errorf("expected active, got %s", *status)
		}
		if len(metrics.Transitions) != 1 {
			t.Errorf("expected 1 transition metric, got %d", len(metrics.Transitions))
		}
	})

	t.Run("active match rejects a second start", func(t *testing.T) {
		repo, _ := statusRepo(sharedtypes.MatchActive)
		service := newTestMatchService(repo, &FakeCredentialVerifier{}, nil, eventbus.NewFakeEventBus(), &FakeMetrics{})

		if err := service.StartMatch(ctx, 1); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestService_FinalizeMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("active match completes and cancels pending jobs", func(t *testing.T) {
		repo, status := statusRepo(sharedtypes.MatchActive)
		scheduler := &FakeScheduler{}
		service := newTestMatchService(repo, &FakeCredentialVerifier{}, scheduler, eventbus.NewFakeEventBus(), &FakeMetrics{})

		if err := service.FinalizeMatch(ctx, 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *status != sharedtypes.MatchCompleted {
			t.Errorf("expected completed, got %s", *status)
		}
		if len(scheduler.Canceled) != 1 || scheduler.Canceled[0] != 3 {
			t.Errorf("expected canceled jobs for match 3, got %v", scheduler.Canceled)
		}
	})

	t.Run("scheduled match cannot complete directly", func(t *testing.T) {
		repo, _ := statusRepo(sharedtypes.MatchScheduled)
		service := newTestMatchService(repo, &FakeCredentialVerifier{}, nil, eventbus.NewFakeEventBus(), &FakeMetrics{})

		if err := service.FinalizeMatch(ctx, 3); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("finalize is idempotent-hostile: completed rejects again", func(t *testing.T) {
		repo, _ := statusRepo(sharedtypes.MatchCompleted)
		service := newTestMatchService(repo, &FakeCredentialVerifier{}, nil, eventbus.NewFakeEventBus(), &FakeMetrics{})

		if err := service.FinalizeMatch(ctx, 3); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestService_UnlockMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials unlock and audit", func(t *testing.T) {
		repo, status := statusRepo(sharedtypes.MatchCompleted)
		var audits []sharedtypes.UnlockAudit
		repo.InsertUnlockAuditFn = func(ctx context.Context, audit sharedtypes.UnlockAudit) error {
			audits = append(audits, audit)
			return nil
		}

		metrics := &FakeMetrics{}
		service := newTestMatchService(repo, &FakeCredentialVerifier{}, nil, eventbus.NewFakeEventBus(), metrics)

		if err := service.UnlockMatch(ctx, 5, "admin", "secret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *status != sharedtypes.MatchActive {
			t.Errorf("expected active after unlock, got %s", *status)
		}
		if len(audits) != 1 || audits[0].UnlockedBy != "admin" {
			t.Errorf("expected one audit row by admin, got %v", audits)
		}
		if len(metrics.UnlockAttempts) != 1 || !metrics.UnlockAttempts[0] {
			t.Errorf("expected successful unlock metric, got %v", metrics.UnlockAttempts)
		}
	})

	t.Run("invalid credentials change nothing", func(t *testing.T) {
		repo, status := statusRepo(sharedtypes.MatchCompleted)
		repo.InsertUnlockAuditFn = func(ctx context.Context, audit sharedtypes.UnlockAudit) error {
			t.Error("failed unlock must not write an audit row")
			return nil
		}
		verifier := &FakeCredentialVerifier{
			VerifyAdminCredentialsFn: func(ctx context.Context, username, password string) (*sharedtypes.AdminCredential, error) {
				return nil, authservice.ErrInvalidCredentials
			},
		}

		metrics := &FakeMetrics{}
		service := newTestMatchService(repo, verifier, nil, eventbus.NewFakeEventBus(), metrics)

		if err := service.UnlockMatch(ctx, 5, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if *status != sharedtypes.MatchCompleted {
			t.Errorf("expected status unchanged, got %s", *status)
		}
		if len(metrics.UnlockAttempts) != 1 || metrics.UnlockAttempts[0] {
			t.Errorf("expected failed unlock metric, got %v", metrics.UnlockAttempts)
		}
	})

	t.Run("verifier outage is not reported as bad credentials", func(t *testing.T) {
		repo, status := statusRepo(sharedtypes.MatchCompleted)
		repo.InsertUnlockAuditFn = func(ctx context.Context, audit sharedtypes.UnlockAudit) error {
			t.Error("failed unlock must not write an audit row")
			return nil
		}
		storageErr := errors.New("credential store unreachable")
		verifier := &FakeCredentialVerifier{
			VerifyAdminCredentialsFn: func(ctx context.Context, username, password string) (*sharedtypes.AdminCredential, error) {
				return nil, storageErr
			},
		}

		service := newTestMatchService(repo, verifier, nil, eventbus.NewFakeEventBus(), &FakeMetrics{})

		err := service.UnlockMatch(ctx, 5, "admin", "secret")
		if err == nil {
			t.Fatal("expected an error")
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("a verifier outage must not look like bad credentials, got %v", err)
		}
		if !errors.Is(err, storageErr) {
			t.Fatalf("expected the verifier error to propagate, got %v", err)
		}
		if *status != sharedtypes.MatchCompleted {
			t.Errorf("expected status unchanged, got %s", *status)
		}
	})

	t.Run("unlock of a non-completed match is rejected", func(t *testing.T) {
		repo, _ := statusRepo(sharedtypes.MatchActive)
		service := newTestMatchService(repo, &FakeCredentialVerifier{}, nil, eventbus.NewFakeEventBus(), &FakeMetrics{})

		if err := service.UnlockMatch(ctx, 5, "admin", "secret"); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestService_UpdateScore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		status  sharedtypes.MatchStatus
		scoreA  int
		scoreB  int
		set     sharedtypes.SetNumber
		wantErr error
	}{
		{name: "active match accepts score", status: sharedtypes.MatchActive, scoreA: 10, scoreB: 8, set: 2},
		{name: "completed match rejects score", status: sharedtypes.MatchCompleted, scoreA: 10, scoreB: 8, set: 2, wantErr: ErrMatchLocked},
		{name: "negative score rejected", status: sharedtypes.MatchActive, scoreA: -1, scoreB: 0, set: 1, wantErr: ErrInvalidScore},
		{name: "set below one rejected", status: sharedtypes.MatchActive, scoreA: 0, scoreB: 0, set: 0, wantErr: ErrInvalidScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := statusRepo(tt.status)
			service := newTestMatchService(repo, &FakeCredentialVerifier{}, nil, eventbus.NewFakeEventBus(), &FakeMetrics{})

			err := service.UpdateScore(ctx, 1, tt.scoreA, tt.scoreB, tt.set)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("finalize racing the write still locks the score", func(t *testing.T) {
		// Status reads active, but the guarded repository update loses to a
		// concurrent finalize.
		repo, _ := statusRepo(sharedtypes.MatchActive)
		repo.UpdateScoreFn = func(ctx context.Context, id sharedtypes.MatchID, scoreA, scoreB int, currentSet sharedtypes.SetNumber) error {
			return matchdb.ErrStatusConflict
		}
		service := newTestMatchService(repo, &FakeCredentialVerifier{}, nil, eventbus.NewFakeEventBus(), &FakeMetrics{})

		if err := service.UpdateScore(ctx, 1, 12, 10, 2); !errors.Is(err, ErrMatchLocked) {
			t.Fatalf("expected ErrMatchLocked, got %v", err)
		}
	})
}

func TestService_CreateMatch_SchedulesActivation(t *testing.T) {
	ctx := context.Background()

	repo := &matchdb.FakeRepository{}
	scheduler := &FakeScheduler{}
	service := newTestMatchService(repo, &FakeCredentialVerifier{}, scheduler, eventbus.NewFakeEventBus(), &FakeMetrics{})

	match := &sharedtypes.Match{ID: 9, TeamA: 1, TeamB: 2, StartTime: time.Now().Add(time.Hour)}
	if err := service.CreateMatch(ctx, match); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match.Status != sharedtypes.MatchScheduled {
		t.Errorf("expected scheduled status, got %s", match.Status)
	}
	if len(scheduler.Scheduled) != 1 || scheduler.Scheduled[0] != 9 {
		t.Errorf("expected activation scheduled for match 9, got %v", scheduler.Scheduled)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to sharedtypes.MatchStatus }{
		{sharedtypes.MatchScheduled, sharedtypes.MatchActive},
		{sharedtypes.MatchActive, sharedtypes.MatchCompleted},
		{sharedtypes.MatchCompleted, sharedtypes.MatchActive},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to sharedtypes.MatchStatus }{
		{sharedtypes.MatchScheduled, sharedtypes.MatchCompleted},
		{sharedtypes.MatchCompleted, sharedtypes.MatchScheduled},
		{sharedtypes.MatchActive, sharedtypes.MatchScheduled},
	}
	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be denied", tr.from, tr.to)
		}
	}
}
