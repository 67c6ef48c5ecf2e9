package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ehr/backoffice/internal/domain/catalog"
	"github.com/ehr/backoffice/internal/domain/outcome"
)

func TestService_NotFoundWrapsSentinel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.VerifyInsurance(ctx, 0); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("VerifyInsurance: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.FollowUpClaim(ctx, 999); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("FollowUpClaim: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.CoordinateCare(ctx, 1); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("CoordinateCare: expected ErrNotFound, got %v", err)
	}
}

func TestService_DoesNotMutateCatalog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	before := svc.Store().Claims()

	for _, c := range before {
		if _, err := svc.FollowUpClaim(ctx, c.ID); err != nil {
			t.Fatalf("FollowUpClaim(%d): %v", c.ID, err)
		}
	}
	for _, p := range svc.Store().Patients() {
		if _, err := svc.VerifyInsurance(ctx, p.ID); err != nil {
			t.Fatalf("VerifyInsurance(%d): %v", p.ID, err)
		}
	}

	after := svc.Store().Claims()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("claim %d changed: %+v -> %+v", before[i].ID, before[i], after[i])
		}
	}
	for _, p := range svc.Store().Patients() {
		if p.Status != catalog.PatientStatusPendingVerification {
			t.Errorf("patient %d status changed to %q", p.ID, p.Status)
		}
	}
}

func TestService_ConcurrentRequests(t *testing.T) {
	gen, err := outcome.NewGenerator()
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	svc := NewService(catalog.Mock(), gen)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := svc.VerifyInsurance(ctx, 1+(i+j)%8); err != nil {
					t.Errorf("VerifyInsurance: %v", err)
				}
				if _, err := svc.CoordinateCare(ctx, 201+(i+j)%8); err != nil {
					t.Errorf("CoordinateCare: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestService_StopProcess(t *testing.T) {
	svc := newTestService(t)
	if got := svc.StopProcess(context.Background()); got != outcome.Stop() {
		t.Errorf("unexpected acknowledgement %+v", got)
	}
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordOutcome(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[operation+"/"+outcome]++
}

func TestService_RecordsOutcomes(t *testing.T) {
	svc := newTestService(t)
	rec := &countingRecorder{}
	svc.SetRecorder(rec)
	ctx := context.Background()

	if _, err := svc.FollowUpClaim(ctx, 103); err != nil {
		t.Fatalf("FollowUpClaim: %v", err)
	}
	if _, err := svc.CoordinateCare(ctx, 204); err != nil {
		t.Fatalf("CoordinateCare: %v", err)
	}
	if _, err := svc.CoordinateCare(ctx, 1); err == nil {
		t.Fatal("expected error for unknown task")
	}
	svc.StopProcess(ctx)

	if got := rec.counts[OpCoordinateCare+"/mail"]; got != 1 {
		t.Errorf("expected one mail coordination, got %d", got)
	}
	if got := rec.counts[OpStopProcess+"/stopped"]; got != 1 {
		t.Errorf("expected one stop, got %d", got)
	}
	total := 0
	for k, n := range rec.counts {
		if strings.HasPrefix(k, OpClaimFollowUp+"/") {
			total += n
		}
	}
	if total != 1 {
		t.Errorf("expected one follow-up outcome, got %d", total)
	}
}

func TestService_SetRecorderNil(t *testing.T) {
	svc := newTestService(t)
	svc.SetRecorder(nil)
	svc.StopProcess(context.Background())
}
