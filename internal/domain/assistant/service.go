package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ehr/backoffice/internal/domain/catalog"
	"github.com/ehr/backoffice/internal/domain/outcome"
)

// TimestampLayout is ISO-8601 local time with microseconds and no zone.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// VerificationResponse is returned for an eligibility check.
type VerificationResponse struct {
	CallSteps          []outcome.Step             `json:"call_steps"`
	VerificationResult outcome.VerificationResult `json:"verification_result"`
	Timestamp          string                     `json:"timestamp"`
}

// FollowUpResponse is returned for a claim follow-up.
type FollowUpResponse struct {
	FollowUpSteps  []outcome.Step         `json:"followup_steps"`
	FollowUpResult outcome.FollowUpResult `json:"followup_result"`
	Timestamp      string                 `json:"timestamp"`
}

// CoordinationResponse is returned for a care-coordination outreach.
type CoordinationResponse struct {
	CoordinationSteps  []outcome.Step             `json:"coordination_steps"`
	CoordinationResult outcome.CoordinationResult `json:"coordination_result"`
	Timestamp          string                     `json:"timestamp"`
}

// Service resolves catalog records and runs them through the outcome
// generator. Lookups fail fast with catalog.ErrNotFound before anything is
// generated.
type Service struct {
	store    *catalog.Store
	gen      *outcome.Generator
	now      func() time.Time
	recorder Recorder
}

// Recorder counts simulated results per operation.
type Recorder interface {
	RecordOutcome(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordOutcome(string, string) {}

// Operation names passed to Recorder.
const (
	OpVerifyInsurance = "verify_insurance"
	OpClaimFollowUp   = "claim_followup"
	OpCoordinateCare  = "care_coordination"
	OpStopProcess     = "stop_process"
)

func NewService(store *catalog.Store, gen *outcome.Generator) *Service {
	return &Service{store: store, gen: gen, now: time.Now, recorder: nopRecorder{}}
}

// SetRecorder sends every simulated result to r.
func (s *Service) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	s.recorder = r
}

// SetClock replaces the wall clock used for response timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Store returns the catalog the service reads from.
func (s *Service) Store() *catalog.Store {
	return s.store
}

func (s *Service) timestamp() string {
	return s.now().Format(TimestampLayout)
}

func (s *Service) VerifyInsurance(ctx context.Context, patientID int) (*VerificationResponse, error) {
	p, err := s.store.Patient(patientID)
	if err != nil {
		return nil, fmt.Errorf("verify insurance: %w", err)
	}
	v := s.gen.VerifyInsurance(p)
	s.recorder.RecordOutcome(OpVerifyInsurance, string(v.Result.VerificationStatus))
	zerolog.Ctx(ctx).Info().
		Int("patient_id", p.ID).
		Str("insurer", p.Insurance).
		Str("verification_status", string(v.Result.VerificationStatus)).
		Msg("insurance verification simulated")
	return &VerificationResponse{
		CallSteps:          v.Steps,
		VerificationResult: v.Result,
		Timestamp:          s.timestamp(),
	}, nil
}

func (s *Service) FollowUpClaim(ctx context.Context, claimID int) (*FollowUpResponse, error) {
	c, err := s.store.Claim(claimID)
	if err != nil {
		return nil, fmt.Errorf("follow up claim: %w", err)
	}
	f := s.gen.FollowUpClaim(c)
	s.recorder.RecordOutcome(OpClaimFollowUp, f.Result.NewStatus)
	zerolog.Ctx(ctx).Info().
		Int("claim_id", c.ID).
		Str("original_status", string(c.Status)).
		Str("new_status", f.Result.NewStatus).
		Msg("claim follow-up simulated")
	return &FollowUpResponse{
		FollowUpSteps:  f.Steps,
		FollowUpResult: f.Result,
		Timestamp:      s.timestamp(),
	}, nil
}

func (s *Service) CoordinateCare(ctx context.Context, taskID int) (*CoordinationResponse, error) {
	t, err := s.store.CareTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("coordinate care: %w", err)
	}
	co := s.gen.CoordinateCare(t)
	s.recorder.RecordOutcome(OpCoordinateCare, co.Channel.String())
	zerolog.Ctx(ctx).Info().
		Int("task_id", t.ID).
		Str("contact_method", string(t.ContactMethod)).
		Stringer("channel", co.Channel).
		Msg("care coordination simulated")
	return &CoordinationResponse{
		CoordinationSteps:  co.Steps,
		CoordinationResult: co.Result,
		Timestamp:          s.timestamp(),
	}, nil
}

// StopProcess acknowledges a stop request; there is never a running process.
func (s *Service) StopProcess(ctx context.Context) outcome.StopAck {
	zerolog.Ctx(ctx).Debug().Msg("stop requested")
	ack := outcome.Stop()
	s.recorder.RecordOutcome(OpStopProcess, ack.Status)
	return ack
}
