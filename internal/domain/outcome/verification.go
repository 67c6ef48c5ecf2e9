package outcome

import (
	"fmt"

	"github.com/ehr/backoffice/internal/domain/catalog"
)

// VerificationStatus is the overall verdict of an eligibility check.
type VerificationStatus string

const (
	VerificationSuccess VerificationStatus = "success"
	VerificationFailed  VerificationStatus = "failed"
)

// DefaultVerificationSuccessRate is the share of verifications that succeed.
const DefaultVerificationSuccessRate = 0.90

// VerificationResult is the payer's answer to an eligibility call.
// InsuranceActive is nil when the payer could not be reached.
type VerificationResult struct {
	PatientName         string             `json:"patient_name"`
	InsuranceActive     *bool              `json:"insurance_active"`
	CoverageType        string             `json:"coverage_type,omitempty"`
	Copay               string             `json:"copay,omitempty"`
	DeductibleRemaining string             `json:"deductible_remaining,omitempty"`
	PriorAuthRequired   *bool              `json:"prior_auth_required,omitempty"`
	EffectiveDate       string             `json:"effective_date,omitempty"`
	FailureReason       string             `json:"failure_reason,omitempty"`
	RecommendedAction   string             `json:"recommended_action,omitempty"`
	CallDuration        string             `json:"call_duration"`
	ConfidenceScore     int                `json:"confidence_score"`
	VerificationStatus  VerificationStatus `json:"verification_status"`
}

// Verification is the narrative and result of one eligibility call.
type Verification struct {
	Steps  []Step
	Result VerificationResult
}

var (
	coverageTypes = []string{"PPO", "HMO", "EPO"}
	copays        = []string{"$15", "$25", "$35", "$50"}

	successDuration   = durationRange{Minutes: Span{2, 5}, Seconds: Span{10, 59}}
	successConfidence = Span{95, 99}
	deductibleRange   = Span{0, 500}
)

const coverageEffectiveDate = "2024-01-01"

// verificationTemplate fills a result for a patient.
type verificationTemplate func(r Rand, p catalog.Patient) VerificationResult

func verifiedActive(r Rand, p catalog.Patient) VerificationResult {
	active := true
	priorAuth := choose(r, []bool{true, false})
	return VerificationResult{
		PatientName:         p.Name,
		InsuranceActive:     &active,
		CoverageType:        choose(r, coverageTypes),
		Copay:               choose(r, copays),
		DeductibleRemaining: fmt.Sprintf("$%d", deductibleRange.draw(r)),
		PriorAuthRequired:   &priorAuth,
		EffectiveDate:       coverageEffectiveDate,
		CallDuration:        successDuration.draw(r),
		ConfidenceScore:     successConfidence.draw(r),
		VerificationStatus:  VerificationSuccess,
	}
}

// failureTemplate is a fixed failed-verification outcome.
type failureTemplate struct {
	active     *bool
	reason     string
	action     string
	duration   durationRange
	confidence Span
}

func (f failureTemplate) fill(r Rand, p catalog.Patient) VerificationResult {
	var active *bool
	if f.active != nil {
		v := *f.active
		active = &v
	}
	return VerificationResult{
		PatientName:        p.Name,
		InsuranceActive:    active,
		FailureReason:      f.reason,
		RecommendedAction:  f.action,
		CallDuration:       f.duration.draw(r),
		ConfidenceScore:    f.confidence.draw(r),
		VerificationStatus: VerificationFailed,
	}
}

var (
	inactive = false

	policyTerminated = failureTemplate{
		active:     &inactive,
		reason:     "Policy terminated - last active date: 2023-12-31",
		action:     "Contact patient to update insurance information",
		duration:   durationRange{Minutes: Span{1, 3}, Seconds: Span{10, 59}},
		confidence: Span{92, 97},
	}

	payerUnavailable = failureTemplate{
		active:     nil,
		reason:     "Unable to verify - system maintenance at insurance provider",
		action:     "Retry verification in 2 hours or contact manually",
		duration:   durationRange{Minutes: Span{1, 2}, Seconds: Span{10, 59}},
		confidence: Span{88, 94},
	}

	failureTemplates = mustTable(
		Weighted[failureTemplate]{Weight: 1, Value: policyTerminated},
		Weighted[failureTemplate]{Weight: 1, Value: payerUnavailable},
	)
)

func verificationFailed(r Rand, p catalog.Patient) VerificationResult {
	return failureTemplates.Pick(r).fill(r, p)
}

func verificationTable(successRate float64) (*Table[verificationTemplate], error) {
	if successRate < 0 || successRate > 1 {
		return nil, fmt.Errorf("verification success rate %v outside [0, 1]", successRate)
	}
	return NewTable(
		Weighted[verificationTemplate]{Weight: successRate, Value: verifiedActive},
		Weighted[verificationTemplate]{Weight: 1 - successRate, Value: verificationFailed},
	)
}

// VerifyInsurance simulates an eligibility call to the patient's payer.
func (g *Generator) VerifyInsurance(p catalog.Patient) Verification {
	return Verification{
		Steps:  narrative(verificationStages),
		Result: g.verification.Pick(g.rand)(g.rand, p),
	}
}
