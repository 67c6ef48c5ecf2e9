package outcome

import (
	"strings"

	"github.com/ehr/backoffice/internal/domain/catalog"
)

// FollowUpResult records what was done to move a stuck claim along.
type FollowUpResult struct {
	ClaimNumber        string              `json:"claim_number"`
	PatientName        string              `json:"patient_name"`
	OriginalStatus     catalog.ClaimStatus `json:"original_status"`
	NewStatus          string              `json:"new_status"`
	ActionTaken        string              `json:"action_taken"`
	ExpectedResolution string              `json:"expected_resolution"`
	RecoveryAmount     string              `json:"recovery_amount"`
	ProcessingTime     string              `json:"processing_time"`
	ConfidenceScore    int                 `json:"confidence_score"`
}

// FollowUp is the narrative and result of one claim follow-up.
type FollowUp struct {
	Steps  []Step
	Result FollowUpResult
}

const (
	claimResubmitted = "resubmitted"
	claimExpedited   = "expedited"

	actionBillingCorrection = "Corrected billing code and resubmitted"
	actionDocumentation     = "Provided missing documentation"

	followUpResolution     = "3-5 business days"
	followUpProcessingTime = "2m 15s"
)

var followUpConfidence = Span{94, 99}

// FollowUpClaim simulates working a claim through the payer portal. Only the
// confidence score is random.
func (g *Generator) FollowUpClaim(c catalog.Claim) FollowUp {
	newStatus := claimExpedited
	if c.Status == catalog.ClaimStatusDenied {
		newStatus = claimResubmitted
	}
	action := actionDocumentation
	if strings.Contains(c.Reason, "billing code") {
		action = actionBillingCorrection
	}
	return FollowUp{
		Steps: narrative(followUpStages),
		Result: FollowUpResult{
			ClaimNumber:        c.ClaimNumber,
			PatientName:        c.PatientName,
			OriginalStatus:     c.Status,
			NewStatus:          newStatus,
			ActionTaken:        action,
			ExpectedResolution: followUpResolution,
			RecoveryAmount:     c.Amount,
			ProcessingTime:     followUpProcessingTime,
			ConfidenceScore:    followUpConfidence.draw(g.rand),
		},
	}
}
