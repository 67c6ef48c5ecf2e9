package catalog

// Patient is a patient awaiting insurance eligibility verification.
type Patient struct {
	ID           int    `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	DOB          string `db:"dob" json:"dob"`
	Insurance    string `db:"insurance" json:"insurance"`
	PolicyNumber string `db:"policy_number" json:"policy_number"`
	Status       string `db:"status" json:"status"`
	Phone        string `db:"phone" json:"phone"`
}

// PatientStatusPendingVerification is the only status a catalog patient carries.
const PatientStatusPendingVerification = "pending_verification"

// ClaimStatus is the payer-side status of a claim.
type ClaimStatus string

const (
	ClaimStatusDenied  ClaimStatus = "denied"
	ClaimStatusPending ClaimStatus = "pending"
)

// Claim is an outstanding claim that needs follow-up with the payer.
type Claim struct {
	ID          int         `db:"id" json:"id"`
	PatientName string      `db:"patient_name" json:"patient_name"`
	ClaimNumber string      `db:"claim_number" json:"claim_number"`
	ServiceDate string      `db:"service_date" json:"service_date"`
	Amount      string      `db:"amount" json:"amount"`
	Status      ClaimStatus `db:"status" json:"status"`
	DaysPending int         `db:"days_pending" json:"days_pending"`
	Reason      string      `db:"reason" json:"reason"`
}

// Priority ranks a care task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ContactMethod is the stored outreach preference of a care task.
type ContactMethod string

const (
	ContactPhone ContactMethod = "phone"
	ContactEmail ContactMethod = "email"
	ContactMail  ContactMethod = "mail"
)

// Channel is the outreach channel a care task is coordinated through.
type Channel int

const (
	ChannelMail Channel = iota
	ChannelPhone
	ChannelEmail
)

func (ch Channel) String() string {
	switch ch {
	case ChannelPhone:
		return "phone"
	case ChannelEmail:
		return "email"
	default:
		return "mail"
	}
}

// Channel maps the stored contact method onto an outreach channel. Anything
// other than phone or email is handled as mail.
func (m ContactMethod) Channel() Channel {
	switch m {
	case ContactPhone:
		return ChannelPhone
	case ContactEmail:
		return ChannelEmail
	default:
		return ChannelMail
	}
}

// CareTask is a pending care-coordination item for a patient.
type CareTask struct {
	ID            int           `db:"id" json:"id"`
	PatientName   string        `db:"patient_name" json:"patient_name"`
	TaskType      string        `db:"task_type" json:"task_type"`
	Priority      Priority      `db:"priority" json:"priority"`
	DueDate       string        `db:"due_date" json:"due_date"`
	Status        string        `db:"status" json:"status"`
	ContactMethod ContactMethod `db:"contact_method" json:"contact_method"`
	Phone         string        `db:"phone" json:"phone"`
	Email         string        `db:"email" json:"email"`
	Address       string        `db:"address" json:"address"`
	Notes         string        `db:"notes" json:"notes"`
}

// Kind names one of the three catalogs.
type Kind string

const (
	KindPatients  Kind = "patients"
	KindClaims    Kind = "claims"
	KindCareTasks Kind = "care_tasks"
)

// ParseKind accepts the catalog names as well as the hyphenated URL forms.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "patients", "patient":
		return KindPatients, true
	case "claims", "claim":
		return KindClaims, true
	case "care_tasks", "care-tasks", "tasks", "task":
		return KindCareTasks, true
	}
	return "", false
}
