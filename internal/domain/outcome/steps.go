package outcome

// StepStatus marks a narrative stage as running or finished.
type StepStatus string

const (
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
)

// Step is one stage of a simulated process narrative.
type Step struct {
	Step   string     `json:"step"`
	Status StepStatus `json:"status"`
}

// narrative returns a fresh step list where every stage is in progress except
// the last, which is completed.
func narrative(stages []string) []Step {
	steps := make([]Step, len(stages))
	for i, s := range stages {
		steps[i] = Step{Step: s, Status: StepInProgress}
	}
	if n := len(steps); n > 0 {
		steps[n-1].Status = StepCompleted
	}
	return steps
}

var (
	verificationStages = []string{
		"Dialing insurance provider",
		"Connected to automated system",
		"Navigating phone menu",
		"Speaking with representative",
		"Verifying patient information",
		"Obtaining coverage details",
		"Call completed successfully",
	}

	followUpStages = []string{
		"Accessing insurance portal",
		"Authenticating with provider",
		"Locating claim in system",
		"Analyzing claim status",
		"Gathering required documentation",
		"Submitting appeal/correction",
		"Follow-up completed successfully",
	}

	phoneStages = []string{
		"Analyzing patient care requirements",
		"Dialing patient phone number",
		"Speaking with patient",
		"Discussing care needs",
		"Scheduling/coordinating action",
		"Updating patient records",
		"Phone coordination completed",
	}

	emailStages = []string{
		"Analyzing patient care requirements",
		"Composing personalized email",
		"Sending email to patient",
		"Setting up response monitoring",
		"Scheduling follow-up reminder",
		"Email coordination initiated",
	}

	mailStages = []string{
		"Analyzing patient care requirements",
		"Generating personalized letter",
		"Preparing mail package",
		"Scheduling mail delivery",
		"Setting up response tracking",
		"Mail coordination initiated",
	}
)
