package catalog

import "context"

// MockSource serves the built-in demo catalog.
type MockSource struct{}

func (MockSource) Load(_ context.Context) (*Store, error) {
	return New(mockPatients(), mockClaims(), mockCareTasks())
}

// Mock returns the built-in demo catalog. The literals below are known to be
// free of duplicate ids, so construction cannot fail.
func Mock() *Store {
	s, err := New(mockPatients(), mockClaims(), mockCareTasks())
	if err != nil {
		panic(err)
	}
	return s
}

func mockPatients() []Patient {
	const pending = PatientStatusPendingVerification
	return []Patient{
		{ID: 1, Name: "Sarah Johnson", DOB: "1985-03-15", Insurance: "Blue Cross Blue Shield", PolicyNumber: "BC123456789", Status: pending, Phone: "(555) 123-4567"},
		{ID: 2, Name: "Michael Chen", DOB: "1978-11-22", Insurance: "Aetna", PolicyNumber: "AET987654321", Status: pending, Phone: "(555) 987-6543"},
		{ID: 3, Name: "Emily Rodriguez", DOB: "1992-07-08", Insurance: "UnitedHealthcare", PolicyNumber: "UHC456789123", Status: pending, Phone: "(555) 456-7890"},
		{ID: 4, Name: "David Kim", DOB: "1990-12-03", Insurance: "Cigna", PolicyNumber: "CIG789012345", Status: pending, Phone: "(555) 234-5678"},
		{ID: 5, Name: "Lisa Thompson", DOB: "1987-05-20", Insurance: "Humana", PolicyNumber: "HUM345678901", Status: pending, Phone: "(555) 345-6789"},
		{ID: 6, Name: "Robert Wilson", DOB: "1975-09-14", Insurance: "Kaiser Permanente", PolicyNumber: "KP567890123", Status: pending, Phone: "(555) 456-7890"},
		{ID: 7, Name: "Maria Garcia", DOB: "1993-01-28", Insurance: "Blue Cross Blue Shield", PolicyNumber: "BC678901234", Status: pending, Phone: "(555) 567-8901"},
		{ID: 8, Name: "James Anderson", DOB: "1982-08-11", Insurance: "Aetna", PolicyNumber: "AET890123456", Status: pending, Phone: "(555) 678-9012"},
	}
}

func mockClaims() []Claim {
	return []Claim{
		{ID: 101, PatientName: "Amanda Foster", ClaimNumber: "CLM2024001", ServiceDate: "2024-01-15", Amount: "$450.00", Status: ClaimStatusDenied, DaysPending: 12, Reason: "Missing prior authorization"},
		{ID: 102, PatientName: "Brian Martinez", ClaimNumber: "CLM2024002", ServiceDate: "2024-01-18", Amount: "$275.50", Status: ClaimStatusPending, DaysPending: 8, Reason: "Under review"},
		{ID: 103, PatientName: "Catherine Lee", ClaimNumber: "CLM2024003", ServiceDate: "2024-01-20", Amount: "$125.00", Status: ClaimStatusDenied, DaysPending: 15, Reason: "Duplicate claim"},
		{ID: 104, PatientName: "Daniel Park", ClaimNumber: "CLM2024004", ServiceDate: "2024-01-22", Amount: "$680.75", Status: ClaimStatusPending, DaysPending: 6, Reason: "Additional documentation requested"},
		{ID: 105, PatientName: "Elena Vasquez", ClaimNumber: "CLM2024005", ServiceDate: "2024-01-25", Amount: "$320.25", Status: ClaimStatusDenied, DaysPending: 18, Reason: "Service not covered"},
		{ID: 106, PatientName: "Frank O'Connor", ClaimNumber: "CLM2024006", ServiceDate: "2024-01-28", Amount: "$195.00", Status: ClaimStatusPending, DaysPending: 4, Reason: "Processing delay"},
		{ID: 107, PatientName: "Grace Liu", ClaimNumber: "CLM2024007", ServiceDate: "2024-02-01", Amount: "$540.00", Status: ClaimStatusDenied, DaysPending: 22, Reason: "Incorrect billing code"},
		{ID: 108, PatientName: "Henry Jackson", ClaimNumber: "CLM2024008", ServiceDate: "2024-02-03", Amount: "$385.50", Status: ClaimStatusPending, DaysPending: 10, Reason: "Awaiting provider response"},
	}
}

func mockCareTasks() []CareTask {
	return []CareTask{
		{ID: 201, PatientName: "Jennifer Walsh", TaskType: "Follow-up Appointment", Priority: PriorityHigh, DueDate: "2024-02-15", Status: "pending", ContactMethod: ContactPhone, Phone: "(555) 111-2222", Email: "j.walsh@email.com", Address: "123 Oak St, Boston, MA", Notes: "Post-surgery follow-up required"},
		{ID: 202, PatientName: "Thomas Brown", TaskType: "Lab Results Review", Priority: PriorityMedium, DueDate: "2024-02-16", Status: "pending", ContactMethod: ContactEmail, Phone: "(555) 222-3333", Email: "t.brown@email.com", Address: "456 Pine Ave, Cambridge, MA", Notes: "Discuss cholesterol levels"},
		{ID: 203, PatientName: "Angela Martinez", TaskType: "Medication Refill", Priority: PriorityHigh, DueDate: "2024-02-14", Status: "pending", ContactMethod: ContactPhone, Phone: "(555) 333-4444", Email: "a.martinez@email.com", Address: "789 Elm Dr, Somerville, MA", Notes: "Diabetes medication running low"},
		{ID: 204, PatientName: "Kevin Lee", TaskType: "Specialist Referral", Priority: PriorityMedium, DueDate: "2024-02-17", Status: "pending", ContactMethod: ContactMail, Phone: "(555) 444-5555", Email: "k.lee@email.com", Address: "321 Maple Ln, Newton, MA", Notes: "Cardiology referral needed"},
		{ID: 205, PatientName: "Rachel Green", TaskType: "Appointment Reminder", Priority: PriorityLow, DueDate: "2024-02-18", Status: "pending", ContactMethod: ContactEmail, Phone: "(555) 555-6666", Email: "r.green@email.com", Address: "654 Cedar St, Brookline, MA", Notes: "Annual physical next week"},
		{ID: 206, PatientName: "Daniel Kim", TaskType: "Test Scheduling", Priority: PriorityHigh, DueDate: "2024-02-15", Status: "pending", ContactMethod: ContactPhone, Phone: "(555) 666-7777", Email: "d.kim@email.com", Address: "987 Birch Rd, Quincy, MA", Notes: "MRI scheduling urgent"},
		{ID: 207, PatientName: "Sophie Turner", TaskType: "Care Plan Review", Priority: PriorityMedium, DueDate: "2024-02-19", Status: "pending", ContactMethod: ContactMail, Phone: "(555) 777-8888", Email: "s.turner@email.com", Address: "147 Spruce Ave, Medford, MA", Notes: "Chronic condition management"},
		{ID: 208, PatientName: "Marcus Johnson", TaskType: "Discharge Follow-up", Priority: PriorityHigh, DueDate: "2024-02-14", Status: "pending", ContactMethod: ContactPhone, Phone: "(555) 888-9999", Email: "m.johnson@email.com", Address: "258 Willow St, Arlington, MA", Notes: "Post-hospital discharge check"},
	}
}
