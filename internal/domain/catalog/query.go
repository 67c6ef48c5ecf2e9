package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidQuery is returned for an unknown sort key or filter value.
var ErrInvalidQuery = errors.New("invalid query")

// AmountBand buckets claim amounts: low is under $200, medium is $200 to
// $500 inclusive, high is over $500.
type AmountBand string

const (
	AmountLow    AmountBand = "low"
	AmountMedium AmountBand = "medium"
	AmountHigh   AmountBand = "high"
)

func (b AmountBand) contains(amount float64) bool {
	switch b {
	case AmountLow:
		return amount < 200
	case AmountMedium:
		return amount >= 200 && amount <= 500
	case AmountHigh:
		return amount > 500
	}
	return true
}

// ParseAmount reads a display amount such as "$1,250.00".
func ParseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	return strconv.ParseFloat(s, 64)
}

// PatientQuery narrows and orders the patient catalog. Zero fields match
// everything; an empty Sort keeps id order.
type PatientQuery struct {
	Name      string // case-insensitive substring
	Insurance string
	Sort      string // name, insurance or dob
}

// ClaimQuery narrows and orders the claim catalog. Amount and days sort
// largest first.
type ClaimQuery struct {
	Patient string // case-insensitive substring
	Status  ClaimStatus
	Amount  AmountBand
	Sort    string // patient, amount, days or date
}

// CareTaskQuery narrows and orders the care-task catalog. Priority sorts
// high first.
type CareTaskQuery struct {
	Priority      Priority
	TaskType      string
	ContactMethod ContactMethod
	Sort          string // due or priority
}

// "all" is what the page selects submit for no filter.
func param(v url.Values, key string) string {
	s := strings.TrimSpace(v.Get(key))
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

func PatientQueryFrom(v url.Values) PatientQuery {
	return PatientQuery{Name: param(v, "q"), Insurance: param(v, "insurance"), Sort: param(v, "sort")}
}

func ClaimQueryFrom(v url.Values) ClaimQuery {
	return ClaimQuery{
		Patient: param(v, "q"),
		Status:  ClaimStatus(param(v, "status")),
		Amount:  AmountBand(param(v, "amount")),
		Sort:    param(v, "sort"),
	}
}

func CareTaskQueryFrom(v url.Values) CareTaskQuery {
	return CareTaskQuery{
		Priority:      Priority(param(v, "priority")),
		TaskType:      param(v, "type"),
		ContactMethod: ContactMethod(param(v, "contact_method")),
		Sort:          param(v, "sort"),
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// FindPatients returns the patients matching q in the order it asks for.
func (s *Store) FindPatients(q PatientQuery) ([]Patient, error) {
	var less func(a, b Patient) bool
	switch q.Sort {
	case "":
	case "name":
		less = func(a, b Patient) bool { return a.Name < b.Name }
	case "insurance":
		less = func(a, b Patient) bool { return a.Insurance < b.Insurance }
	case "dob":
		less = func(a, b Patient) bool { return a.DOB < b.DOB }
	default:
		return nil, invalid("unknown patient sort %q", q.Sort)
	}

	out := []Patient{}
	for _, p := range s.Patients() {
		if q.Name != "" && !containsFold(p.Name, q.Name) {
			continue
		}
		if q.Insurance != "" && p.Insurance != q.Insurance {
			continue
		}
		out = append(out, p)
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out, nil
}

// FindClaims returns the claims matching q in the order it asks for.
// Claims whose amount cannot be parsed only match an unset Amount band.
func (s *Store) FindClaims(q ClaimQuery) ([]Claim, error) {
	switch q.Amount {
	case "", AmountLow, AmountMedium, AmountHigh:
	default:
		return nil, invalid("unknown amount band %q", q.Amount)
	}

	amount := func(c Claim) float64 {
		v, err := ParseAmount(c.Amount)
		if err != nil {
			return -1
		}
		return v
	}

	var less func(a, b Claim) bool
	switch q.Sort {
	case "":
	case "patient":
		less = func(a, b Claim) bool { return a.PatientName < b.PatientName }
	case "amount":
		less = func(a, b Claim) bool { return amount(a) > amount(b) }
	case "days":
		less = func(a, b Claim) bool { return a.DaysPending > b.DaysPending }
	case "date":
		less = func(a, b Claim) bool { return a.ServiceDate < b.ServiceDate }
	default:
		return nil, invalid("unknown claim sort %q", q.Sort)
	}

	out := []Claim{}
	for _, c := range s.Claims() {
		if q.Patient != "" && !containsFold(c.PatientName, q.Patient) {
			continue
		}
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		if q.Amount != "" {
			v, err := ParseAmount(c.Amount)
			if err != nil || !q.Amount.contains(v) {
				continue
			}
		}
		out = append(out, c)
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out, nil
}

var priorityRank = map[Priority]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}

// FindCareTasks returns the care tasks matching q in the order it asks for.
func (s *Store) FindCareTasks(q CareTaskQuery) ([]CareTask, error) {
	rank := func(p Priority) int {
		if r, ok := priorityRank[p]; ok {
			return r
		}
		return len(priorityRank)
	}

	var less func(a, b CareTask) bool
	switch q.Sort {
	case "":
	case "due":
		less = func(a, b CareTask) bool { return a.DueDate < b.DueDate }
	case "priority":
		less = func(a, b CareTask) bool { return rank(a.Priority) < rank(b.Priority) }
	default:
		return nil, invalid("unknown care task sort %q", q.Sort)
	}

	out := []CareTask{}
	for _, t := range s.CareTasks() {
		if q.Priority != "" && t.Priority != q.Priority {
			continue
		}
		if q.TaskType != "" && t.TaskType != q.TaskType {
			continue
		}
		if q.ContactMethod != "" && t.ContactMethod != q.ContactMethod {
			continue
		}
		out = append(out, t)
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out, nil
}

// Insurers lists the distinct insurers in the patient catalog, sorted.
func (s *Store) Insurers() []string {
	return distinct(s.Patients(), func(p Patient) string { return p.Insurance })
}

// TaskTypes lists the distinct care-task types, sorted.
func (s *Store) TaskTypes() []string {
	return distinct(s.CareTasks(), func(t CareTask) string { return t.TaskType })
}

func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		k := key(it)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
