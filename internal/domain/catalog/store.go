package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when an id has no record in the requested catalog.
var ErrNotFound = errors.New("not found")

// Source loads the catalogs once at startup.
type Source interface {
	Load(ctx context.Context) (*Store, error)
}

// Store holds the three read-only catalogs. A Store is never mutated after
// New returns, so it is safe for concurrent use.
type Store struct {
	patients  map[int]Patient
	claims    map[int]Claim
	careTasks map[int]CareTask
}

// New indexes the given records by id. Duplicate ids within a catalog are
// rejected.
func New(patients []Patient, claims []Claim, tasks []CareTask) (*Store, error) {
	s := &Store{
		patients:  make(map[int]Patient, len(patients)),
		claims:    make(map[int]Claim, len(claims)),
		careTasks: make(map[int]CareTask, len(tasks)),
	}
	for _, p := range patients {
		if _, dup := s.patients[p.ID]; dup {
			return nil, fmt.Errorf("duplicate patient id %d", p.ID)
		}
		s.patients[p.ID] = p
	}
	for _, c := range claims {
		if _, dup := s.claims[c.ID]; dup {
			return nil, fmt.Errorf("duplicate claim id %d", c.ID)
		}
		s.claims[c.ID] = c
	}
	for _, t := range tasks {
		if _, dup := s.careTasks[t.ID]; dup {
			return nil, fmt.Errorf("duplicate care task id %d", t.ID)
		}
		s.careTasks[t.ID] = t
	}
	return s, nil
}

func (s *Store) Patient(id int) (Patient, error) {
	p, ok := s.patients[id]
	if !ok {
		return Patient{}, fmt.Errorf("patient %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *Store) Claim(id int) (Claim, error) {
	c, ok := s.claims[id]
	if !ok {
		return Claim{}, fmt.Errorf("claim %d: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *Store) CareTask(id int) (CareTask, error) {
	t, ok := s.careTasks[id]
	if !ok {
		return CareTask{}, fmt.Errorf("care task %d: %w", id, ErrNotFound)
	}
	return t, nil
}

// Lookup resolves id in the named catalog and returns the record as a value.
func (s *Store) Lookup(kind Kind, id int) (interface{}, error) {
	switch kind {
	case KindPatients:
		return s.Patient(id)
	case KindClaims:
		return s.Claim(id)
	case KindCareTasks:
		return s.CareTask(id)
	}
	return nil, fmt.Errorf("unknown catalog %q", kind)
}

// Patients returns every patient ordered by id.
func (s *Store) Patients() []Patient {
	out := make([]Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Claims returns every claim ordered by id.
func (s *Store) Claims() []Claim {
	out := make([]Claim, 0, len(s.claims))
	for _, c := range s.claims {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CareTasks returns every care task ordered by id.
func (s *Store) CareTasks() []CareTask {
	out := make([]CareTask, 0, len(s.careTasks))
	for _, t := range s.careTasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of records in the named catalog.
func (s *Store) Len(kind Kind) int {
	switch kind {
	case KindPatients:
		return len(s.patients)
	case KindClaims:
		return len(s.claims)
	case KindCareTasks:
		return len(s.careTasks)
	}
	return 0
}
