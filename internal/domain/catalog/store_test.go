package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_CatalogSizes(t *testing.T) {
	s := Mock()
	assert.Equal(t, 8, s.Len(KindPatients))
	assert.Equal(t, 8, s.Len(KindClaims))
	assert.Equal(t, 8, s.Len(KindCareTasks))
	assert.Equal(t, 0, s.Len(Kind("unknown")))
}

func TestMockSource_Load(t *testing.T) {
	s, err := MockSource{}.Load(context.Background())
	require.NoError(t, err)

	p, err := s.Patient(2)
	require.NoError(t, err)
	assert.Equal(t, "Michael Chen", p.Name)
	assert.Equal(t, "Aetna", p.Insurance)
	assert.Equal(t, PatientStatusPendingVerification, p.Status)
}

func TestStore_LookupByKind(t *testing.T) {
	s := Mock()

	rec, err := s.Lookup(KindClaims, 103)
	require.NoError(t, err)
	c, ok := rec.(Claim)
	require.True(t, ok)
	assert.Equal(t, "Duplicate claim", c.Reason)
	assert.Equal(t, ClaimStatusDenied, c.Status)

	rec, err = s.Lookup(KindCareTasks, 204)
	require.NoError(t, err)
	assert.Equal(t, ContactMail, rec.(CareTask).ContactMethod)

	rec, err = s.Lookup(KindPatients, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", rec.(Patient).Name)

	_, err = s.Lookup(Kind("doctors"), 1)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestStore_NotFound(t *testing.T) {
	s := Mock()

	_, err := s.Patient(999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Claim(1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.CareTask(101)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Lookup(KindPatients, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Patient{{ID: 1}, {ID: 1}}, nil, nil)
	assert.Error(t, err)

	_, err = New(nil, []Claim{{ID: 7}, {ID: 7}}, nil)
	assert.Error(t, err)

	_, err = New(nil, nil, []CareTask{{ID: 3}, {ID: 3}})
	assert.Error(t, err)
}

func TestStore_ListingsAreOrderedCopies(t *testing.T) {
	s := Mock()

	patients := s.Patients()
	require.Len(t, patients, 8)
	for i := 1; i < len(patients); i++ {
		assert.Less(t, patients[i-1].ID, patients[i].ID)
	}

	patients[0].Name = "Changed"
	p, err := s.Patient(patients[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", p.Name)

	claims := s.Claims()
	require.Len(t, claims, 8)
	assert.Equal(t, 101, claims[0].ID)
	assert.Equal(t, 108, claims[7].ID)

	tasks := s.CareTasks()
	require.Len(t, tasks, 8)
	assert.Equal(t, 201, tasks[0].ID)
	assert.Equal(t, 208, tasks[7].ID)
}

func TestContactMethod_Channel(t *testing.T) {
	cases := map[ContactMethod]Channel{
		ContactPhone:           ChannelPhone,
		ContactEmail:           ChannelEmail,
		ContactMail:            ChannelMail,
		ContactMethod("fax"):   ChannelMail,
		ContactMethod(""):      ChannelMail,
		ContactMethod("PHONE"): ChannelMail,
	}
	for method, want := range cases {
		assert.Equal(t, want, method.Channel(), "contact method %q", method)
	}
	assert.Equal(t, "phone", ChannelPhone.String())
	assert.Equal(t, "email", ChannelEmail.String())
	assert.Equal(t, "mail", ChannelMail.String())
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"patients":   KindPatients,
		"claims":     KindClaims,
		"care_tasks": KindCareTasks,
		"care-tasks": KindCareTasks,
	} {
		got, ok := ParseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseKind("doctors")
	assert.False(t, ok)
}
