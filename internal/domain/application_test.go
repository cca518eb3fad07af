package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from ApplicationStatus
		to   ApplicationStatus
		want bool
	}{
		{"pending to received", ApplicationStatusPending, ApplicationStatusReceived, true},
		{"pending to rejected", ApplicationStatusPending, ApplicationStatusRejected, true},
		{"rejected to selected", ApplicationStatusRejected, ApplicationStatusSelected, true},
		{"interview to interview", ApplicationStatusInterview, ApplicationStatusInterview, true},
		{"received back to pending", ApplicationStatusReceived, ApplicationStatusPending, false},
		{"pending to reviewed", ApplicationStatusPending, ApplicationStatusReviewed, false},
		{"unknown source", ApplicationStatus("archived"), ApplicationStatusReceived, false},
		{"unknown target", ApplicationStatusPending, ApplicationStatus("hired"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RolePublisher, RoleApplicant, RoleApprover} {
		assert.True(t, role.Valid(), role)
	}
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestJobIsOpen(t *testing.T) {
	var missing *Job
	assert.False(t, missing.IsOpen())
	assert.True(t, (&Job{Status: JobStatusOpen}).IsOpen())
	assert.False(t, (&Job{Status: JobStatusClosed}).IsOpen())
}
