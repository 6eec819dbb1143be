package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanAccessApplication(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	o := Ownership{CompanyID: owner, CandidateID: "cand_1"}

	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{"owning company", CompanyPrincipal(owner), true},
		{"foreign company", CompanyPrincipal(other), false},
		{"applying candidate", CandidatePrincipal("cand_1"), true},
		{"other candidate", CandidatePrincipal("cand_2"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessApplication(tt.p, o))
		})
	}
}

func TestCanManageInterview(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	interviewers := []uuid.UUID{a, b}

	assert.True(t, CanManageInterview(CompanyPrincipal(a), interviewers))
	assert.True(t, CanManageInterview(CompanyPrincipal(b), interviewers))
	assert.False(t, CanManageInterview(CompanyPrincipal(uuid.New()), interviewers))
	assert.False(t, CanManageInterview(CandidatePrincipal("cand_1"), interviewers))
	assert.False(t, CanManageInterview(CompanyPrincipal(a), nil))
}

func TestCanConfirmInterview(t *testing.T) {
	o := Ownership{CompanyID: uuid.New(), CandidateID: "cand_1"}

	assert.True(t, CanConfirmInterview(CandidatePrincipal("cand_1"), o))
	assert.False(t, CanConfirmInterview(CandidatePrincipal("cand_2"), o))
	// The interviewing company may manage the slot but never confirm for
	// the candidate.
	assert.False(t, CanConfirmInterview(CompanyPrincipal(o.CompanyID), o))
}

func TestPrincipalIdentity(t *testing.T) {
	id := uuid.New()
	co := CompanyPrincipal(id)
	assert.True(t, co.IsCompany())
	assert.False(t, co.IsCandidate())
	assert.Equal(t, id.String(), co.ID())

	cand := CandidatePrincipal("user_abc")
	assert.True(t, cand.IsCandidate())
	assert.False(t, cand.IsCompany())
	assert.Equal(t, "user_abc", cand.ID())
}
