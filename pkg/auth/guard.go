package auth

import "github.com/google/uuid"

// Ownership names the two parties of a job application. It is the unit the
// guard reasons about; callers load it from the application record.
type Ownership struct {
	CompanyID   uuid.UUID
	CandidateID string
}

// CanAccessApplication reports whether the principal may read or mutate an
// application: the owning company or the applying candidate.
func CanAccessApplication(p Principal, o Ownership) bool {
	if p.IsCompany() {
		return p.CompanyID() == o.CompanyID
	}
	return p.CandidateID() == o.CandidateID
}

// CanManageInterview reports whether a company principal may mutate an
// interview. Only companies listed as interviewers qualify.
func CanManageInterview(p Principal, interviewers []uuid.UUID) bool {
	if !p.IsCompany() {
		return false
	}
	for _, id := range interviewers {
		if id == p.CompanyID() {
			return true
		}
	}
	return false
}

// CanConfirmInterview reports whether the principal may set the candidate
// confirmation flag: only the candidate owning the linked application.
func CanConfirmInterview(p Principal, o Ownership) bool {
	return p.IsCandidate() && p.CandidateID() == o.CandidateID
}

// CanMessage reports whether the principal participates in the application's
// conversation. Same rule as application access.
func CanMessage(p Principal, o Ownership) bool {
	return CanAccessApplication(p, o)
}
