package auth

import "github.com/google/uuid"

// Principal is the authenticated actor behind a request: either a company
// (recruiter side, id issued by us) or a candidate (opaque subject from the
// external identity provider). Exactly one side is set.
type Principal struct {
	companyID   uuid.UUID
	candidateID string
}

func CompanyPrincipal(id uuid.UUID) Principal { return Principal{companyID: id} }

func CandidatePrincipal(subject string) Principal { return Principal{candidateID: subject} }

func (p Principal) IsCompany() bool   { return p.companyID != uuid.Nil }
func (p Principal) IsCandidate() bool { return p.candidateID != "" }

// CompanyID returns the company id; uuid.Nil for candidate principals.
func (p Principal) CompanyID() uuid.UUID { return p.companyID }

// CandidateID returns the external subject; empty for company principals.
func (p Principal) CandidateID() string { return p.candidateID }

// ID returns the principal identifier as a string, whichever side is set.
// Used as message sender/receiver id, which mixes both kinds.
func (p Principal) ID() string {
	if p.IsCompany() {
		return p.companyID.String()
	}
	return p.candidateID
}
