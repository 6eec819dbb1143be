package jwt

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skill-bridge/server/pkg/company"
)

func TestGenerateAndVerifyCompanyToken(t *testing.T) {
	gen := NewGenerator("secret", "skill-bridge", time.Hour)
	c := company.Company{ID: uuid.New()}

	token, err := gen.Generate(context.Background(), c)
	require.NoError(t, err)

	id, err := companyFromToken(token, "secret", "skill-bridge")
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)

	_, err = companyFromToken(token, "wrong-secret", "skill-bridge")
	assert.Error(t, err)

	_, err = companyFromToken(token, "secret", "someone-else")
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	gen := NewGenerator("secret", "skill-bridge", -time.Minute)
	token, err := gen.Generate(context.Background(), company.Company{ID: uuid.New()})
	require.NoError(t, err)

	_, err = companyFromToken(token, "secret", "skill-bridge")
	assert.Error(t, err)
}

func TestCandidateTokenNeverPassesAsCompany(t *testing.T) {
	// A token signed with our secret but without the company kind claim.
	claims := gojwt.RegisteredClaims{
		Issuer:    "skill-bridge",
		Subject:   "user_abc",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = companyFromToken(token, "secret", "skill-bridge")
	assert.Error(t, err)
}

func TestTrustedSubjectVerifier(t *testing.T) {
	// The stand-in verifier reads the subject without a signature check, so
	// the signing key is irrelevant here. That trust assumption is the point:
	// it only belongs behind a verifying gateway.
	claims := gojwt.RegisteredClaims{Subject: "user_abc"}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("whatever"))
	require.NoError(t, err)

	sub, err := TrustedSubjectVerifier{}.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", sub)

	_, err = TrustedSubjectVerifier{}.Verify("not-a-jwt")
	assert.Error(t, err)

	// A parseable token without a subject is rejected.
	empty, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{}).SignedString([]byte("whatever"))
	require.NoError(t, err)
	_, err = TrustedSubjectVerifier{}.Verify(empty)
	assert.Error(t, err)
}
