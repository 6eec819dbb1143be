package jwt

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skill-bridge/server/pkg/auth"
)

// Locals keys set by the middlewares below.
const (
	LocalCompanyID   = "companyId"
	LocalCandidateID = "candidateId"
	LocalPrincipal   = "principal"
)

// IdentityVerifier is the boundary to the external identity provider used on
// the candidate side: it validates a bearer credential and yields the stable
// subject identifier.
type IdentityVerifier interface {
	Verify(token string) (subject string, err error)
}

// TrustedSubjectVerifier extracts the subject from the provider-issued JWT
// WITHOUT checking its signature. It is a stand-in for deployments where a
// gateway in front of this service has already verified the credential;
// anywhere else, inject a real IdentityVerifier backed by the provider's
// keys instead.
type TrustedSubjectVerifier struct{}

func (TrustedSubjectVerifier) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse identity token: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("identity token has no subject")
	}
	return sub, nil
}

// bearerToken pulls the credential out of the Authorization header.
// Supports both "Bearer <token>" and "<token>" (no prefix).
func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(header)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": message})
}

// companyFromToken validates a company JWT and returns its id.
func companyFromToken(tokenStr, secret, expectedIssuer string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid or expired token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Kind != kindCompany {
		return uuid.Nil, fmt.Errorf("not a company token")
	}
	if expectedIssuer != "" && claims.Issuer != expectedIssuer {
		return uuid.Nil, fmt.Errorf("invalid token issuer")
	}
	return uuid.Parse(claims.Subject)
}

// NewCompanyMiddleware guards recruiter routes. On success it stores the
// company id and principal in locals.
func NewCompanyMiddleware(secret, expectedIssuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return unauthorized(c, "not authorized, login again")
		}
		id, err := companyFromToken(tokenStr, secret, expectedIssuer)
		if err != nil {
			return unauthorized(c, "not authorized, token failed")
		}
		c.Locals(LocalCompanyID, id)
		c.Locals(LocalPrincipal, auth.CompanyPrincipal(id))
		return c.Next()
	}
}

// NewCandidateMiddleware guards job-seeker routes using the external
// identity verifier.
func NewCandidateMiddleware(verifier IdentityVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return unauthorized(c, "no token provided")
		}
		subject, err := verifier.Verify(tokenStr)
		if err != nil {
			return unauthorized(c, "invalid token")
		}
		c.Locals(LocalCandidateID, subject)
		c.Locals(LocalPrincipal, auth.CandidatePrincipal(subject))
		return c.Next()
	}
}

// NewPrincipalMiddleware guards routes open to either side (messaging). The
// credential is resolved into a tagged auth.Principal exactly once, company
// first, so downstream code never guesses which middleware ran.
func NewPrincipalMiddleware(secret, expectedIssuer string, verifier IdentityVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return unauthorized(c, "not authorized, login again")
		}
		if id, err := companyFromToken(tokenStr, secret, expectedIssuer); err == nil {
			c.Locals(LocalPrincipal, auth.CompanyPrincipal(id))
			return c.Next()
		}
		subject, err := verifier.Verify(tokenStr)
		if err != nil {
			return unauthorized(c, "invalid token")
		}
		c.Locals(LocalPrincipal, auth.CandidatePrincipal(subject))
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal a middleware stored.
func PrincipalFromCtx(c *fiber.Ctx) (auth.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(auth.Principal)
	return p, ok
}
