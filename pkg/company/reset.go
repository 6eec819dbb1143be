package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skill-bridge/server/pkg/notify"
	"github.com/skill-bridge/server/pkg/otp"
)

// Password-reset errors. All map to a 400 with their message; they carry the
// exact wording the old API exposed.
var (
	// ErrNoResetRequest also covers expired codes: the store forgets entries
	// past their TTL, so the two cases are indistinguishable here.
	ErrNoResetRequest  = errors.New("no OTP request found or OTP expired, please request a new one")
	ErrTooManyAttempts = errors.New("too many invalid attempts, please request a new OTP")
	ErrInvalidOTP      = errors.New("invalid OTP")
)

const (
	resetCodeTTL     = 10 * time.Minute
	resetMaxAttempts = 3
)

// PasswordResetUseCase drives the forgot/reset flow for recruiter accounts.
type PasswordResetUseCase interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type resetService struct {
	repo     Repository
	codes    otp.Store
	notifier notify.Notifier
}

// NewResetService wires the reset flow. Unlike workflow notifications, the
// OTP email is delivered synchronously and its failure fails the request:
// without the code the flow is dead anyway.
func NewResetService(repo Repository, codes otp.Store, notifier notify.Notifier) PasswordResetUseCase {
	return &resetService{repo: repo, codes: codes, notifier: notifier}
}

func (s *resetService) RequestReset(ctx context.Context, email string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		return ErrNotFound
	}
	code, err := otp.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.codes.Put(ctx, email, code, resetCodeTTL); err != nil {
		return err
	}
	return s.notifier.Send(ctx, email, "Password Reset OTP", notify.PasswordResetTemplate(code))
}

func (s *resetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	entry, err := s.codes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return ErrNoResetRequest
		}
		return err
	}
	if entry.Attempts >= resetMaxAttempts {
		_ = s.codes.Delete(ctx, email)
		return ErrTooManyAttempts
	}
	if entry.Code != code {
		_, _ = s.codes.RecordFailure(ctx, email)
		return ErrInvalidOTP
	}

	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, c.ID, string(hash)); err != nil {
		return err
	}
	return s.codes.Delete(ctx, email)
}
