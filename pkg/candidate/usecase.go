package candidate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/skill-bridge/server/pkg/blob"
)

var (
	ErrMissingFields   = errors.New("missing required user information")
	ErrInvalidFileType = errors.New("invalid file type, please upload a PDF or Word document")
	ErrFileTooLarge    = errors.New("file size exceeds 5MB, please upload a smaller file")
	ErrUploadsDisabled = errors.New("file uploads are not configured")
)

const maxResumeSize = 5 << 20 // 5MB

var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// UseCase manages candidate profiles and resume uploads.
type UseCase interface {
	// EnsureProfile creates the profile on first login; repeated calls return
	// the existing record untouched.
	EnsureProfile(ctx context.Context, c Candidate) (Candidate, bool, error)
	Get(ctx context.Context, id string) (Candidate, error)
	UpdateProfile(ctx context.Context, c Candidate) (Candidate, error)
	UploadResume(ctx context.Context, id, filename, contentType string, size int64, r io.Reader) (string, error)
}

type service struct {
	repo  Repository
	blobs blob.Store
}

func NewService(repo Repository, blobs blob.Store) UseCase {
	return &service{repo: repo, blobs: blobs}
}

func (s *service) EnsureProfile(ctx context.Context, c Candidate) (Candidate, bool, error) {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Name) == "" {
		return Candidate{}, false, ErrMissingFields
	}
	if existing, err := s.repo.GetByID(ctx, c.ID); err == nil {
		return existing, false, nil
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.repo.Create(ctx, c); err != nil {
		return Candidate{}, false, err
	}
	return c, true, nil
}

func (s *service) Get(ctx context.Context, id string) (Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, c Candidate) (Candidate, error) {
	existing, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return Candidate{}, err
	}
	// Field-wise merge: empty inputs keep the stored value.
	if c.Name == "" {
		c.Name = existing.Name
	}
	if c.Email == "" {
		c.Email = existing.Email
	}
	if c.Image == "" {
		c.Image = existing.Image
	}
	if c.Headline == "" {
		c.Headline = existing.Headline
	}
	if c.Phone == "" {
		c.Phone = existing.Phone
	}
	if c.Location == "" {
		c.Location = existing.Location
	}
	if c.Website == "" {
		c.Website = existing.Website
	}
	if c.About == "" {
		c.About = existing.About
	}
	c.Resume = existing.Resume
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateProfile(ctx, c); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

func (s *service) UploadResume(ctx context.Context, id, filename, contentType string, size int64, r io.Reader) (string, error) {
	if !allowedResumeTypes[contentType] {
		return "", ErrInvalidFileType
	}
	if size > maxResumeSize {
		return "", ErrFileTooLarge
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}
	if s.blobs == nil {
		return "", ErrUploadsDisabled
	}
	url, err := s.blobs.Upload(ctx, "resumes", filename, r)
	if err != nil {
		return "", fmt.Errorf("upload resume: %w", err)
	}
	if err := s.repo.UpdateResume(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}
