package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/skill-bridge/server/api/http/presenter"
	"github.com/skill-bridge/server/pkg/application"
	"github.com/skill-bridge/server/pkg/candidate"
	"github.com/skill-bridge/server/pkg/job"
	"github.com/skill-bridge/server/pkg/security/jwt"
)

// UserHandler serves the candidate-side endpoints: profile, resume upload
// and applying for jobs.
type UserHandler struct {
	candidates   candidate.UseCase
	applications application.UseCase
}

func NewUserHandler(candidates candidate.UseCase, applications application.UseCase) *UserHandler {
	return &UserHandler{candidates: candidates, applications: applications}
}

func candidateID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(jwt.LocalCandidateID).(string)
	return id, ok && id != ""
}

type profileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Image    string `json:"image"`
	Headline string `json:"headline"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	About    string `json:"about"`
}

func (r profileRequest) toEntity(id string) candidate.Candidate {
	return candidate.Candidate{
		ID:       id,
		Name:     r.Name,
		Email:    r.Email,
		Image:    r.Image,
		Headline: r.Headline,
		Phone:    r.Phone,
		Location: r.Location,
		Website:  r.Website,
		About:    r.About,
	}
}

// CreateProfile registers the candidate profile on first login. Calling it
// again for an existing profile is a no-op that returns the stored record.
// @Summary Create candidate profile
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body profileRequest true "profile payload"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/profile [post]
func (h *UserHandler) CreateProfile(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	cand, created, err := h.candidates.EnsureProfile(c.Context(), req.toEntity(id))
	if err != nil {
		if errors.Is(err, candidate.ErrMissingFields) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create profile")
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return presenter.Data(c, status, candidateView(cand))
}

// GetProfile returns the caller's profile.
// @Summary Get candidate profile
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	cand, err := h.candidates.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load profile")
	}
	return presenter.Data(c, http.StatusOK, candidateView(cand))
}

// UpdateProfile merges the non-empty fields of the payload into the profile.
// @Summary Update candidate profile
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body profileRequest true "fields to update"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	cand, err := h.candidates.UpdateProfile(c.Context(), req.toEntity(id))
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to update profile")
	}
	return presenter.Data(c, http.StatusOK, candidateView(cand))
}

// UploadResume stores the uploaded file and records its URL on the profile.
// @Summary Upload resume
// @Tags    users
// @Accept  mpfd
// @Produce json
// @Param   resume formData file true "PDF or Word document, max 5MB"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/resume [post]
func (h *UserHandler) UploadResume(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "resume file is required")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "could not read uploaded file")
	}
	defer f.Close()

	url, err := h.candidates.UploadResume(c.Context(), id, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, f)
	if err != nil {
		switch {
		case errors.Is(err, candidate.ErrInvalidFileType),
			errors.Is(err, candidate.ErrFileTooLarge):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, candidate.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to upload resume")
		}
	}
	return presenter.Data(c, http.StatusOK, fiber.Map{"resume": url})
}

type applyRequest struct {
	JobID          string `json:"jobId"`
	CoverLetter    string `json:"coverLetter"`
	ExpectedSalary int    `json:"expectedSalary"`
}

// Apply submits an application for a job using the profile's current resume.
// @Summary Apply for a job
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body applyRequest true "application payload"
// @Security BearerAuth
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /users/apply [post]
func (h *UserHandler) Apply(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid jobId")
	}

	app, err := h.applications.Apply(c.Context(), id, jobID, req.CoverLetter, req.ExpectedSalary)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyApplied):
			return presenter.Error(c, http.StatusConflict, "already applied for this job")
		case errors.Is(err, application.ErrResumeRequired),
			errors.Is(err, application.ErrInvalidResume):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, candidate.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "profile not found, create one first")
		case errors.Is(err, job.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "job not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to apply")
		}
	}
	return presenter.Data(c, http.StatusCreated, applicationView(app))
}

// Applications lists the caller's applications, newest first.
// @Summary List candidate applications
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Router  /users/applications [get]
func (h *UserHandler) Applications(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	list, err := h.applications.ListForCandidate(c.Context(), id)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load applications")
	}
	return presenter.Data(c, http.StatusOK, applicationDetailsViews(list))
}
