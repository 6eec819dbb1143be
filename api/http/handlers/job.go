package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/skill-bridge/server/api/http/presenter"
	"github.com/skill-bridge/server/pkg/job"
	"github.com/skill-bridge/server/pkg/security/jwt"
)

type JobHandler struct {
	jobs job.UseCase
}

func NewJobHandler(jobs job.UseCase) *JobHandler { return &JobHandler{jobs: jobs} }

func companyID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(jwt.LocalCompanyID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

type createJobRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	Level       string     `json:"level"`
	SalaryMin   int        `json:"salaryMin"`
	SalaryMax   int        `json:"salaryMax"`
	Type        string     `json:"type"`
	WorkMode    string     `json:"workMode"`
	Deadline    *time.Time `json:"deadline"`
}

// Create posts a new job for the authenticated company.
// @Summary Create job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body createJobRequest true "job payload"
// @Security BearerAuth
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	cid, ok := companyID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	j, err := h.jobs.Create(c.Context(), job.Job{
		CompanyID:           cid,
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Category:            req.Category,
		Level:               req.Level,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		Type:                req.Type,
		WorkMode:            req.WorkMode,
		ApplicationDeadline: req.Deadline,
	})
	if err != nil {
		var ve job.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create job")
	}
	return presenter.Data(c, http.StatusCreated, jobView(j))
}

// ListCompany lists the authenticated company's jobs, newest first.
// @Summary List company jobs
// @Tags    jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Router  /jobs/company [get]
func (h *JobHandler) ListCompany(c *fiber.Ctx) error {
	cid, ok := companyID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	jobs, err := h.jobs.ListByCompany(c.Context(), cid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load jobs")
	}
	views := make([]fiber.Map, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, jobView(j))
	}
	return presenter.Data(c, http.StatusOK, views)
}
