package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/skill-bridge/server/api/http/presenter"
	"github.com/skill-bridge/server/pkg/application"
	"github.com/skill-bridge/server/pkg/job"
	"github.com/skill-bridge/server/pkg/security/jwt"
)

// ApplicationHandler serves the recruiter-side application workflow: status
// transitions, reviews and the listings backing the hiring dashboard.
type ApplicationHandler struct {
	applications application.UseCase
}

func NewApplicationHandler(applications application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// applicationError maps workflow errors onto HTTP statuses. A missing
// application and a foreign one produce the same 404 so the endpoint never
// confirms that someone else's application exists.
func applicationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidRating):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrNotAccessible):
		return presenter.Error(c, http.StatusNotFound, err.Error())
	default:
		return presenter.Error(c, http.StatusInternalServerError, "failed to process application")
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an application to a new status and notifies the
// candidate.
// @Summary Update application status
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   applicationId path string true "application id (UUID)"
// @Param   input body updateStatusRequest true "new status"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{applicationId} [put]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	p, ok := jwt.PrincipalFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	id, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid application id")
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	app, err := h.applications.UpdateStatus(c.Context(), p, id, req.Status)
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.Data(c, http.StatusOK, applicationView(app))
}

type reviewRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
	Rating int    `json:"rating"`
}

// Review updates status, recruiter notes and rating in one transition.
// @Summary Review application
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   applicationId path string true "application id (UUID)"
// @Param   input body reviewRequest true "review payload"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{applicationId}/review [put]
func (h *ApplicationHandler) Review(c *fiber.Ctx) error {
	p, ok := jwt.PrincipalFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	id, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid application id")
	}
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	app, err := h.applications.Review(c.Context(), p, id, req.Status, req.Notes, req.Rating)
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.Data(c, http.StatusOK, applicationView(app))
}

// Get returns one application with its job and candidate context.
// @Summary Get application
// @Tags    applications
// @Produce json
// @Param   applicationId path string true "application id (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{applicationId} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	p, ok := jwt.PrincipalFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	id, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid application id")
	}

	d, err := h.applications.Get(c.Context(), p, id)
	if err != nil {
		return applicationError(c, err)
	}
	return presenter.Data(c, http.StatusOK, applicationDetailsView(d))
}

// ListCompany lists every application across the company's jobs.
// @Summary List company applications
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Router  /applications/company [get]
func (h *ApplicationHandler) ListCompany(c *fiber.Ctx) error {
	cid, ok := companyID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	list, err := h.applications.ListForCompany(c.Context(), cid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load applications")
	}
	return presenter.Data(c, http.StatusOK, applicationDetailsViews(list))
}

// ListJob lists applications for one of the company's jobs.
// @Summary List job applications
// @Tags    applications
// @Produce json
// @Param   jobId path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/job/{jobId} [get]
func (h *ApplicationHandler) ListJob(c *fiber.Ctx) error {
	cid, ok := companyID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	list, err := h.applications.ListForJob(c.Context(), cid, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load applications")
	}
	return presenter.Data(c, http.StatusOK, applicationDetailsViews(list))
}

// Stats returns status counts and average rating for one job.
// @Summary Job application stats
// @Tags    applications
// @Produce json
// @Param   jobId path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/job/{jobId}/stats [get]
func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	cid, ok := companyID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job id")
	}
	stats, err := h.applications.StatsForJob(c.Context(), cid, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load stats")
	}
	return presenter.Data(c, http.StatusOK, stats)
}
