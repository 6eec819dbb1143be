package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/skill-bridge/server/api/http/presenter"
	"github.com/skill-bridge/server/pkg/application"
	"github.com/skill-bridge/server/pkg/interview"
	"github.com/skill-bridge/server/pkg/security/jwt"
)

type InterviewHandler struct {
	interviews interview.UseCase
}

func NewInterviewHandler(interviews interview.UseCase) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

func interviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, interview.ErrInvalidStatus),
		errors.Is(err, interview.ErrInvalidMeeting),
		errors.Is(err, interview.ErrMissingSchedule),
		errors.Is(err, interview.ErrInvalidDuration):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, interview.ErrForbidden):
		return presenter.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, interview.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "interview not found")
	case errors.Is(err, application.ErrNotAccessible):
		return presenter.Error(c, http.StatusNotFound, err.Error())
	default:
		return presenter.Error(c, http.StatusInternalServerError, "failed to process interview")
	}
}

type scheduleRequest struct {
	ApplicationID  string                   `json:"applicationId"`
	ScheduledTime  time.Time                `json:"scheduledTime"`
	Duration       int                      `json:"duration"`
	MeetingType    string                   `json:"meetingType"`
	MeetingDetails interview.MeetingDetails `json:"meetingDetails"`
	Interviewers   []string                 `json:"interviewers"`
}

// Schedule books an interview for an application and notifies the candidate.
// @Summary Schedule interview
// @Tags    interviews
// @Accept  json
// @Produce json
// @Param   input body scheduleRequest true "schedule payload"
// @Security BearerAuth
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /interviews/company/schedule [post]
func (h *InterviewHandler) Schedule(c *fiber.Ctx) error {
	cid, ok := companyID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	var req scheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid applicationId")
	}
	var interviewers []uuid.UUID
	for _, s := range req.Interviewers {
		id, err := uuid.Parse(s)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid interviewer id")
		}
		interviewers = append(interviewers, id)
	}

	iv, err := h.interviews.Schedule(c.Context(), cid, interview.ScheduleInput{
		ApplicationID:  appID,
		ScheduledTime:  req.ScheduledTime,
		Duration:       req.Duration,
		MeetingType:    req.MeetingType,
		MeetingDetails: req.MeetingDetails,
		Interviewers:   interviewers,
	})
	if err != nil {
		return interviewError(c, err)
	}
	return presenter.Data(c, http.StatusCreated, interviewView(iv))
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// ListCompany lists the company's interviews, optionally narrowed by status
// and a date window.
// @Summary List company interviews
// @Tags    interviews
// @Produce json
// @Param   status query string false "filter by status"
// @Param   startDate query string false "window start (RFC3339 or YYYY-MM-DD)"
// @Param   endDate query string false "window end (RFC3339 or YYYY-MM-DD)"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /interviews/company/list [get]
func (h *InterviewHandler) ListCompany(c *fiber.Ctx) error {
	cid, ok := companyID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}

	f := interview.ListFilter{Status: strings.TrimSpace(c.Query("status"))}
	if v := strings.TrimSpace(c.Query("startDate")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid startDate")
		}
		f.From = t
	}
	if v := strings.TrimSpace(c.Query("endDate")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid endDate")
		}
		f.To = t
	}

	list, err := h.interviews.ListForCompany(c.Context(), cid, f)
	if err != nil {
		return interviewError(c, err)
	}
	return presenter.Data(c, http.StatusOK, interviewDetailsViews(list))
}

type interviewStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateStatus sets the interview status; re-applying the current status is
// a no-op.
// @Summary Update interview status
// @Tags    interviews
// @Accept  json
// @Produce json
// @Param   interviewId path string true "interview id (UUID)"
// @Param   input body interviewStatusRequest true "status payload"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /interviews/company/{interviewId}/status [put]
func (h *InterviewHandler) UpdateStatus(c *fiber.Ctx) error {
	p, ok := jwt.PrincipalFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	id, err := uuid.Parse(c.Params("interviewId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid interview id")
	}
	var req interviewStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	iv, err := h.interviews.UpdateStatus(c.Context(), p, id, req.Status, req.Notes)
	if err != nil {
		return interviewError(c, err)
	}
	return presenter.Data(c, http.StatusOK, interviewView(iv))
}

// Confirm records the candidate's attendance confirmation. Confirming twice
// is harmless; there is no way to unconfirm.
// @Summary Confirm interview attendance
// @Tags    interviews
// @Produce json
// @Param   interviewId path string true "interview id (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /interviews/candidate/{interviewId}/confirm [put]
func (h *InterviewHandler) Confirm(c *fiber.Ctx) error {
	p, ok := jwt.PrincipalFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	id, err := uuid.Parse(c.Params("interviewId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid interview id")
	}

	iv, err := h.interviews.Confirm(c.Context(), p, id)
	if err != nil {
		return interviewError(c, err)
	}
	return presenter.Data(c, http.StatusOK, interviewView(iv))
}

// ListCandidate lists the caller's upcoming interviews, soonest first.
// @Summary List upcoming candidate interviews
// @Tags    interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Router  /interviews/candidate/list [get]
func (h *InterviewHandler) ListCandidate(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	list, err := h.interviews.ListUpcomingForCandidate(c.Context(), id)
	if err != nil {
		return interviewError(c, err)
	}
	return presenter.Data(c, http.StatusOK, interviewDetailsViews(list))
}
