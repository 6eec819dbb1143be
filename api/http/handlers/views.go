package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skill-bridge/server/pkg/application"
	"github.com/skill-bridge/server/pkg/candidate"
	"github.com/skill-bridge/server/pkg/interview"
	"github.com/skill-bridge/server/pkg/job"
	"github.com/skill-bridge/server/pkg/message"
)

// JSON projections of the domain entities. Kept in one place so list and
// detail endpoints stay consistent.

func candidateView(c candidate.Candidate) fiber.Map {
	return fiber.Map{
		"id":        c.ID,
		"name":      c.Name,
		"email":     c.Email,
		"image":     c.Image,
		"resume":    c.Resume,
		"headline":  c.Headline,
		"phone":     c.Phone,
		"location":  c.Location,
		"website":   c.Website,
		"about":     c.About,
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	}
}

func jobView(j job.Job) fiber.Map {
	return fiber.Map{
		"id":          j.ID.String(),
		"companyId":   j.CompanyID.String(),
		"title":       j.Title,
		"description": j.Description,
		"location":    j.Location,
		"category":    j.Category,
		"level":       j.Level,
		"salaryMin":   j.SalaryMin,
		"salaryMax":   j.SalaryMax,
		"type":        j.Type,
		"workMode":    j.WorkMode,
		"visible":     j.Visible,
		"status":      j.Status,
		"deadline":    j.ApplicationDeadline,
		"createdAt":   j.CreatedAt,
	}
}

func applicationView(a application.Application) fiber.Map {
	return fiber.Map{
		"id":               a.ID.String(),
		"candidateId":      a.CandidateID,
		"jobId":            a.JobID.String(),
		"companyId":        a.CompanyID.String(),
		"resume":           a.Resume,
		"coverLetter":      a.CoverLetter,
		"expectedSalary":   a.ExpectedSalary,
		"status":           a.Status,
		"recruiterNotes":   a.RecruiterNotes,
		"recruiterRating":  a.RecruiterRating,
		"applicationDate":  a.ApplicationDate,
		"lastStatusUpdate": a.LastStatusUpdate,
	}
}

func applicationDetailsView(d application.Details) fiber.Map {
	v := applicationView(d.Application)
	v["job"] = fiber.Map{"title": d.JobTitle, "location": d.JobLocation}
	v["candidate"] = fiber.Map{
		"name":  d.CandidateName,
		"email": d.CandidateEmail,
		"image": d.CandidateImage,
	}
	v["company"] = fiber.Map{"name": d.CompanyName}
	return v
}

func applicationDetailsViews(ds []application.Details) []fiber.Map {
	views := make([]fiber.Map, 0, len(ds))
	for _, d := range ds {
		views = append(views, applicationDetailsView(d))
	}
	return views
}

func interviewView(iv interview.Interview) fiber.Map {
	interviewers := make([]string, 0, len(iv.Interviewers))
	for _, id := range iv.Interviewers {
		interviewers = append(interviewers, id.String())
	}
	return fiber.Map{
		"id":                 iv.ID.String(),
		"applicationId":      iv.ApplicationID.String(),
		"scheduledTime":      iv.ScheduledTime,
		"duration":           iv.Duration,
		"status":             iv.Status,
		"meetingType":        iv.MeetingType,
		"meetingDetails":     iv.MeetingDetails,
		"interviewers":       interviewers,
		"candidateConfirmed": iv.CandidateConfirmed,
		"createdAt":          iv.CreatedAt,
		"updatedAt":          iv.UpdatedAt,
	}
}

func interviewDetailsView(d interview.Details) fiber.Map {
	v := interviewView(d.Interview)
	v["candidate"] = fiber.Map{
		"id":    d.CandidateID,
		"name":  d.CandidateName,
		"email": d.CandidateEmail,
	}
	v["job"] = fiber.Map{"title": d.JobTitle}
	v["company"] = fiber.Map{"name": d.CompanyName}
	return v
}

func interviewDetailsViews(ds []interview.Details) []fiber.Map {
	views := make([]fiber.Map, 0, len(ds))
	for _, d := range ds {
		views = append(views, interviewDetailsView(d))
	}
	return views
}

func messageView(m message.Message) fiber.Map {
	return fiber.Map{
		"id":            m.ID.String(),
		"applicationId": m.ApplicationID.String(),
		"senderId":      m.SenderID,
		"senderType":    m.SenderType,
		"receiverId":    m.ReceiverID,
		"receiverType":  m.ReceiverType,
		"content":       m.Content,
		"isRead":        m.IsRead,
		"attachments":   m.Attachments,
		"createdAt":     m.CreatedAt,
	}
}
