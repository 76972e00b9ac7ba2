package dto

import "github.com/mentorhub/mentorhub/internal/app/models"

// AdminStatsResponse are the admin dashboard counters
type AdminStatsResponse struct {
	Mentors         int `json:"mentors"`
	Mentees         int `json:"mentees"`
	ActiveSessions  int `json:"activeSessions"`
	PendingRequests int `json:"pendingRequests"`
}

// DashboardResponse carries only the sections of the selected dashboard
type DashboardResponse struct {
	Role             string                       `json:"role" enums:"admin,mentor,mentee"`
	Users            []*ProfileResponse           `json:"users,omitempty"`
	Stats            *AdminStatsResponse          `json:"stats,omitempty"`
	Mentees          []*ProfileResponse           `json:"mentees,omitempty"`
	MyEvents         []*EventResponse             `json:"myEvents,omitempty"`
	PendingRequests  []*MentorshipRequestResponse `json:"pendingRequests,omitempty"`
	AvailableMentors []*ProfileResponse           `json:"availableMentors,omitempty"`
	Tasks            []*TaskResponse              `json:"tasks,omitempty"`
	Mentors          []*ProfileResponse           `json:"mentors,omitempty"`
	UpcomingEvents   []*EventResponse             `json:"upcomingEvents,omitempty"`
}

func NewDashboardResponse(d *models.Dashboard) *DashboardResponse {
	resp := &DashboardResponse{Role: d.Role.String()}
	if d.Users != nil {
		resp.Users = NewProfileResponses(d.Users)
	}
	if d.Stats != nil {
		resp.Stats = &AdminStatsResponse{
			Mentors:         d.Stats.Mentors,
			Mentees:         d.Stats.Mentees,
			ActiveSessions:  d.Stats.ActiveSessions,
			PendingRequests: d.Stats.PendingRequests,
		}
	}
	if d.Mentees != nil {
		resp.Mentees = NewProfileResponses(d.Mentees)
	}
	if d.MyEvents != nil {
		resp.MyEvents = NewEventResponses(d.MyEvents)
	}
	if d.PendingRequests != nil {
		resp.PendingRequests = NewMentorshipRequestResponses(d.PendingRequests)
	}
	if d.AvailableMentors != nil {
		resp.AvailableMentors = NewProfileResponses(d.AvailableMentors)
	}
	if d.Tasks != nil {
		resp.Tasks = NewTaskResponses(d.Tasks)
	}
	if d.Mentors != nil {
		resp.Mentors = NewProfileResponses(d.Mentors)
	}
	if d.UpcomingEvents != nil {
		resp.UpcomingEvents = NewEventResponses(d.UpcomingEvents)
	}
	return resp
}
