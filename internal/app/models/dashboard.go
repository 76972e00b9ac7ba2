package models

import "github.com/mentorhub/mentorhub/internal/domain"

// AdminStats are the counters on the admin dashboard.
type AdminStats struct {
	Mentors         int
	Mentees         int
	ActiveSessions  int
	PendingRequests int
}

// Dashboard is the role-selected landing view. Only the sections for Role are populated.
type Dashboard struct {
	Role domain.Role

	// admin
	Users []*Profile
	Stats *AdminStats

	// mentor
	Mentees         []*Profile
	MyEvents        []*Event
	PendingRequests []*MentorshipRequest

	// mentee
	AvailableMentors []*Profile
	Tasks            []*Task
	Mentors          []*Profile
	UpcomingEvents   []*Event
}

// VisibleConnections is the role-conditioned connection list.
type VisibleConnections struct {
	Title    string
	Profiles []*Profile
}

// AvailableUser is a connect candidate with its button state.
type AvailableUser struct {
	Profile *Profile
	// ConnectDisabled is set while a pending connection with this user exists.
	ConnectDisabled bool
}
