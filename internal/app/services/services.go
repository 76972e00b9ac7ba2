package services

import (
	"github.com/google/uuid"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
)

// Services defined in this package:
// - AuthService: registration, login and refresh token rotation
// - ProfileService: profile reads, self completion and admin role/activation changes
// - ConnectionService: peer connection requests and role-conditioned connection lists
// - MentorshipService: mentee to mentor requests, acceptance and rosters
// - DashboardService: role-selected landing view
// - TaskService, EventService, MessageService, BlogService: the content around relationships

// WelcomeMessage is sent from mentor to mentee when a mentorship request is accepted.
const WelcomeMessage = "Hi! I've accepted your mentorship request. Looking forward to working with you."

// EventPublisher pushes change events to subscribed clients. *websocket.Hub implements it.
type EventPublisher interface {
	Publish(userID string, event *websocket.Event)
	Broadcast(event *websocket.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, *websocket.Event) {}
func (nopPublisher) Broadcast(*websocket.Event)       {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// publishTo sends the same event to each distinct user.
func publishTo(p EventPublisher, event *websocket.Event, userIDs ...string) {
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		p.Publish(id, event)
	}
}

func newID() string {
	return uuid.New().String()
}
