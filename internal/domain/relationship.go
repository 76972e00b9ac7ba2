// Package domain holds the rules every relationship in the system obeys:
// the status lifecycle shared by connections and mentorship requests, and
// the roles that condition who may create and answer them.
package domain

import (
	"fmt"
	"strings"

	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// RelationshipStatus is the lifecycle state of a connection or mentorship request.
type RelationshipStatus string

const (
	StatusPending  RelationshipStatus = "pending"
	StatusAccepted RelationshipStatus = "accepted"
	StatusDeclined RelationshipStatus = "declined"
)

var (
	ErrInvalidStatus     = apperrors.NewBadRequestError("status must be one of pending, accepted, declined")
	ErrInvalidTransition = apperrors.NewConflictError("relationship has already been answered")
)

// ParseRelationshipStatus accepts the canonical lowercase names, ignoring case and surrounding space.
func ParseRelationshipStatus(s string) (RelationshipStatus, error) {
	switch status := RelationshipStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case StatusPending, StatusAccepted, StatusDeclined:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s RelationshipStatus) String() string {
	return string(s)
}

// IsAnswer reports whether s is a status a responder may choose.
func (s RelationshipStatus) IsAnswer() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// IsTerminal reports whether no further transition is possible from s.
func (s RelationshipStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Only a pending relationship can be answered, and only once.
func (s RelationshipStatus) CanTransitionTo(next RelationshipStatus) bool {
	return s == StatusPending && next.IsAnswer()
}

// Transition validates a proposed status change and returns the new status.
func Transition(from, to RelationshipStatus) (RelationshipStatus, error) {
	if !to.IsAnswer() {
		return from, ErrInvalidStatus
	}
	if !from.CanTransitionTo(to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

// RequestPolicy governs what happens when a relationship is requested
// between parties that already have one on record.
type RequestPolicy struct {
	// AllowRerequestAfterDecline reopens a declined row as pending instead
	// of rejecting the new request.
	AllowRerequestAfterDecline bool
}

// CanReopen reports whether an existing row with the given status may be
// reset to pending by a fresh request.
func (p RequestPolicy) CanReopen(existing RelationshipStatus) bool {
	return p.AllowRerequestAfterDecline && existing == StatusDeclined
}
