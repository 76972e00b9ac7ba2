package models

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/domain"
)

// Connection is a peer link between two profiles. UserID1 is the requester
// and the only party who cannot answer it.
type Connection struct {
	ID        string                    `json:"id" db:"id"`
	UserID1   string                    `json:"userId1" db:"user_id1"`
	UserID2   string                    `json:"userId2" db:"user_id2"`
	Status    domain.RelationshipStatus `json:"status" db:"status"`
	CreatedAt time.Time                 `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time                 `json:"updatedAt" db:"updated_at"`
	User1     *Profile                  `json:"user1,omitempty"`
	User2     *Profile                  `json:"user2,omitempty"`
}

// Involves reports whether userID is either party.
func (c *Connection) Involves(userID string) bool {
	return c.UserID1 == userID || c.UserID2 == userID
}

// CounterpartID returns the other party's ID, or "" when userID is not a party.
func (c *Connection) CounterpartID(userID string) string {
	switch userID {
	case c.UserID1:
		return c.UserID2
	case c.UserID2:
		return c.UserID1
	default:
		return ""
	}
}

// Counterpart returns the expanded profile of the other party, if loaded.
func (c *Connection) Counterpart(userID string) *Profile {
	switch userID {
	case c.UserID1:
		return c.User2
	case c.UserID2:
		return c.User1
	default:
		return nil
	}
}

// IsRequestFor reports whether the connection is a pending request addressed to userID.
func (c *Connection) IsRequestFor(userID string) bool {
	return c.Status == domain.StatusPending && c.UserID2 == userID
}
