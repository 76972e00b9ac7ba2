package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mentorhub/mentorhub/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestConnectionCounterpart(t *testing.T) {
	a := &Profile{ID: "a"}
	b := &Profile{ID: "b"}
	c := &Connection{UserID1: "a", UserID2: "b", Status: domain.StatusPending, User1: a, User2: b}

	assert.Equal(t, "b", c.CounterpartID("a"))
	assert.Equal(t, "a", c.CounterpartID("b"))
	assert.Equal(t, "", c.CounterpartID("z"))
	assert.Same(t, b, c.Counterpart("a"))
	assert.Nil(t, c.Counterpart("z"))
	assert.True(t, c.IsRequestFor("b"))
	assert.False(t, c.IsRequestFor("a"))
}

func TestProfileIsComplete(t *testing.T) {
	mentor := &Profile{Role: domain.RoleMentor, Expertise: strPtr("Go")}
	assert.False(t, mentor.IsComplete())
	mentor.YearsOfExperience = intPtr(0)
	assert.True(t, mentor.IsComplete())

	mentee := &Profile{Role: domain.RoleMentee, Goals: strPtr("  ")}
	assert.False(t, mentee.IsComplete())
	mentee.Interests = strPtr("distributed systems")
	assert.True(t, mentee.IsComplete())

	assert.False(t, (&Profile{}).IsComplete())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "ada@example.com", (&Profile{Email: "ada@example.com"}).DisplayName())
	assert.Equal(t, "Ada", (&Profile{FullName: "Ada", Email: "ada@example.com"}).DisplayName())
}

func TestBlogPostVisibility(t *testing.T) {
	draft := &BlogPost{AuthorID: "a", Status: domain.PostDraft, Categories: "go,career"}
	assert.True(t, draft.VisibleTo("a"))
	assert.False(t, draft.VisibleTo("b"))
	assert.Equal(t, []string{"go", "career"}, draft.CategoryList())
}
