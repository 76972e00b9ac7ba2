package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"go", "career"}, SplitCategories(" go, ,career "))
	assert.Equal(t, []string{}, SplitCategories(""))
	assert.Equal(t, "go,career", JoinCategories([]string{" go", "", "career"}))
}

func TestParsePostStatus(t *testing.T) {
	status, err := ParsePostStatus("")
	require.NoError(t, err)
	assert.Equal(t, PostDraft, status)

	_, err = ParsePostStatus("archived")
	assert.Error(t, err)
}

func TestParseTaskStatus(t *testing.T) {
	status, err := ParseTaskStatus("IN_PROGRESS")
	require.NoError(t, err)
	assert.Equal(t, TaskInProgress, status)

	_, err = ParseTaskStatus("done")
	assert.Error(t, err)
}

func TestInteractionToggle(t *testing.T) {
	assert.True(t, InteractionLike.IsToggle())
	assert.True(t, InteractionRecommend.IsToggle())
	assert.False(t, InteractionComment.IsToggle())
	assert.False(t, InteractionView.IsToggle())
}
