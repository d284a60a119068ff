package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmarkhas/planning-poker/internal/domain"
)

func TestParticipantViewHidesVoteUntilReveal(t *testing.T) {
	p := domain.NewParticipant(uuid.New(), uuid.New(), "Alice", "")
	p.Vote = "13"

	hidden := p.View(false)
	assert.True(t, hidden.HasVoted)
	assert.Empty(t, hidden.Vote)

	revealed := p.View(true)
	assert.True(t, revealed.HasVoted)
	assert.Equal(t, "13", revealed.Vote)

	// Projection never mutates the stored record.
	assert.Equal(t, "13", p.Vote)
}

func TestParticipantViewWithoutVote(t *testing.T) {
	p := domain.NewParticipant(uuid.New(), uuid.New(), "Bob", "")

	hidden := p.View(false)
	assert.False(t, hidden.HasVoted)
	assert.Empty(t, hidden.Vote)

	revealed := p.View(true)
	assert.False(t, revealed.HasVoted)
	assert.Empty(t, revealed.Vote)
}
