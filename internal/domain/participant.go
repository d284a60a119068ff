package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant records one user's membership and current vote inside a room.
// Display data is captured once at admission and never re-synced with the
// user profile. The empty vote string means no vote has been cast this round.
type Participant struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	UserID      uuid.UUID
	DisplayName string
	AvatarURL   string
	Vote        string
	JoinedAt    time.Time
}

// NewParticipant constructs a participant with a generated identifier and no
// vote cast.
func NewParticipant(roomID uuid.UUID, userID uuid.UUID, displayName string, avatarURL string) *Participant {
	return &Participant{
		ID:          uuid.New(),
		RoomID:      roomID,
		UserID:      userID,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		JoinedAt:    time.Now().UTC(),
	}
}

// HasVoted reports whether a vote has been cast in the current round.
func (p *Participant) HasVoted() bool {
	return p.Vote != ""
}

// ParticipantView is the externally visible projection of a participant.
// While the round is hidden it reveals only whether a vote exists; the
// literal value appears once the room owner reveals the round. The stored
// vote itself is never touched by projection.
type ParticipantView struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	DisplayName string
	AvatarURL   string
	HasVoted    bool
	Vote        string
}

// View projects the participant for external consumption under the given
// reveal state.
func (p *Participant) View(revealed bool) ParticipantView {
	view := ParticipantView{
		ID:          p.ID,
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		HasVoted:    p.HasVoted(),
	}
	if revealed {
		view.Vote = p.Vote
	}
	return view
}
