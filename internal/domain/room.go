package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Room represents one estimation session: a named, owner-controlled space in
// which participants vote on the current task. The embedded mutex guards the
// round state and the participant list; every mutation of either happens
// inside the session repository while holding it.
type Room struct {
	Mutex        sync.RWMutex
	ID           uuid.UUID
	Name         string
	Description  string
	OwnerID      uuid.UUID
	Active       bool
	CurrentTask  string
	Revealed     bool
	CreatedAt    time.Time
	Participants []*Participant
}

// NewRoom constructs a room with a generated identifier. A fresh room accepts
// participation immediately and starts a hidden round with no task assigned.
func NewRoom(name string, description string, owner uuid.UUID) *Room {
	return &Room{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     owner,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
}

// FindParticipant returns the participant record for userID, or nil.
// Callers must hold the room mutex.
func (r *Room) FindParticipant(userID uuid.UUID) *Participant {
	for _, p := range r.Participants {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// HasParticipant reports whether userID has been admitted to the room.
func (r *Room) HasParticipant(userID uuid.UUID) bool {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	return r.FindParticipant(userID) != nil
}
