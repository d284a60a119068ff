package converter

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarkhas/planning-poker/internal/domain"
)

type RoomResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	OwnerID      uuid.UUID             `json:"owner_id"`
	Active       bool                  `json:"active"`
	CurrentTask  *string               `json:"current_task"`
	Revealed     bool                  `json:"revealed"`
	CreatedAt    time.Time             `json:"created_at"`
	Participants []ParticipantResponse `json:"participants"`
}

type ParticipantResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	HasVoted    bool      `json:"has_voted"`
	Vote        *string   `json:"vote"`
}

// RoomToApi converts a room into its external shape. Vote values pass
// through the domain projection, so a hidden round only ever exposes the
// has-voted flag.
func RoomToApi(r *domain.Room) *RoomResponse {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()

	participants := make([]ParticipantResponse, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, participantToApi(p.View(r.Revealed)))
	}

	resp := &RoomResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		OwnerID:      r.OwnerID,
		Active:       r.Active,
		Revealed:     r.Revealed,
		CreatedAt:    r.CreatedAt,
		Participants: participants,
	}
	if r.CurrentTask != "" {
		task := r.CurrentTask
		resp.CurrentTask = &task
	}
	return resp
}

func participantToApi(view domain.ParticipantView) ParticipantResponse {
	resp := ParticipantResponse{
		ID:          view.ID,
		UserID:      view.UserID,
		DisplayName: view.DisplayName,
		AvatarURL:   view.AvatarURL,
		HasVoted:    view.HasVoted,
	}
	if view.Vote != "" {
		vote := view.Vote
		resp.Vote = &vote
	}
	return resp
}
