package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmarkhas/planning-poker/internal/domain"
)

// SessionRepository owns the canonical room and participant collections.
// Every operation is atomic per call: a caller never observes a room with
// some participant votes cleared and others not, or two participant records
// for the same (room, user) pair. Participant return values are detached
// snapshots; returned rooms are live and guarded by their own mutex.
type SessionRepository interface {
	CreateRoom(ctx context.Context, room *domain.Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	ListRoomsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Room, error)
	ListRoomsJoined(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error)
	AdmitParticipant(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, displayName string, avatarURL string) (*domain.Participant, error)
	GetParticipant(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (*domain.Participant, error)
	RecordVote(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, vote string) (*domain.Participant, error)
	SetRevealed(ctx context.Context, roomID uuid.UUID, revealed bool) (*domain.Room, error)
	// ClearVotes wipes every participant's vote and hides the round again.
	// A non-nil task also replaces the room's current task.
	ClearVotes(ctx context.Context, roomID uuid.UUID, task *string) (*domain.Room, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
