package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmarkhas/planning-poker/internal/domain"
)

// RoomInteractor is the round lifecycle as exposed to the transport layer.
// Every mutating call takes the acting user's id; owner-only actions verify
// it against the room owner before touching any state.
type RoomInteractor interface {
	CreateRoom(ctx context.Context, actorID uuid.UUID, name string, description string) (*domain.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	ListRooms(ctx context.Context, userID uuid.UUID) (owned []*domain.Room, joined []*domain.Room, err error)
	JoinRoom(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID, displayName string, avatarURL string) (*domain.Room, error)
	CastVote(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID, vote string) (*domain.Participant, error)
	OwnVote(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) (string, error)
	AssignTask(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID, task string) (*domain.Room, error)
	Reveal(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) (*domain.Room, error)
	Reset(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) (*domain.Room, error)
}

type UserInteractor interface {
	CreateGuest(ctx context.Context, name string, avatarURL string) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
