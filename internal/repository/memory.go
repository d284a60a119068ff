package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dmarkhas/planning-poker/internal/domain"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrVotesRevealed       = errors.New("votes are already revealed")
	ErrUserNotFound        = errors.New("user not found")
)

// InMemorySessionRepository keeps all rooms and participants in process
// memory. The outer mutex guards room membership in the map; each room's own
// mutex serializes vote, reveal and participant mutations for that room, so
// operations on different rooms never contend with each other.
type InMemorySessionRepository struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*domain.Room
	order []uuid.UUID
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		rooms: make(map[uuid.UUID]*domain.Room),
	}
}

func (r *InMemorySessionRepository) CreateRoom(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[room.ID] = room
	r.order = append(r.order, room.ID)
	return nil
}

func (r *InMemorySessionRepository) GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

// ListRoomsByOwner returns the rooms owned by ownerID in creation order.
func (r *InMemorySessionRepository) ListRoomsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Room, 0)
	for _, id := range r.order {
		if room := r.rooms[id]; room.OwnerID == ownerID {
			result = append(result, room)
		}
	}
	return result, nil
}

// ListRoomsJoined returns the rooms userID participates in but does not own,
// in creation order.
func (r *InMemorySessionRepository) ListRoomsJoined(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Room, 0)
	for _, id := range r.order {
		room := r.rooms[id]
		if room.OwnerID != userID && room.HasParticipant(userID) {
			result = append(result, room)
		}
	}
	return result, nil
}

// AdmitParticipant adds userID to the room, preserving join order. Admission
// is idempotent: a second call for the same (room, user) pair returns the
// existing record untouched, including the display data captured on first
// join. The check and the insert run under the room mutex, so two concurrent
// joins cannot both create a record.
func (r *InMemorySessionRepository) AdmitParticipant(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, displayName string, avatarURL string) (*domain.Participant, error) {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	if existing := room.FindParticipant(userID); existing != nil {
		return snapshot(existing), nil
	}

	participant := domain.NewParticipant(roomID, userID, displayName, avatarURL)
	room.Participants = append(room.Participants, participant)
	return snapshot(participant), nil
}

func (r *InMemorySessionRepository) GetParticipant(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (*domain.Participant, error) {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.Mutex.RLock()
	defer room.Mutex.RUnlock()

	participant := room.FindParticipant(userID)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	return snapshot(participant), nil
}

// RecordVote overwrites the participant's vote for the current round.
// Recording is rejected once the round is revealed; the stored vote stays as
// it was.
func (r *InMemorySessionRepository) RecordVote(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, vote string) (*domain.Participant, error) {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	if room.Revealed {
		return nil, ErrVotesRevealed
	}

	participant := room.FindParticipant(userID)
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	participant.Vote = vote
	return snapshot(participant), nil
}

func (r *InMemorySessionRepository) SetRevealed(ctx context.Context, roomID uuid.UUID, revealed bool) (*domain.Room, error) {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.Mutex.Lock()
	room.Revealed = revealed
	room.Mutex.Unlock()

	return room, nil
}

// ClearVotes starts a fresh hidden round: every participant's vote is wiped
// in one critical section and the room is un-revealed. A non-nil task also
// replaces the current task.
func (r *InMemorySessionRepository) ClearVotes(ctx context.Context, roomID uuid.UUID, task *string) (*domain.Room, error) {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.Mutex.Lock()
	if task != nil {
		room.CurrentTask = *task
	}
	room.Revealed = false
	for _, p := range room.Participants {
		p.Vote = ""
	}
	room.Mutex.Unlock()

	return room, nil
}

func snapshot(p *domain.Participant) *domain.Participant {
	copied := *p
	return &copied
}

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	return user, nil
}
