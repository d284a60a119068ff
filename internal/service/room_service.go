package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmarkhas/planning-poker/internal/domain"
	"github.com/dmarkhas/planning-poker/internal/repository"
)

var (
	ErrNotRoomOwner = errors.New("only the room owner may do this")
	ErrInvalidVote  = errors.New("vote is not in the card deck")
)

// RoomService runs the estimation round lifecycle on top of the session
// repository: assign a task, collect hidden votes, reveal, reset. It owns
// authorization (owner-only control actions) and vote validation; all state
// lives in the repository.
type RoomService struct {
	sessions repository.SessionRepository
	log      *slog.Logger
	deck     map[string]struct{}
}

// NewRoomService builds a room service accepting votes from the given card
// deck. An empty deck disables vote validation.
func NewRoomService(sessions repository.SessionRepository, deck []string, log *slog.Logger) *RoomService {
	if log == nil {
		log = slog.Default()
	}
	cards := make(map[string]struct{}, len(deck))
	for _, card := range deck {
		cards[card] = struct{}{}
	}
	return &RoomService{
		sessions: sessions,
		log:      log,
		deck:     cards,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, actorID uuid.UUID, name string, description string) (*domain.Room, error) {
	if name == "" {
		return nil, errors.New("room name is required")
	}
	if actorID == uuid.Nil {
		return nil, errors.New("owner is required")
	}

	room := domain.NewRoom(name, description, actorID)
	if err := s.sessions.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info("room created",
		"room_id", room.ID.String(),
		"owner_id", actorID.String(),
		"name", name,
	)
	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	return s.sessions.GetRoom(ctx, id)
}

// ListRooms returns the rooms the user owns and the rooms the user joined
// without owning, both in creation order.
func (s *RoomService) ListRooms(ctx context.Context, userID uuid.UUID) ([]*domain.Room, []*domain.Room, error) {
	owned, err := s.sessions.ListRoomsByOwner(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	joined, err := s.sessions.ListRoomsJoined(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return owned, joined, nil
}

// JoinRoom admits the actor as a participant and returns the refreshed room.
// Joining a room twice is a no-op.
func (s *RoomService) JoinRoom(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID, displayName string, avatarURL string) (*domain.Room, error) {
	const op = "service.room.join"

	participant, err := s.sessions.AdmitParticipant(ctx, roomID, actorID, displayName, avatarURL)
	if err != nil {
		return nil, err
	}

	s.log.Info("participant admitted",
		"op", op,
		"room_id", roomID.String(),
		"user_id", actorID.String(),
		"participant_id", participant.ID.String(),
	)
	return s.sessions.GetRoom(ctx, roomID)
}

// CastVote records the actor's vote for the current round. The actor must
// already be a participant; viewing a room never admits anyone. Votes are
// rejected once the round is revealed.
func (s *RoomService) CastVote(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID, vote string) (*domain.Participant, error) {
	const op = "service.room.vote"

	if vote == "" {
		return nil, errors.New("vote is required")
	}
	if len(s.deck) > 0 {
		if _, ok := s.deck[vote]; !ok {
			return nil, ErrInvalidVote
		}
	}

	participant, err := s.sessions.RecordVote(ctx, roomID, actorID, vote)
	if err != nil {
		return nil, err
	}

	s.log.Info("vote recorded",
		"op", op,
		"room_id", roomID.String(),
		"user_id", actorID.String(),
	)
	return participant, nil
}

// OwnVote returns the literal vote the actor has cast this round, or the
// empty string when nothing was cast or the actor never joined. The room
// itself must exist.
func (s *RoomService) OwnVote(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) (string, error) {
	participant, err := s.sessions.GetParticipant(ctx, roomID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return "", nil
		}
		return "", err
	}
	return participant.Vote, nil
}

// AssignTask sets a new task for the room and starts a fresh hidden round:
// all votes are cleared in the same step. Owner only.
func (s *RoomService) AssignTask(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID, task string) (*domain.Room, error) {
	const op = "service.room.task"

	if task == "" {
		return nil, errors.New("task is required")
	}
	if err := s.authorizeOwner(ctx, actorID, roomID); err != nil {
		return nil, err
	}

	room, err := s.sessions.ClearVotes(ctx, roomID, &task)
	if err != nil {
		return nil, err
	}

	s.log.Info("task assigned",
		"op", op,
		"room_id", roomID.String(),
		"task", task,
	)
	return room, nil
}

// Reveal exposes the current round's votes. Owner only; revealing an already
// revealed round is a no-op success.
func (s *RoomService) Reveal(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) (*domain.Room, error) {
	const op = "service.room.reveal"

	if err := s.authorizeOwner(ctx, actorID, roomID); err != nil {
		return nil, err
	}

	room, err := s.sessions.SetRevealed(ctx, roomID, true)
	if err != nil {
		return nil, err
	}

	s.log.Info("votes revealed", "op", op, "room_id", roomID.String())
	return room, nil
}

// Reset clears every vote and hides the round again, keeping the current
// task. Owner only.
func (s *RoomService) Reset(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) (*domain.Room, error) {
	const op = "service.room.reset"

	if err := s.authorizeOwner(ctx, actorID, roomID); err != nil {
		return nil, err
	}

	room, err := s.sessions.ClearVotes(ctx, roomID, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("votes reset", "op", op, "room_id", roomID.String())
	return room, nil
}

func (s *RoomService) authorizeOwner(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) error {
	room, err := s.sessions.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if room.OwnerID != actorID {
		return ErrNotRoomOwner
	}
	return nil
}
