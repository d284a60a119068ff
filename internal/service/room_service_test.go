package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkhas/planning-poker/internal/domain"
	"github.com/dmarkhas/planning-poker/internal/repository"
	"github.com/dmarkhas/planning-poker/internal/service"
)

var testDeck = []string{"0", "1", "2", "3", "5", "8", "13", "21", "?"}

func newRoomService(t *testing.T) (*service.RoomService, *repository.InMemorySessionRepository) {
	t.Helper()
	repo := repository.NewInMemorySessionRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewRoomService(repo, testDeck, log), repo
}

func TestCreateRoomRequiresName(t *testing.T) {
	svc, _ := newRoomService(t)

	_, err := svc.CreateRoom(context.Background(), uuid.New(), "", "desc")
	assert.Error(t, err)
}

func TestJoinRoomMissingRoom(t *testing.T) {
	svc, _ := newRoomService(t)

	_, err := svc.JoinRoom(context.Background(), uuid.New(), uuid.New(), "Bob", "")
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestJoinRoomIdempotent(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()
	member := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)

	first, err := svc.JoinRoom(ctx, member, room.ID, "Bob", "https://example.com/b.png")
	require.NoError(t, err)
	require.Len(t, first.Participants, 1)

	second, err := svc.JoinRoom(ctx, member, room.ID, "Robert", "")
	require.NoError(t, err)
	require.Len(t, second.Participants, 1)
	assert.Equal(t, "Bob", second.Participants[0].DisplayName)
}

func TestCastVoteRequiresAdmission(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, uuid.New(), "Sprint 4", "")
	require.NoError(t, err)

	// Viewing or voting never admits anybody implicitly.
	_, err = svc.CastVote(ctx, uuid.New(), room.ID, "5")
	assert.ErrorIs(t, err, repository.ErrParticipantNotFound)
}

func TestCastVoteRejectsUnknownCard(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()
	member := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(ctx, member, room.ID, "Bob", "")
	require.NoError(t, err)

	_, err = svc.CastVote(ctx, member, room.ID, "4")
	assert.ErrorIs(t, err, service.ErrInvalidVote)
}

func TestCastVoteLockedOutAfterReveal(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()
	member := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(ctx, member, room.ID, "Bob", "")
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, member, room.ID, "5")
	require.NoError(t, err)

	_, err = svc.Reveal(ctx, owner, room.ID)
	require.NoError(t, err)

	_, err = svc.CastVote(ctx, member, room.ID, "8")
	assert.ErrorIs(t, err, repository.ErrVotesRevealed)

	vote, err := svc.OwnVote(ctx, member, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "5", vote)
}

func TestControlActionsAreOwnerOnly(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(ctx, intruder, room.ID, "Mallory", "")
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, intruder, room.ID, "3")
	require.NoError(t, err)

	_, err = svc.Reveal(ctx, intruder, room.ID)
	assert.ErrorIs(t, err, service.ErrNotRoomOwner)

	_, err = svc.Reset(ctx, intruder, room.ID)
	assert.ErrorIs(t, err, service.ErrNotRoomOwner)

	_, err = svc.AssignTask(ctx, intruder, room.ID, "PROJ-1")
	assert.ErrorIs(t, err, service.ErrNotRoomOwner)

	// A failed control action leaves the round untouched.
	got, err := svc.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.False(t, got.Revealed)
	assert.Empty(t, got.CurrentTask)
	vote, err := svc.OwnVote(ctx, intruder, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", vote)
}

func TestRevealIsIdempotent(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)

	_, err = svc.Reveal(ctx, owner, room.ID)
	require.NoError(t, err)

	got, err := svc.Reveal(ctx, owner, room.ID)
	require.NoError(t, err)
	assert.True(t, got.Revealed)
}

func TestResetClearsAllVotesAndKeepsTask(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)
	_, err = svc.AssignTask(ctx, owner, room.ID, "PROJ-17")
	require.NoError(t, err)

	members := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, member := range members {
		_, err = svc.JoinRoom(ctx, member, room.ID, "voter", "")
		require.NoError(t, err)
		_, err = svc.CastVote(ctx, member, room.ID, "13")
		require.NoError(t, err)
	}
	_, err = svc.Reveal(ctx, owner, room.ID)
	require.NoError(t, err)

	got, err := svc.Reset(ctx, owner, room.ID)
	require.NoError(t, err)

	assert.False(t, got.Revealed)
	assert.Equal(t, "PROJ-17", got.CurrentTask)
	for _, member := range members {
		vote, err := svc.OwnVote(ctx, member, room.ID)
		require.NoError(t, err)
		assert.Empty(t, vote)
	}
}

func TestAssignTaskStartsFreshRound(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()
	member := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(ctx, member, room.ID, "Bob", "")
	require.NoError(t, err)
	_, err = svc.CastVote(ctx, member, room.ID, "8")
	require.NoError(t, err)
	_, err = svc.Reveal(ctx, owner, room.ID)
	require.NoError(t, err)

	got, err := svc.AssignTask(ctx, owner, room.ID, "T2")
	require.NoError(t, err)

	assert.Equal(t, "T2", got.CurrentTask)
	assert.False(t, got.Revealed)
	vote, err := svc.OwnVote(ctx, member, room.ID)
	require.NoError(t, err)
	assert.Empty(t, vote)
}

func TestAssignTaskRequiresTask(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)

	_, err = svc.AssignTask(ctx, owner, room.ID, "")
	assert.Error(t, err)
}

func TestOwnVote(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	owner := uuid.New()

	room, err := svc.CreateRoom(ctx, owner, "Sprint 4", "")
	require.NoError(t, err)

	// Missing room is an error; a missing participant is just "no vote".
	_, err = svc.OwnVote(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)

	vote, err := svc.OwnVote(ctx, uuid.New(), room.ID)
	require.NoError(t, err)
	assert.Empty(t, vote)
}

func TestListRooms(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	mine, err := svc.CreateRoom(ctx, alice, "alice's room", "")
	require.NoError(t, err)
	theirs, err := svc.CreateRoom(ctx, bob, "bob's room", "")
	require.NoError(t, err)
	_, err = svc.JoinRoom(ctx, alice, theirs.ID, "Alice", "")
	require.NoError(t, err)

	owned, joined, err := svc.ListRooms(ctx, alice)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, mine.ID, owned[0].ID)
	require.Len(t, joined, 1)
	assert.Equal(t, theirs.ID, joined[0].ID)
}

// Full round walkthrough: create, join, vote, reveal, reset.
func TestEstimationRoundLifecycle(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()
	u1 := uuid.New()
	u2 := uuid.New()

	roomA, err := svc.CreateRoom(ctx, u1, "Sprint 4", "")
	require.NoError(t, err)

	joined, err := svc.JoinRoom(ctx, u2, roomA.ID, "U2", "")
	require.NoError(t, err)
	assert.Len(t, joined.Participants, 1)

	_, err = svc.CastVote(ctx, u2, roomA.ID, "5")
	require.NoError(t, err)
	vote, err := svc.OwnVote(ctx, u2, roomA.ID)
	require.NoError(t, err)
	assert.Equal(t, "5", vote)

	revealed, err := svc.Reveal(ctx, u1, roomA.ID)
	require.NoError(t, err)
	view := findView(t, revealed, u2)
	assert.Equal(t, "5", view.Vote)

	reset, err := svc.Reset(ctx, u1, roomA.ID)
	require.NoError(t, err)
	assert.False(t, reset.Revealed)
	vote, err = svc.OwnVote(ctx, u2, roomA.ID)
	require.NoError(t, err)
	assert.Empty(t, vote)
}

func findView(t *testing.T, room *domain.Room, userID uuid.UUID) domain.ParticipantView {
	t.Helper()
	room.Mutex.RLock()
	defer room.Mutex.RUnlock()
	p := room.FindParticipant(userID)
	require.NotNil(t, p)
	return p.View(room.Revealed)
}
