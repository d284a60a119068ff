package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmarkhas/planning-poker/internal/api/http/converter"
	"github.com/dmarkhas/planning-poker/internal/domain"
	"github.com/dmarkhas/planning-poker/internal/repository"
	"github.com/dmarkhas/planning-poker/internal/service"
)

type RoomController struct {
	rooms service.RoomInteractor
}

func NewRoomController(rooms service.RoomInteractor) *RoomController {
	return &RoomController{rooms: rooms}
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user := currentUser(ctx)
	room, err := c.rooms.CreateRoom(ctx.Request.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"room": converter.RoomToApi(room)})
}

func (c *RoomController) GetRoom(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := c.rooms.GetRoom(ctx.Request.Context(), roomID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

// ListRooms backs the dashboard: rooms the caller owns plus rooms the caller
// joined as a participant.
func (c *RoomController) ListRooms(ctx *gin.Context) {
	user := currentUser(ctx)

	owned, joined, err := c.rooms.ListRooms(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"owned":  roomsToApi(owned),
		"joined": roomsToApi(joined),
	})
}

func (c *RoomController) JoinRoom(ctx *gin.Context) {
	type request struct {
		RoomID string `json:"room_id" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	user := currentUser(ctx)
	room, err := c.rooms.JoinRoom(ctx.Request.Context(), user.ID, roomID, user.Name, user.AvatarURL)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

func (c *RoomController) CastVote(ctx *gin.Context) {
	type request struct {
		Vote string `json:"vote" binding:"required"`
	}

	roomID, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "vote is required"})
		return
	}

	user := currentUser(ctx)
	participant, err := c.rooms.CastVote(ctx.Request.Context(), user.ID, roomID, req.Vote)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"participant": gin.H{
		"id":        participant.ID,
		"user_id":   participant.UserID,
		"has_voted": participant.HasVoted(),
	}})
}

// OwnVote returns the caller's own vote for the current round. Unlike the
// room snapshot it is never masked: a voter may always see their own card.
func (c *RoomController) OwnVote(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	user := currentUser(ctx)
	vote, err := c.rooms.OwnVote(ctx.Request.Context(), user.ID, roomID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	var value *string
	if vote != "" {
		value = &vote
	}
	ctx.JSON(http.StatusOK, gin.H{"vote": value})
}

func (c *RoomController) AssignTask(ctx *gin.Context) {
	type request struct {
		Task string `json:"task" binding:"required"`
	}

	roomID, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task is required"})
		return
	}

	user := currentUser(ctx)
	room, err := c.rooms.AssignTask(ctx.Request.Context(), user.ID, roomID, req.Task)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

func (c *RoomController) Reveal(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	user := currentUser(ctx)
	room, err := c.rooms.Reveal(ctx.Request.Context(), user.ID, roomID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

func (c *RoomController) Reset(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	user := currentUser(ctx)
	room, err := c.rooms.Reset(ctx.Request.Context(), user.ID, roomID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

func roomsToApi(rooms []*domain.Room) []*converter.RoomResponse {
	result := make([]*converter.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, converter.RoomToApi(room))
	}
	return result
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrParticipantNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotRoomOwner):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrVotesRevealed):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidVote):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
