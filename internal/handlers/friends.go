package handlers

import (
	"context"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/metrics"
	"social-service/internal/models"
	"social-service/internal/services"
)

type FriendHandler struct {
	friends *services.FriendService
	users   *services.UserService
}

func NewFriendHandler(friends *services.FriendService, users *services.UserService) *FriendHandler {
	return &FriendHandler{friends: friends, users: users}
}

type sendRequestBody struct {
	Username string `json:"username" binding:"required"`
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		metrics.IncFriendRequest(metrics.StatusFailed)
		unauthorized(c)
		return
	}

	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.IncFriendRequest(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := services.ValidateUsername(body.Username); err != nil {
		metrics.IncFriendRequest(metrics.StatusFailed)
		respondError(c, err)
		return
	}

	req, err := h.friends.Send(c.Request.Context(), userID, body.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, req)
}

func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	h.decide(c, h.friends.Accept)
}

func (h *FriendHandler) DeclineRequest(c *gin.Context) {
	h.decide(c, h.friends.Decline)
}

func (h *FriendHandler) RevokeRequest(c *gin.Context) {
	h.decide(c, h.friends.Revoke)
}

type decision func(ctx context.Context, requestID, actingUserID string) (*models.FriendRequest, error)

// decide runs accept, decline or revoke on the :id request and returns the
// request as it was before removal.
func (h *FriendHandler) decide(c *gin.Context, apply decision) {
	userID, ok := userIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	req, err := apply(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, req)
}

func (h *FriendHandler) ListIncoming(c *gin.Context) {
	h.listRequests(c, h.friends.ListReceived)
}

func (h *FriendHandler) ListOutgoing(c *gin.Context) {
	h.listRequests(c, h.friends.ListSent)
}

func (h *FriendHandler) listRequests(c *gin.Context, list func(context.Context, string) ([]models.FriendRequest, error)) {
	userID, ok := userIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	requests, err := list(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"requests": requests})
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	friends, err := h.users.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"friends": friends})
}

func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	if err := h.friends.RemoveFriend(c.Request.Context(), userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(nethttp.StatusNoContent)
}
