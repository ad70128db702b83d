package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type signUpBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var body signUpBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.users.SignUp(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, gin.H{"user": user, "token": token})
}

// GetMe returns the caller with the ids of their friends.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.users.WithFriends(ctx, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, user)
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, user)
}
