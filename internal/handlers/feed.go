package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/services"
)

type FeedHandler struct {
	feed *services.FeedService
}

func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	req, ok := bindPagination(c)
	if !ok {
		return
	}

	page, err := h.feed.GetFeedForUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, page)
}
