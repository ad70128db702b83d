package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/services"
)

type WineHandler struct {
	ratings *services.RatingService
}

func NewWineHandler(ratings *services.RatingService) *WineHandler {
	return &WineHandler{ratings: ratings}
}

type createWineBody struct {
	Name string `json:"name" binding:"required"`
}

func (h *WineHandler) CreateWine(c *gin.Context) {
	var body createWineBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	wine, err := h.ratings.CreateWine(c.Request.Context(), body.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, wine)
}

type rateBody struct {
	Stars int    `json:"stars" binding:"required"`
	Text  string `json:"text" binding:"max=2000"`
}

func (h *WineHandler) Rate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	var body rateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rating, err := h.ratings.Rate(c.Request.Context(), userID, c.Param("id"), body.Stars, body.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, rating)
}

func (h *WineHandler) ListRatings(c *gin.Context) {
	req, ok := bindPagination(c)
	if !ok {
		return
	}

	page, err := h.ratings.ListForWine(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, page)
}
