package handlers

import (
	"errors"
	"log"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"social-service/internal/apperr"
	"social-service/internal/middleware"
	"social-service/internal/pagination"
)

func requestIDFromHeader(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return requestID
}

func userIDFromContext(c *gin.Context) (string, bool) {
	return middleware.UserID(c)
}

// respondError maps domain errors to their status. Anything without an
// apperr code is logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	var appErr *apperr.Error
	if status == nethttp.StatusInternalServerError || !errors.As(err, &appErr) {
		log.Printf("request %s %s failed (request_id=%s): %v", c.Request.Method, c.FullPath(), requestIDFromHeader(c), err)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
}

func unauthorized(c *gin.Context) {
	c.JSON(nethttp.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

type pageQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=50"`
	Order    string `form:"order" binding:"omitempty,oneof=ASC DESC asc desc"`
}

// bindPagination reads page, pageSize and order from the query string,
// filling defaults for missing values.
func bindPagination(c *gin.Context) (pagination.Request, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return pagination.Request{}, false
	}
	order, err := pagination.ParseOrder(q.Order)
	if err != nil {
		respondError(c, err)
		return pagination.Request{}, false
	}
	req, err := pagination.NewRequest(order, q.Page, q.PageSize)
	if err != nil {
		respondError(c, err)
		return pagination.Request{}, false
	}
	return req, true
}
