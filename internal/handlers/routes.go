package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"social-service/internal/middleware"
)

type Handlers struct {
	Users   *UserHandler
	Friends *FriendHandler
	Feed    *FeedHandler
	Wines   *WineHandler
}

// RegisterRoutes mounts the public API on r. Everything except sign-up and
// /metrics requires a bearer token.
func RegisterRoutes(r *gin.Engine, jwtSecret string, h Handlers) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/users", h.Users.SignUp)

	auth := r.Group("", middleware.JWTAuth(jwtSecret))
	auth.GET("/users/me", h.Users.GetMe)
	auth.GET("/users/:username", h.Users.GetByUsername)

	auth.POST("/friends/requests", h.Friends.SendRequest)
	auth.GET("/friends/requests/incoming", h.Friends.ListIncoming)
	auth.GET("/friends/requests/outgoing", h.Friends.ListOutgoing)
	auth.POST("/friends/requests/:id/accept", h.Friends.AcceptRequest)
	auth.POST("/friends/requests/:id/decline", h.Friends.DeclineRequest)
	auth.DELETE("/friends/requests/:id", h.Friends.RevokeRequest)
	auth.GET("/friends", h.Friends.ListFriends)
	auth.DELETE("/friends/:username", h.Friends.RemoveFriend)

	auth.GET("/feed", h.Feed.GetFeed)

	auth.POST("/wines", h.Wines.CreateWine)
	auth.POST("/wines/:id/ratings", h.Wines.Rate)
	auth.GET("/wines/:id/ratings", h.Wines.ListRatings)
}
