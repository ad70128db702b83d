package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/db/dbtest"
	"social-service/internal/events"
	"social-service/internal/mocks"
	"social-service/internal/models"
	"social-service/internal/pagination"
	"social-service/internal/repositories"
	"social-service/internal/services"
)

const testSecret = "handler-secret"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn := dbtest.Open(t)

	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	friendRepo := repositories.NewFriendRepository(conn)
	users := services.NewUserService(repositories.NewUserRepository(conn), friendRepo, testSecret)
	friends := services.NewFriendService(friendRepo, users, events.NewEmitter(pub, "social-service", "test"))
	ratings := services.NewRatingService(repositories.NewWineRepository(conn), repositories.NewRatingRepository(conn), users)

	r := gin.New()
	RegisterRoutes(r, testSecret, Handlers{
		Users:   NewUserHandler(users),
		Friends: NewFriendHandler(friends, users),
		Feed:    NewFeedHandler(services.NewFeedService(friendRepo, ratings.Ratings())),
		Wines:   NewWineHandler(ratings),
	})
	return r
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
	user   models.User
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, router *gin.Engine, username string) *client {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/users", "", gin.H{"username": username, "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return &client{t: t, router: router, token: resp.Token, user: resp.User}
}

func (c *client) call(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	return do(c.t, c.router, method, path, c.token, body)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func fetchMetrics(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := do(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func metricValue(metricsBody, name, status string) float64 {
	target := name + `{status="` + status + `"}`
	for _, line := range strings.Split(metricsBody, "\n") {
		if strings.HasPrefix(line, target+" ") {
			fields := strings.Fields(line)
			if value, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
				return value
			}
		}
	}
	return 0
}

type feedResponse = pagination.Page[models.Rating]
