package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-service/internal/apperr"
	"social-service/internal/collection"
	"social-service/internal/db/dbtest"
	"social-service/internal/models"
	"social-service/internal/pagination"
)

func createUser(t *testing.T, conn *sqlx.DB, username string) *models.User {
	t.Helper()
	now := time.Now().UTC()
	u := &models.User{ID: uuid.NewString(), Username: username, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewUserRepository(conn).Create(context.Background(), u))
	return u
}

func TestCreateRequestConflicts(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewFriendRepository(conn)
	ctx := context.Background()
	alice, bob := createUser(t, conn, "alice"), createUser(t, conn, "bob")

	req, err := repo.CreateRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, req.SenderID)
	assert.Equal(t, bob.ID, req.ReceiverID)

	_, err = repo.CreateRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict, "same direction twice")

	_, err = repo.CreateRequest(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict, "reverse direction")

	pending, err := repo.HasPendingRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestCreateRequestRejectsExistingFriends(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewFriendRepository(conn)
	ctx := context.Background()
	alice, bob := createUser(t, conn, "alice"), createUser(t, conn, "bob")

	req, err := repo.CreateRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.AcceptRequest(ctx, req.ID, bob.ID)
	require.NoError(t, err)

	_, err = repo.CreateRequest(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAcceptRequestWritesSymmetricEdge(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewFriendRepository(conn)
	ctx := context.Background()
	alice, bob := createUser(t, conn, "alice"), createUser(t, conn, "bob")

	req, err := repo.CreateRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	snapshot, err := repo.AcceptRequest(ctx, req.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, snapshot.ID)
	assert.Equal(t, alice.ID, snapshot.SenderID)

	aliceFriends, err := repo.ListFriendIDs(ctx, alice.ID)
	require.NoError(t, err)
	bobFriends, err := repo.ListFriendIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, aliceFriends)
	assert.Equal(t, []string{alice.ID}, bobFriends)

	count, err := repo.Count(ctx, collection.Where(collection.Eq("id", req.ID)))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAcceptRequestGuards(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewFriendRepository(conn)
	ctx := context.Background()
	alice, bob, carol := createUser(t, conn, "alice"), createUser(t, conn, "bob"), createUser(t, conn, "carol")

	req, err := repo.CreateRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = repo.AcceptRequest(ctx, req.ID, carol.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = repo.AcceptRequest(ctx, req.ID, alice.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "sender cannot accept")

	_, err = repo.AcceptRequest(ctx, uuid.NewString(), bob.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	friends, err := repo.AreFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, friends)
}

func TestConcurrentAcceptSucceedsOnce(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewFriendRepository(conn)
	ctx := context.Background()
	alice, bob := createUser(t, conn, "alice"), createUser(t, conn, "bob")

	req, err := repo.CreateRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	const racers = 4
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.AcceptRequest(ctx, req.ID, bob.ID)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	}
	assert.Equal(t, 1, successes)

	var edges int
	require.NoError(t, conn.GetContext(ctx, &edges, `SELECT COUNT(*) FROM friendships`))
	assert.Equal(t, 2, edges)
}

func TestDeclineAndRevoke(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewFriendRepository(conn)
	ctx := context.Background()
	alice, bob := createUser(t, conn, "alice"), createUser(t, conn, "bob")

	req, err := repo.CreateRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = repo.DeleteRequest(ctx, req.ID, alice.ID, Receiver)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "sender cannot decline")

	snapshot, err := repo.DeleteRequest(ctx, req.ID, bob.ID, Receiver)
	require.NoError(t, err)
	assert.Equal(t, req.ID, snapshot.ID)

	_, err = repo.DeleteRequest(ctx, req.ID, bob.ID, Receiver)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	req, err = repo.CreateRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err, "pair is back in NONE after decline")

	_, err = repo.DeleteRequest(ctx, req.ID, bob.ID, Sender)
	assert.ErrorIs(t, err, apperr.ErrForbidden, "receiver cannot revoke")

	_, err = repo.DeleteRequest(ctx, req.ID, alice.ID, Sender)
	require.NoError(t, err)

	friends, err := repo.AreFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, friends)
}

func TestDeleteFriendshipIsSymmetric(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewFriendRepository(conn)
	ctx := context.Background()
	alice, bob := createUser(t, conn, "alice"), createUser(t, conn, "bob")

	req, err := repo.CreateRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.AcceptRequest(ctx, req.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteFriendship(ctx, bob.ID, alice.ID))

	for _, pair := range [][2]string{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		friends, err := repo.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, friends)
	}

	err = repo.DeleteFriendship(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListRequestsNewestFirst(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	alice, bob, carol := createUser(t, conn, "alice"), createUser(t, conn, "bob"), createUser(t, conn, "carol")

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo := &friendRepository{
		table: NewFriendRepository(conn).(*friendRepository).table,
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
	}

	first, err := repo.CreateRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	second, err := repo.CreateRequest(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	received, err := repo.Find(ctx, collection.Where(collection.Eq("receiver_id", alice.ID)),
		pagination.Query{OrderBy: "created_at", Order: pagination.OrderDesc})
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, second.ID, received[0].ID)
	assert.Equal(t, first.ID, received[1].ID)
	assert.True(t, received[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}
