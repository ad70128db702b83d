package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/mocks"
	"social-service/internal/models"
	"social-service/internal/rabbitmq"
)

func TestFriendRequestEnvelope(t *testing.T) {
	pub := new(mocks.MockPublisher)
	emitter := NewEmitter(pub, "social-service", "test")
	emitter.now = func() time.Time { return time.Date(2026, time.May, 4, 10, 0, 0, 0, time.UTC) }

	var got rabbitmq.Message
	pub.On("Publish", mock.Anything, FriendRequestAccepted, mock.AnythingOfType("rabbitmq.Message")).
		Run(func(args mock.Arguments) { got = args.Get(2).(rabbitmq.Message) }).
		Return(nil).Once()

	req := &models.FriendRequest{ID: "r1", SenderID: "alice", ReceiverID: "bob"}
	emitter.FriendRequest(context.Background(), FriendRequestAccepted, req, "bob")

	pub.AssertExpectations(t)
	envelope, ok := got.Body.(Envelope)
	require.True(t, ok)
	assert.Equal(t, got.ID, envelope.EventID)
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, FriendRequestAccepted, got.Type)
	assert.Equal(t, schemaVersion, envelope.SchemaVersion)
	assert.Equal(t, "2026-05-04T10:00:00Z", envelope.OccurredAt)
	assert.Equal(t, "social-service", envelope.Service)
	assert.Equal(t, "test", envelope.Environment)
	assert.Equal(t, FriendRequestPayload{RequestID: "r1", SenderID: "alice", ReceiverID: "bob", ActorID: "bob"}, envelope.Payload)
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, FriendshipRemoved, mock.Anything).Return(errors.New("broker down")).Once()

	emitter := NewEmitter(pub, "social-service", "test")
	assert.NotPanics(t, func() {
		emitter.FriendshipRemoved(context.Background(), "alice", "bob")
	})
	pub.AssertExpectations(t)
}

func TestNilEmitterDropsEvents(t *testing.T) {
	var emitter *Emitter
	assert.NotPanics(t, func() {
		emitter.FriendshipRemoved(context.Background(), "alice", "bob")
		emitter.FriendRequest(context.Background(), FriendRequestCreated, &models.FriendRequest{}, "alice")
	})
}
