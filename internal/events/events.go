// Package events publishes social-graph domain events to the broker after a
// state change has committed.
package events

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"social-service/internal/models"
	"social-service/internal/observability"
	"social-service/internal/rabbitmq"
)

const schemaVersion = 1

const (
	FriendRequestCreated  = "friend.request.created"
	FriendRequestAccepted = "friend.request.accepted"
	FriendRequestDeclined = "friend.request.declined"
	FriendRequestRevoked  = "friend.request.revoked"
	FriendshipRemoved     = "friendship.removed"
)

type Envelope struct {
	SchemaVersion int    `json:"schema_version"`
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	OccurredAt    string `json:"occurred_at"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	Payload       any    `json:"payload"`
}

type FriendRequestPayload struct {
	RequestID  string `json:"request_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	ActorID    string `json:"actor_id"`
}

type FriendshipPayload struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

// Emitter is safe to use as a nil pointer; it then drops every event.
type Emitter struct {
	publisher   rabbitmq.Publisher
	service     string
	environment string
	now         func() time.Time
}

func NewEmitter(publisher rabbitmq.Publisher, service, environment string) *Emitter {
	return &Emitter{
		publisher:   publisher,
		service:     service,
		environment: environment,
		now:         time.Now,
	}
}

// FriendRequest emits one of the friend.request.* events for req.
func (e *Emitter) FriendRequest(ctx context.Context, eventType string, req *models.FriendRequest, actorID string) {
	if req == nil {
		return
	}
	e.emit(ctx, eventType, FriendRequestPayload{
		RequestID:  req.ID,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		ActorID:    actorID,
	})
}

func (e *Emitter) FriendshipRemoved(ctx context.Context, userID, friendID string) {
	e.emit(ctx, FriendshipRemoved, FriendshipPayload{UserID: userID, FriendID: friendID})
}

// emit never fails the caller: the state change is already durable.
func (e *Emitter) emit(ctx context.Context, eventType string, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := Envelope{
		SchemaVersion: schemaVersion,
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OccurredAt:    e.now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		Payload:       payload,
	}

	msg := rabbitmq.Message{ID: envelope.EventID, Type: eventType, Body: envelope}
	if err := e.publisher.Publish(ctx, eventType, msg); err != nil {
		observability.IncAMQPPublishError()
		log.Printf("warning: failed to publish %s: %v", eventType, err)
		return
	}
	observability.IncEventPublished(eventType)
}
