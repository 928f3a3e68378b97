package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Limit increase request statuses. The core only ever writes Pending; the
// administration review collaborator moves requests to a terminal state.
const (
	LimitRequestPending  = "pending"
	LimitRequestApproved = "approved"
	LimitRequestRejected = "rejected"
)

// Limit increase request kinds.
const (
	LimitRequestKindSize  = "size"
	LimitRequestKindCount = "count"
)

type LimitIncreaseRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContainerID    primitive.ObjectID `bson:"container_id" json:"container_id"`
	RequesterID    primitive.ObjectID `bson:"requester_id" json:"requester_id"`
	ResourceClass  ResourceClass      `bson:"resource_class" json:"resource_class"`
	Kind           string             `bson:"kind" json:"kind"`
	CurrentValue   int64              `bson:"current_value" json:"current_value"`
	RequestedValue int64              `bson:"requested_value" json:"requested_value"`
	Justification  string             `bson:"justification" json:"justification"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
