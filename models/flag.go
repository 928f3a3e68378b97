package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flag is a reusable colored marker. A document references at most one flag,
// unlike free-text tags.
type Flag struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContainerID primitive.ObjectID `bson:"container_id" json:"container_id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Color       string             `bson:"color" json:"color"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
