package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Folder struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ContainerID primitive.ObjectID  `bson:"container_id" json:"container_id"`
	ParentID    *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Name        string              `bson:"name" json:"name" validate:"required"`
	Description string              `bson:"description" json:"description"`
	Color       string              `bson:"color" json:"color"`
	Icon        string              `bson:"icon" json:"icon"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}

// FolderContents is a folder listing: immediate subfolders plus documents.
type FolderContents struct {
	Folder    *Folder    `json:"folder,omitempty"`
	Folders   []Folder   `json:"folders"`
	Documents []Document `json:"documents"`
}
