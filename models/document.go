package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Document struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ContainerID  primitive.ObjectID  `bson:"container_id" json:"container_id"`
	FolderID     *primitive.ObjectID `bson:"folder_id,omitempty" json:"folder_id,omitempty"`
	FlagID       *primitive.ObjectID `bson:"flag_id,omitempty" json:"flag_id,omitempty"`
	Name         string              `bson:"name" json:"name" validate:"required"`
	Description  string              `bson:"description" json:"description"`
	OriginalName string              `bson:"original_name" json:"original_name"`
	ContentType  string              `bson:"content_type" json:"content_type"`
	Size         int64               `bson:"size" json:"size"`
	Category     string              `bson:"category" json:"category"`
	Tags         []string            `bson:"tags" json:"tags"`
	StorageKey   string              `bson:"storage_key" json:"storage_key"`
	CreatedBy    primitive.ObjectID  `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// DocumentCategories is the closed set of categories the office UI works with.
// CategoryOther is the catch-all used when no category is supplied.
const CategoryOther = "Outros"

var DocumentCategories = []string{
	"Ofícios",
	"Requerimentos",
	"Indicações",
	"Projetos de Lei",
	"Moções",
	"Atas",
	"Contratos",
	"Relatórios",
	CategoryOther,
}

// IsValidCategory reports whether category belongs to the closed enumeration.
func IsValidCategory(category string) bool {
	for _, c := range DocumentCategories {
		if c == category {
			return true
		}
	}
	return false
}
