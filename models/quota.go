package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceClass is the quota bucket a file falls into based on its content type.
type ResourceClass string

const (
	ResourceClassVideo    ResourceClass = "video"
	ResourceClassImage    ResourceClass = "image"
	ResourceClassDocument ResourceClass = "document"
)

// IsValidResourceClass reports whether s names a known resource class.
func IsValidResourceClass(s string) bool {
	switch ResourceClass(s) {
	case ResourceClassVideo, ResourceClassImage, ResourceClassDocument:
		return true
	}
	return false
}

// ClassLimit holds the ceilings for one resource class.
type ClassLimit struct {
	MaxSizeMB int64 `bson:"max_size_mb" json:"max_size_mb"`
	MaxCount  int64 `bson:"max_count" json:"max_count"`
}

// QuotaPolicy is the per-container upload policy, one document per container.
// AdmissionSeq is bumped by every upload admission transaction so concurrent
// admissions for the same container conflict instead of both committing.
type QuotaPolicy struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContainerID  primitive.ObjectID `bson:"container_id" json:"container_id"`
	Video        ClassLimit         `bson:"video" json:"video"`
	Image        ClassLimit         `bson:"image" json:"image"`
	Document     ClassLimit         `bson:"document" json:"document"`
	AdmissionSeq int64              `bson:"admission_seq,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Limit returns the class limit for the given resource class.
func (p *QuotaPolicy) Limit(class ResourceClass) ClassLimit {
	switch class {
	case ResourceClassVideo:
		return p.Video
	case ResourceClassImage:
		return p.Image
	default:
		return p.Document
	}
}

// UsageStats holds per-class document counts. It is derived by scanning the
// catalog and is never persisted.
type UsageStats struct {
	Video    int64 `json:"video"`
	Image    int64 `json:"image"`
	Document int64 `json:"document"`
}

// Count returns the count for the given resource class.
func (u *UsageStats) Count(class ResourceClass) int64 {
	switch class {
	case ResourceClassVideo:
		return u.Video
	case ResourceClassImage:
		return u.Image
	default:
		return u.Document
	}
}

// Add increments the count for the given resource class.
func (u *UsageStats) Add(class ResourceClass, n int64) {
	switch class {
	case ResourceClassVideo:
		u.Video += n
	case ResourceClassImage:
		u.Image += n
	default:
		u.Document += n
	}
}
