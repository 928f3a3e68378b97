package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docvault/config"
	"docvault/database"
	"docvault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bytesPerMB is the size unit used for every size-limit comparison.
const bytesPerMB = 1024 * 1024

// ClassifyContentType maps a content type onto a resource class. Anything
// that is not a video or an image lands in the document catch-all, including
// empty and malformed types.
func ClassifyContentType(contentType string) models.ResourceClass {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return models.ResourceClassVideo
	case strings.HasPrefix(contentType, "image/"):
		return models.ResourceClassImage
	default:
		return models.ResourceClassDocument
	}
}

// ValidateUploadSize checks the size ceiling only. It runs before any byte
// is handed to the blob store so rejected uploads cost no transfer.
func ValidateUploadSize(policy *models.QuotaPolicy, class models.ResourceClass, sizeBytes int64) error {
	limit := policy.Limit(class)
	if sizeBytes > limit.MaxSizeMB*bytesPerMB {
		return &QuotaExceededError{
			Class:  class,
			Kind:   QuotaViolationSize,
			Limit:  limit.MaxSizeMB,
			Actual: sizeBytes,
		}
	}
	return nil
}

// ValidateUpload checks a pending upload against the container policy using
// the supplied usage count. Size is checked before count.
func ValidateUpload(policy *models.QuotaPolicy, class models.ResourceClass, sizeBytes, currentCount int64) error {
	if err := ValidateUploadSize(policy, class, sizeBytes); err != nil {
		return err
	}
	limit := policy.Limit(class)
	if currentCount >= limit.MaxCount {
		return &QuotaExceededError{
			Class:  class,
			Kind:   QuotaViolationCount,
			Limit:  limit.MaxCount,
			Actual: currentCount,
		}
	}
	return nil
}

// ComputeUsage classifies every document by content type and counts per
// class. Usage is always derived from a full rescan, never cached.
func ComputeUsage(documents []models.Document) models.UsageStats {
	var usage models.UsageStats
	for _, doc := range documents {
		usage.Add(ClassifyContentType(doc.ContentType), 1)
	}
	return usage
}

type QuotaService struct {
	policyCollection   *mongo.Collection
	documentCollection *mongo.Collection
}

func NewQuotaService() *QuotaService {
	return &QuotaService{
		policyCollection:   database.GetCollection(database.QuotaPoliciesCollection),
		documentCollection: database.GetCollection(database.DocumentsCollection),
	}
}

// GetPolicy returns the container's quota policy, seeding the configured
// default on first access.
func (qs *QuotaService) GetPolicy(containerID primitive.ObjectID) (*models.QuotaPolicy, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return qs.getPolicy(ctx, containerID)
}

func (qs *QuotaService) getPolicy(ctx context.Context, containerID primitive.ObjectID) (*models.QuotaPolicy, error) {
	defaults := config.AppConfig
	now := time.Now()

	update := bson.M{
		"$setOnInsert": bson.M{
			"container_id": containerID,
			"video":        bson.M{"max_size_mb": defaults.DefaultVideoSizeMB, "max_count": defaults.DefaultVideoCount},
			"image":        bson.M{"max_size_mb": defaults.DefaultImageSizeMB, "max_count": defaults.DefaultImageCount},
			"document":     bson.M{"max_size_mb": defaults.DefaultDocumentSizeMB, "max_count": defaults.DefaultDocumentCount},
			"created_at":   now,
			"updated_at":   now,
		},
	}

	var policy models.QuotaPolicy
	err := qs.policyCollection.FindOneAndUpdate(ctx,
		bson.M{"container_id": containerID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&policy)
	if err != nil {
		return nil, fmt.Errorf("failed to get quota policy: %v", err)
	}

	return &policy, nil
}

// touchPolicy increments the admission counter on the container's policy row
// inside the caller's session. Every admission transaction for a container
// writes this one document, so two concurrent admissions conflict on it and
// one aborts and retries with the other's insert visible. Without this write
// the snapshot reads of the usage scan would never conflict and both
// admissions could pass the count check.
func (qs *QuotaService) touchPolicy(ctx context.Context, containerID primitive.ObjectID) error {
	_, err := qs.policyCollection.UpdateOne(ctx,
		bson.M{"container_id": containerID},
		bson.M{"$inc": bson.M{"admission_seq": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark quota policy for admission: %v", err)
	}
	return nil
}

// UpdatePolicy replaces the per-class ceilings. Invoked by the external
// administration review collaborator after deciding a limit request.
func (qs *QuotaService) UpdatePolicy(containerID primitive.ObjectID, req *models.QuotaPolicyUpdateRequest) (*models.QuotaPolicy, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Make sure the policy row exists before updating it
	if _, err := qs.getPolicy(ctx, containerID); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"video":      bson.M{"max_size_mb": req.Video.MaxSizeMB, "max_count": req.Video.MaxCount},
		"image":      bson.M{"max_size_mb": req.Image.MaxSizeMB, "max_count": req.Image.MaxCount},
		"document":   bson.M{"max_size_mb": req.Document.MaxSizeMB, "max_count": req.Document.MaxCount},
		"updated_at": time.Now(),
	}}

	var policy models.QuotaPolicy
	err := qs.policyCollection.FindOneAndUpdate(ctx,
		bson.M{"container_id": containerID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&policy)
	if err != nil {
		return nil, fmt.Errorf("failed to update quota policy: %v", err)
	}

	return &policy, nil
}

// GetUsage recomputes per-class counts by scanning the container's catalog.
func (qs *QuotaService) GetUsage(containerID primitive.ObjectID) (*models.UsageStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return qs.usageForContainer(ctx, containerID)
}

// usageForContainer is the scan behind GetUsage. It takes the caller's
// context so the upload path can run it inside a transaction session.
func (qs *QuotaService) usageForContainer(ctx context.Context, containerID primitive.ObjectID) (*models.UsageStats, error) {
	cursor, err := qs.documentCollection.Find(ctx,
		bson.M{"container_id": containerID},
		options.Find().SetProjection(bson.M{"content_type": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %v", err)
	}
	defer cursor.Close(ctx)

	var usage models.UsageStats
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %v", err)
		}
		usage.Add(ClassifyContentType(doc.ContentType), 1)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan documents: %v", err)
	}

	return &usage, nil
}

// GetReport bundles the current policy with freshly computed usage.
func (qs *QuotaService) GetReport(containerID primitive.ObjectID) (*models.QuotaReport, error) {
	policy, err := qs.GetPolicy(containerID)
	if err != nil {
		return nil, err
	}

	usage, err := qs.GetUsage(containerID)
	if err != nil {
		return nil, err
	}

	return &models.QuotaReport{Policy: policy, Usage: usage}, nil
}
