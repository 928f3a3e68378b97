package services

import (
	"context"
	"fmt"
	"time"

	"docvault/database"
	"docvault/models"
	"docvault/storage"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReconcileService implements the documented best-effort consistency policy
// between the blob store and the metadata store: catalog rows whose blob no
// longer exists are removed and logged. Orphan blobs are bounded by the
// compensating delete on the upload path; the narrow blob interface has no
// listing, so anything that still escapes is left to bucket lifecycle rules.
type ReconcileService struct {
	documentCollection *mongo.Collection
	blobStore          storage.BlobStore
	logger             *logrus.Logger
}

func NewReconcileService(blobStore storage.BlobStore) *ReconcileService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &ReconcileService{
		documentCollection: database.GetCollection(database.DocumentsCollection),
		blobStore:          blobStore,
		logger:             logger,
	}
}

// ReconcileReport summarizes one sweep.
type ReconcileReport struct {
	Scanned      int64 `json:"scanned"`
	RemovedRows  int64 `json:"removed_rows"`
	CheckErrors  int64 `json:"check_errors"`
	RemoveErrors int64 `json:"remove_errors"`
}

// Reconcile sweeps one container's catalog and drops rows whose blob is
// missing. Errors on individual documents are logged and counted, not fatal.
func (rs *ReconcileService) Reconcile(containerID primitive.ObjectID) (*ReconcileReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cursor, err := rs.documentCollection.Find(ctx, bson.M{"container_id": containerID})
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %v", err)
	}
	defer cursor.Close(ctx)

	report := &ReconcileReport{}
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %v", err)
		}
		report.Scanned++

		exists, err := rs.blobStore.Exists(doc.StorageKey)
		if err != nil {
			report.CheckErrors++
			rs.logger.WithFields(logrus.Fields{
				"document_id": doc.ID.Hex(),
				"storage_key": doc.StorageKey,
				"error":       err.Error(),
			}).Warn("reconcile: blob existence check failed")
			continue
		}
		if exists {
			continue
		}

		if _, err := rs.documentCollection.DeleteOne(ctx, bson.M{"_id": doc.ID}); err != nil {
			report.RemoveErrors++
			rs.logger.WithFields(logrus.Fields{
				"document_id": doc.ID.Hex(),
				"storage_key": doc.StorageKey,
				"error":       err.Error(),
			}).Error("reconcile: failed to remove dangling row")
			continue
		}

		report.RemovedRows++
		rs.logger.WithFields(logrus.Fields{
			"document_id": doc.ID.Hex(),
			"storage_key": doc.StorageKey,
			"container":   containerID.Hex(),
		}).Warn("reconcile: removed catalog row without blob")
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan documents: %v", err)
	}

	return report, nil
}
