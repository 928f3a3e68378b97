package services

import (
	"context"
	"fmt"
	"time"

	"docvault/database"
	"docvault/models"
	"docvault/storage"
	"docvault/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DocumentService struct {
	client             *mongo.Client
	documentCollection *mongo.Collection
	folderCollection   *mongo.Collection
	flagCollection     *mongo.Collection
	quotaService       *QuotaService
	blobStore          storage.BlobStore
}

func NewDocumentService(blobStore storage.BlobStore) *DocumentService {
	return &DocumentService{
		client:             database.GetClient(),
		documentCollection: database.GetCollection(database.DocumentsCollection),
		folderCollection:   database.GetCollection(database.FoldersCollection),
		flagCollection:     database.GetCollection(database.FlagsCollection),
		quotaService:       NewQuotaService(),
		blobStore:          blobStore,
	}
}

// DocumentUpload carries the file part of a multipart upload.
type DocumentUpload struct {
	OriginalName string
	ContentType  string
	Size         int64
	Content      []byte
}

// DocumentFilters narrows a catalog listing.
type DocumentFilters struct {
	Category string
	FlagID   *primitive.ObjectID
}

// GetDocuments lists the catalog for one folder (nil for the root), newest
// first, optionally filtered by category and flag.
func (ds *DocumentService) GetDocuments(containerID primitive.ObjectID, folderID *primitive.ObjectID, filters *DocumentFilters) ([]models.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := documentListFilter(containerID, folderID, filters)

	cursor, err := ds.documentCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %v", err)
	}
	defer cursor.Close(ctx)

	documents := []models.Document{}
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %v", err)
	}

	return documents, nil
}

// documentListFilter builds the catalog query for a folder scope plus
// optional category/flag filters.
func documentListFilter(containerID primitive.ObjectID, folderID *primitive.ObjectID, filters *DocumentFilters) bson.M {
	filter := bson.M{"container_id": containerID}
	if folderID == nil {
		filter["folder_id"] = bson.M{"$exists": false}
	} else {
		filter["folder_id"] = *folderID
	}
	if filters != nil {
		if filters.Category != "" {
			filter["category"] = filters.Category
		}
		if filters.FlagID != nil {
			filter["flag_id"] = *filters.FlagID
		}
	}
	return filter
}

// GetDocument returns a specific document scoped to the container.
func (ds *DocumentService) GetDocument(containerID, documentID primitive.ObjectID) (*models.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return ds.getDocument(ctx, containerID, documentID)
}

func (ds *DocumentService) getDocument(ctx context.Context, containerID, documentID primitive.ObjectID) (*models.Document, error) {
	var document models.Document
	err := ds.documentCollection.FindOne(ctx, bson.M{
		"_id":          documentID,
		"container_id": containerID,
	}).Decode(&document)
	if err == mongo.ErrNoDocuments {
		return nil, notFoundError("document", documentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %v", err)
	}

	return &document, nil
}

// UploadDocument admits a file into the catalog. The size ceiling is checked
// before any byte reaches the blob store. The count ceiling is checked
// inside a transaction that first writes the container's policy row:
// snapshot reads alone would let two concurrent admissions both see the
// same usage and jointly exceed the ceiling, but the policy write makes
// them conflict on one document, so one aborts, retries and sees the
// other's insert. If the transaction fails after the blob was written, the
// blob is deleted again on a best-effort basis.
func (ds *DocumentService) UploadDocument(containerID, createdBy primitive.ObjectID, upload *DocumentUpload, req *models.DocumentUploadRequest) (*models.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	category := normalizeCategory(req.Category)
	if !models.IsValidCategory(category) {
		return nil, &ValidationError{Field: "category", Message: "unknown category"}
	}

	folderID, err := utils.ParseFolderID(req.FolderID)
	if err != nil {
		return nil, &ValidationError{Field: "folder_id", Message: "invalid folder id"}
	}
	if folderID != nil {
		if err := ds.folderExists(ctx, containerID, *folderID); err != nil {
			return nil, err
		}
	}

	var flagID *primitive.ObjectID
	if req.FlagID != "" {
		fid, err := primitive.ObjectIDFromHex(req.FlagID)
		if err != nil {
			return nil, &ValidationError{Field: "flag_id", Message: "invalid flag id"}
		}
		if err := ds.flagExists(ctx, containerID, fid); err != nil {
			return nil, err
		}
		flagID = &fid
	}

	policy, err := ds.quotaService.getPolicy(ctx, containerID)
	if err != nil {
		return nil, err
	}

	class := ClassifyContentType(upload.ContentType)
	if err := ValidateUploadSize(policy, class, upload.Size); err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = upload.OriginalName
	}

	storageKey := utils.GenerateStorageKey(containerID, upload.OriginalName)
	if err := ds.blobStore.Upload(storageKey, upload.Content); err != nil {
		return nil, fmt.Errorf("failed to upload to storage: %v", err)
	}

	document := &models.Document{
		ID:           primitive.NewObjectID(),
		ContainerID:  containerID,
		FolderID:     folderID,
		FlagID:       flagID,
		Name:         name,
		Description:  req.Description,
		OriginalName: upload.OriginalName,
		ContentType:  upload.ContentType,
		Size:         upload.Size,
		Category:     category,
		Tags:         utils.ParseTags(req.Tags),
		StorageKey:   storageKey,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	session, err := ds.client.StartSession()
	if err != nil {
		ds.blobStore.Delete(storageKey)
		return nil, fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// The policy write is what makes two concurrent admissions for one
		// container collide instead of both committing.
		if err := ds.quotaService.touchPolicy(sc, containerID); err != nil {
			return nil, err
		}
		usage, err := ds.quotaService.usageForContainer(sc, containerID)
		if err != nil {
			return nil, err
		}
		if err := ValidateUpload(policy, class, upload.Size, usage.Count(class)); err != nil {
			return nil, err
		}
		if _, err := ds.documentCollection.InsertOne(sc, document); err != nil {
			return nil, fmt.Errorf("failed to save document record: %v", err)
		}
		return nil, nil
	})
	if err != nil {
		// Compensate the blob write; leftovers are swept by reconciliation.
		ds.blobStore.Delete(storageKey)
		return nil, translateTxnError(err)
	}

	return document, nil
}

// normalizeCategory applies the catch-all default for absent categories.
func normalizeCategory(category string) string {
	if category == "" {
		return models.CategoryOther
	}
	return category
}

// MoveDocument reassigns a document to another folder, or to the root when
// targetFolderID is nil. The target folder must exist in the container.
func (ds *DocumentService) MoveDocument(containerID, documentID primitive.ObjectID, targetFolderID *primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := ds.getDocument(ctx, containerID, documentID); err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"updated_at": time.Now()}}
	if targetFolderID != nil {
		if err := ds.folderExists(ctx, containerID, *targetFolderID); err != nil {
			return err
		}
		update["$set"].(bson.M)["folder_id"] = *targetFolderID
	} else {
		update["$unset"] = bson.M{"folder_id": ""}
	}

	_, err := ds.documentCollection.UpdateOne(ctx,
		bson.M{"_id": documentID, "container_id": containerID},
		update,
	)
	if err != nil {
		return fmt.Errorf("failed to move document: %v", err)
	}

	return nil
}

// UpdateDocument changes description, category, flag or tags.
func (ds *DocumentService) UpdateDocument(containerID, documentID primitive.ObjectID, req *models.DocumentUpdateRequest) (*models.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := ds.getDocument(ctx, containerID, documentID); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	unset := bson.M{}

	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		category := normalizeCategory(*req.Category)
		if !models.IsValidCategory(category) {
			return nil, &ValidationError{Field: "category", Message: "unknown category"}
		}
		set["category"] = category
	}
	if req.Tags != nil {
		set["tags"] = utils.ParseTags(*req.Tags)
	}
	if req.FlagID != nil {
		if *req.FlagID == "" {
			unset["flag_id"] = ""
		} else {
			fid, err := primitive.ObjectIDFromHex(*req.FlagID)
			if err != nil {
				return nil, &ValidationError{Field: "flag_id", Message: "invalid flag id"}
			}
			if err := ds.flagExists(ctx, containerID, fid); err != nil {
				return nil, err
			}
			set["flag_id"] = fid
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	_, err := ds.documentCollection.UpdateOne(ctx,
		bson.M{"_id": documentID, "container_id": containerID},
		update,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %v", err)
	}

	return ds.getDocument(ctx, containerID, documentID)
}

// DeleteDocument removes the blob first, then the metadata row. A metadata
// delete failing after the blob is gone surfaces as InconsistentStateError;
// the reconciliation sweep removes such rows later.
func (ds *DocumentService) DeleteDocument(containerID, documentID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	document, err := ds.getDocument(ctx, containerID, documentID)
	if err != nil {
		return err
	}

	if err := ds.blobStore.Delete(document.StorageKey); err != nil {
		return fmt.Errorf("failed to delete from storage: %v", err)
	}

	if _, err := ds.documentCollection.DeleteOne(ctx, bson.M{"_id": documentID}); err != nil {
		return &InconsistentStateError{
			DocumentID: documentID,
			StorageKey: document.StorageKey,
			Cause:      err,
		}
	}

	return nil
}

// GetDownloadURL returns a short-lived URL for the document's blob.
func (ds *DocumentService) GetDownloadURL(containerID, documentID primitive.ObjectID) (string, error) {
	document, err := ds.GetDocument(containerID, documentID)
	if err != nil {
		return "", err
	}

	url, err := ds.blobStore.GetPresignedURL(document.StorageKey, 1*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %v", err)
	}

	return url, nil
}

func (ds *DocumentService) folderExists(ctx context.Context, containerID, folderID primitive.ObjectID) error {
	count, err := ds.folderCollection.CountDocuments(ctx, bson.M{
		"_id":          folderID,
		"container_id": containerID,
	})
	if err != nil {
		return fmt.Errorf("failed to check folder: %v", err)
	}
	if count == 0 {
		return notFoundError("folder", folderID)
	}
	return nil
}

func (ds *DocumentService) flagExists(ctx context.Context, containerID, flagID primitive.ObjectID) error {
	count, err := ds.flagCollection.CountDocuments(ctx, bson.M{
		"_id":          flagID,
		"container_id": containerID,
	})
	if err != nil {
		return fmt.Errorf("failed to check flag: %v", err)
	}
	if count == 0 {
		return notFoundError("flag", flagID)
	}
	return nil
}
