package services

import (
	"context"
	"fmt"
	"time"

	"docvault/database"
	"docvault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxFolderDepth bounds every parent-link walk. The tree is acyclic by
// invariant, but the walk must not loop forever if the data is corrupted.
const maxFolderDepth = 64

type FolderService struct {
	client             *mongo.Client
	folderCollection   *mongo.Collection
	documentCollection *mongo.Collection
}

func NewFolderService() *FolderService {
	return &FolderService{
		client:             database.GetClient(),
		folderCollection:   database.GetCollection(database.FoldersCollection),
		documentCollection: database.GetCollection(database.DocumentsCollection),
	}
}

// GetFolders returns the container's folders under the given parent; a nil
// parent lists the root level.
func (fs *FolderService) GetFolders(containerID primitive.ObjectID, parentID *primitive.ObjectID) ([]models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"container_id": containerID}
	if parentID == nil {
		filter["parent_id"] = bson.M{"$exists": false}
	} else {
		filter["parent_id"] = *parentID
	}

	cursor, err := fs.folderCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to get folders: %v", err)
	}
	defer cursor.Close(ctx)

	folders := []models.Folder{}
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("failed to decode folders: %v", err)
	}

	return folders, nil
}

// GetFolder returns a specific folder scoped to the container.
func (fs *FolderService) GetFolder(containerID, folderID primitive.ObjectID) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return fs.getFolder(ctx, containerID, folderID)
}

func (fs *FolderService) getFolder(ctx context.Context, containerID, folderID primitive.ObjectID) (*models.Folder, error) {
	var folder models.Folder
	err := fs.folderCollection.FindOne(ctx, bson.M{
		"_id":          folderID,
		"container_id": containerID,
	}).Decode(&folder)
	if err == mongo.ErrNoDocuments {
		return nil, notFoundError("folder", folderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %v", err)
	}

	return &folder, nil
}

// CreateFolder creates a folder, optionally under a parent. The parent must
// exist and belong to the same container.
func (fs *FolderService) CreateFolder(containerID primitive.ObjectID, req *models.FolderCreateRequest) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			return nil, &ValidationError{Field: "parent_id", Message: "invalid folder id"}
		}
		if _, err := fs.getFolder(ctx, containerID, pid); err != nil {
			return nil, err
		}
		parentID = &pid
	}

	folder := &models.Folder{
		ID:          primitive.NewObjectID(),
		ContainerID: containerID,
		ParentID:    parentID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := fs.folderCollection.InsertOne(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %v", err)
	}

	return folder, nil
}

// UpdateFolder renames or restyles a folder.
func (fs *FolderService) UpdateFolder(containerID, folderID primitive.ObjectID, req *models.FolderUpdateRequest) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updates := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}

	result, err := fs.folderCollection.UpdateOne(ctx,
		bson.M{"_id": folderID, "container_id": containerID},
		bson.M{"$set": updates},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update folder: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, notFoundError("folder", folderID)
	}

	return fs.getFolder(ctx, containerID, folderID)
}

// GetFolderPath returns the chain from a root folder down to folderID.
func (fs *FolderService) GetFolderPath(containerID, folderID primitive.ObjectID) ([]models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := fs.folderCollection.Find(ctx, bson.M{"container_id": containerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load folders: %v", err)
	}
	defer cursor.Close(ctx)

	var folders []models.Folder
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("failed to decode folders: %v", err)
	}

	index := make(map[primitive.ObjectID]models.Folder, len(folders))
	for _, folder := range folders {
		index[folder.ID] = folder
	}

	return buildFolderPath(index, folderID)
}

// buildFolderPath walks parent links from folderID up to a root and returns
// the chain in root-first order. The walk is depth-limited so corrupted
// parent links cannot loop it.
func buildFolderPath(folders map[primitive.ObjectID]models.Folder, folderID primitive.ObjectID) ([]models.Folder, error) {
	var reversed []models.Folder

	current, ok := folders[folderID]
	if !ok {
		return nil, notFoundError("folder", folderID)
	}

	for depth := 0; ; depth++ {
		if depth >= maxFolderDepth {
			return nil, fmt.Errorf("folder tree deeper than %d levels, aborting walk", maxFolderDepth)
		}
		reversed = append(reversed, current)
		if current.ParentID == nil {
			break
		}
		parent, ok := folders[*current.ParentID]
		if !ok {
			return nil, notFoundError("folder", *current.ParentID)
		}
		current = parent
	}

	path := make([]models.Folder, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path, nil
}

// GetFolderContents returns the immediate subfolders and documents of a
// folder, or of the container root when folderID is nil.
func (fs *FolderService) GetFolderContents(containerID primitive.ObjectID, folderID *primitive.ObjectID) (*models.FolderContents, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	contents := &models.FolderContents{
		Folders:   []models.Folder{},
		Documents: []models.Document{},
	}

	if folderID != nil {
		folder, err := fs.getFolder(ctx, containerID, *folderID)
		if err != nil {
			return nil, err
		}
		contents.Folder = folder
	}

	folders, err := fs.GetFolders(containerID, folderID)
	if err != nil {
		return nil, err
	}
	contents.Folders = folders

	docFilter := bson.M{"container_id": containerID}
	if folderID == nil {
		docFilter["folder_id"] = bson.M{"$exists": false}
	} else {
		docFilter["folder_id"] = *folderID
	}

	cursor, err := fs.documentCollection.Find(ctx, docFilter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to get folder documents: %v", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &contents.Documents); err != nil {
		return nil, fmt.Errorf("failed to decode folder documents: %v", err)
	}

	return contents, nil
}

// DeleteFolder removes a folder with the cascade contract: documents inside
// it are reassigned to the container root, child folders move one level up
// to the deleted folder's parent, then the folder row goes away. The three
// effects run in one transaction so a crash mid-cascade can never leave
// documents pointing at a deleted folder.
func (fs *FolderService) DeleteFolder(containerID, folderID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	folder, err := fs.getFolder(ctx, containerID, folderID)
	if err != nil {
		return err
	}

	session, err := fs.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Documents jump all the way to the root, not to the parent.
		_, err := fs.documentCollection.UpdateMany(sc,
			bson.M{"container_id": containerID, "folder_id": folderID},
			bson.M{
				"$unset": bson.M{"folder_id": ""},
				"$set":   bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to reassign documents: %v", err)
		}

		// Child folders move a single level up.
		childUpdate := bson.M{"$set": bson.M{"updated_at": time.Now()}}
		if folder.ParentID != nil {
			childUpdate["$set"].(bson.M)["parent_id"] = *folder.ParentID
		} else {
			childUpdate["$unset"] = bson.M{"parent_id": ""}
		}
		_, err = fs.folderCollection.UpdateMany(sc,
			bson.M{"container_id": containerID, "parent_id": folderID},
			childUpdate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to reparent subfolders: %v", err)
		}

		if _, err := fs.folderCollection.DeleteOne(sc, bson.M{"_id": folderID}); err != nil {
			return nil, fmt.Errorf("failed to delete folder: %v", err)
		}

		return nil, nil
	})
	if err != nil {
		return translateTxnError(err)
	}

	return nil
}

// translateTxnError maps transaction aborts caused by concurrent writers
// onto ErrConcurrencyConflict so callers can retry.
func translateTxnError(err error) error {
	if cmdErr, ok := err.(mongo.CommandError); ok {
		if cmdErr.HasErrorLabel("TransientTransactionError") || cmdErr.HasErrorLabel("UnknownTransactionCommitResult") {
			return fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
		}
	}
	return err
}
