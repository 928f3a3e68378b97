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

type FlagService struct {
	client             *mongo.Client
	flagCollection     *mongo.Collection
	documentCollection *mongo.Collection
}

func NewFlagService() *FlagService {
	return &FlagService{
		client:             database.GetClient(),
		flagCollection:     database.GetCollection(database.FlagsCollection),
		documentCollection: database.GetCollection(database.DocumentsCollection),
	}
}

// GetFlags returns all flags of the container, sorted by name.
func (fs *FlagService) GetFlags(containerID primitive.ObjectID) ([]models.Flag, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := fs.flagCollection.Find(ctx,
		bson.M{"container_id": containerID},
		options.Find().SetSort(bson.M{"name": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get flags: %v", err)
	}
	defer cursor.Close(ctx)

	flags := []models.Flag{}
	if err = cursor.All(ctx, &flags); err != nil {
		return nil, fmt.Errorf("failed to decode flags: %v", err)
	}

	return flags, nil
}

// GetFlag returns a specific flag scoped to the container.
func (fs *FlagService) GetFlag(containerID, flagID primitive.ObjectID) (*models.Flag, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var flag models.Flag
	err := fs.flagCollection.FindOne(ctx, bson.M{
		"_id":          flagID,
		"container_id": containerID,
	}).Decode(&flag)
	if err == mongo.ErrNoDocuments {
		return nil, notFoundError("flag", flagID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flag: %v", err)
	}

	return &flag, nil
}

// CreateFlag creates a new flag.
func (fs *FlagService) CreateFlag(containerID primitive.ObjectID, req *models.FlagCreateRequest) (*models.Flag, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	flag := &models.Flag{
		ID:          primitive.NewObjectID(),
		ContainerID: containerID,
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := fs.flagCollection.InsertOne(ctx, flag); err != nil {
		return nil, fmt.Errorf("failed to create flag: %v", err)
	}

	return flag, nil
}

// UpdateFlag replaces name, color and description of a flag.
func (fs *FlagService) UpdateFlag(containerID, flagID primitive.ObjectID, req *models.FlagCreateRequest) (*models.Flag, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := fs.flagCollection.UpdateOne(ctx,
		bson.M{"_id": flagID, "container_id": containerID},
		bson.M{"$set": bson.M{
			"name":        req.Name,
			"color":       req.Color,
			"description": req.Description,
			"updated_at":  time.Now(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update flag: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, notFoundError("flag", flagID)
	}

	return fs.GetFlag(containerID, flagID)
}

// DeleteFlag removes a flag. Every document referencing it is cleared first
// so no dangling flag_id survives; both steps run in one transaction.
func (fs *FlagService) DeleteFlag(containerID, flagID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := fs.GetFlag(containerID, flagID); err != nil {
		return err
	}

	session, err := fs.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := fs.documentCollection.UpdateMany(sc,
			bson.M{"container_id": containerID, "flag_id": flagID},
			bson.M{
				"$unset": bson.M{"flag_id": ""},
				"$set":   bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to clear flag references: %v", err)
		}

		if _, err := fs.flagCollection.DeleteOne(sc, bson.M{"_id": flagID}); err != nil {
			return nil, fmt.Errorf("failed to delete flag: %v", err)
		}

		return nil, nil
	})
	if err != nil {
		return translateTxnError(err)
	}

	return nil
}
