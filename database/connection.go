package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"docvault/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// Connect establishes the MongoDB connection. Transactions are used for the
// upload admission and cascade paths, so the deployment must be a replica
// set (single-node replica sets work).
func Connect(cfg *config.Config) error {
	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetConnectTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	database = client.Database(cfg.DBName)

	log.Printf("Successfully connected to MongoDB database: %s", cfg.DBName)
	return nil
}

// Disconnect closes the MongoDB connection
func Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect from MongoDB: %v", err)
		}
		log.Println("Disconnected from MongoDB")
	}

	return nil
}

// GetClient returns the MongoDB client
func GetClient() *mongo.Client {
	return client
}

// GetDatabase returns the MongoDB database
func GetDatabase() *mongo.Database {
	return database
}

// GetCollection returns a MongoDB collection
func GetCollection(collectionName string) *mongo.Collection {
	if database == nil {
		panic(fmt.Sprintf("database not initialized when trying to get collection: %s. Make sure database.Connect() is called first.", collectionName))
	}
	return database.Collection(collectionName)
}

// Ping checks the database connection
func Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if client == nil {
		return fmt.Errorf("database client not initialized")
	}

	return client.Ping(ctx, readpref.Primary())
}

// CreateIndexes creates the indexes the catalog queries rely on
func CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("Creating database indexes...")

	documentsCollection := GetCollection(DocumentsCollection)
	documentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "folder_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "flag_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "content_type", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "category", Value: 1}},
		},
	}
	if _, err := documentsCollection.Indexes().CreateMany(ctx, documentIndexes); err != nil {
		return fmt.Errorf("failed to create document indexes: %v", err)
	}

	foldersCollection := GetCollection(FoldersCollection)
	folderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "parent_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "name", Value: 1}},
		},
	}
	if _, err := foldersCollection.Indexes().CreateMany(ctx, folderIndexes); err != nil {
		return fmt.Errorf("failed to create folder indexes: %v", err)
	}

	flagsCollection := GetCollection(FlagsCollection)
	flagIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "name", Value: 1}},
		},
	}
	if _, err := flagsCollection.Indexes().CreateMany(ctx, flagIndexes); err != nil {
		return fmt.Errorf("failed to create flag indexes: %v", err)
	}

	policiesCollection := GetCollection(QuotaPoliciesCollection)
	policyIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "container_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := policiesCollection.Indexes().CreateMany(ctx, policyIndexes); err != nil {
		return fmt.Errorf("failed to create quota policy indexes: %v", err)
	}

	requestsCollection := GetCollection(LimitRequestsCollection)
	requestIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "container_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}
	if _, err := requestsCollection.Indexes().CreateMany(ctx, requestIndexes); err != nil {
		return fmt.Errorf("failed to create limit request indexes: %v", err)
	}

	log.Println("Database indexes created successfully")
	return nil
}
