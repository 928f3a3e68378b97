package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docvault/database"
	"docvault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LimitRequestService struct {
	requestCollection *mongo.Collection
	quotaService      *QuotaService
}

func NewLimitRequestService() *LimitRequestService {
	return &LimitRequestService{
		requestCollection: database.GetCollection(database.LimitRequestsCollection),
		quotaService:      NewQuotaService(),
	}
}

// Submit files a limit increase request. The current policy value is
// snapshotted at submission time and the request is persisted as Pending.
// Approval or rejection happens outside this core; the review collaborator
// applies the decision through the quota policy update operation.
func (ls *LimitRequestService) Submit(containerID, requesterID primitive.ObjectID, req *models.LimitIncreaseSubmission) (*models.LimitIncreaseRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	policy, err := ls.quotaService.getPolicy(ctx, containerID)
	if err != nil {
		return nil, err
	}

	class := models.ResourceClass(req.ResourceClass)
	request := &models.LimitIncreaseRequest{
		ID:             primitive.NewObjectID(),
		ContainerID:    containerID,
		RequesterID:    requesterID,
		ResourceClass:  class,
		Kind:           req.Kind,
		CurrentValue:   snapshotCurrentValue(policy, class, req.Kind),
		RequestedValue: req.RequestedValue,
		Justification:  strings.TrimSpace(req.Justification),
		Status:         models.LimitRequestPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if _, err := ls.requestCollection.InsertOne(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save limit request: %v", err)
	}

	return request, nil
}

// validateSubmission rejects malformed submissions before anything is
// persisted.
func validateSubmission(req *models.LimitIncreaseSubmission) error {
	if !models.IsValidResourceClass(req.ResourceClass) {
		return &ValidationError{Field: "resource_class", Message: "must be one of video, image, document"}
	}
	if req.Kind != models.LimitRequestKindSize && req.Kind != models.LimitRequestKindCount {
		return &ValidationError{Field: "kind", Message: "must be size or count"}
	}
	if req.RequestedValue <= 0 {
		return &ValidationError{Field: "requested_value", Message: "must be greater than zero"}
	}
	if strings.TrimSpace(req.Justification) == "" {
		return &ValidationError{Field: "justification", Message: "must not be empty"}
	}
	return nil
}

// snapshotCurrentValue picks the policy value the request wants raised.
func snapshotCurrentValue(policy *models.QuotaPolicy, class models.ResourceClass, kind string) int64 {
	limit := policy.Limit(class)
	if kind == models.LimitRequestKindSize {
		return limit.MaxSizeMB
	}
	return limit.MaxCount
}

// GetRequest returns a specific request scoped to the container.
func (ls *LimitRequestService) GetRequest(containerID, requestID primitive.ObjectID) (*models.LimitIncreaseRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var request models.LimitIncreaseRequest
	err := ls.requestCollection.FindOne(ctx, bson.M{
		"_id":          requestID,
		"container_id": containerID,
	}).Decode(&request)
	if err == mongo.ErrNoDocuments {
		return nil, notFoundError("limit request", requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get limit request: %v", err)
	}

	return &request, nil
}

// GetPendingRequests lists Pending requests for the review collaborator,
// oldest first.
func (ls *LimitRequestService) GetPendingRequests(containerID primitive.ObjectID) ([]models.LimitIncreaseRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ls.requestCollection.Find(ctx,
		bson.M{"container_id": containerID, "status": models.LimitRequestPending},
		options.Find().SetSort(bson.M{"created_at": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending requests: %v", err)
	}
	defer cursor.Close(ctx)

	requests := []models.LimitIncreaseRequest{}
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode pending requests: %v", err)
	}

	return requests, nil
}
