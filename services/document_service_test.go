package services

import (
	"testing"

	"docvault/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocumentListFilterRoot(t *testing.T) {
	containerID := primitive.NewObjectID()

	filter := documentListFilter(containerID, nil, nil)
	assert.Equal(t, containerID, filter["container_id"])
	assert.Equal(t, bson.M{"$exists": false}, filter["folder_id"])
	assert.NotContains(t, filter, "category")
	assert.NotContains(t, filter, "flag_id")
}

func TestDocumentListFilterFolderAndFilters(t *testing.T) {
	containerID := primitive.NewObjectID()
	folderID := primitive.NewObjectID()
	flagID := primitive.NewObjectID()

	filter := documentListFilter(containerID, &folderID, &DocumentFilters{
		Category: "Atas",
		FlagID:   &flagID,
	})
	assert.Equal(t, folderID, filter["folder_id"])
	assert.Equal(t, "Atas", filter["category"])
	assert.Equal(t, flagID, filter["flag_id"])
}

func TestDocumentListFilterEmptyFilters(t *testing.T) {
	containerID := primitive.NewObjectID()
	folderID := primitive.NewObjectID()

	filter := documentListFilter(containerID, &folderID, &DocumentFilters{})
	assert.NotContains(t, filter, "category")
	assert.NotContains(t, filter, "flag_id")
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, models.CategoryOther, normalizeCategory(""))
	assert.Equal(t, "Atas", normalizeCategory("Atas"))

	// unknown values pass through and fail the closed-enum check afterwards
	assert.False(t, models.IsValidCategory(normalizeCategory("Diversos")))
	assert.True(t, models.IsValidCategory(normalizeCategory("")))
}
