package services

import (
	"testing"

	"docvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func folderIndex(folders ...models.Folder) map[primitive.ObjectID]models.Folder {
	index := make(map[primitive.ObjectID]models.Folder, len(folders))
	for _, f := range folders {
		index[f.ID] = f
	}
	return index
}

func TestBuildFolderPath(t *testing.T) {
	year := models.Folder{ID: primitive.NewObjectID(), Name: "2025"}
	month := models.Folder{ID: primitive.NewObjectID(), Name: "Janeiro", ParentID: &year.ID}
	week := models.Folder{ID: primitive.NewObjectID(), Name: "Semana1", ParentID: &month.ID}

	path, err := buildFolderPath(folderIndex(year, month, week), week.ID)
	require.NoError(t, err)

	require.Len(t, path, 3)
	assert.Equal(t, "2025", path[0].Name)
	assert.Equal(t, "Janeiro", path[1].Name)
	assert.Equal(t, "Semana1", path[2].Name)

	// starts at a root, ends at the queried folder
	assert.Nil(t, path[0].ParentID)
	assert.Equal(t, week.ID, path[2].ID)
}

func TestBuildFolderPathRootFolder(t *testing.T) {
	root := models.Folder{ID: primitive.NewObjectID(), Name: "2025"}

	path, err := buildFolderPath(folderIndex(root), root.ID)
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, root.ID, path[0].ID)
}

func TestBuildFolderPathMissingFolder(t *testing.T) {
	_, err := buildFolderPath(folderIndex(), primitive.NewObjectID())
	assert.True(t, IsNotFound(err))
}

func TestBuildFolderPathMissingAncestor(t *testing.T) {
	orphanParent := primitive.NewObjectID()
	child := models.Folder{ID: primitive.NewObjectID(), Name: "child", ParentID: &orphanParent}

	_, err := buildFolderPath(folderIndex(child), child.ID)
	assert.True(t, IsNotFound(err))
}

func TestBuildFolderPathCycleGuard(t *testing.T) {
	a := models.Folder{ID: primitive.NewObjectID(), Name: "a"}
	b := models.Folder{ID: primitive.NewObjectID(), Name: "b"}
	a.ParentID = &b.ID
	b.ParentID = &a.ID

	_, err := buildFolderPath(folderIndex(a, b), a.ID)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestBuildFolderPathSelfCycle(t *testing.T) {
	a := models.Folder{ID: primitive.NewObjectID(), Name: "a"}
	a.ParentID = &a.ID

	_, err := buildFolderPath(folderIndex(a), a.ID)
	require.Error(t, err)
}

func TestBuildFolderPathDeepChain(t *testing.T) {
	// a legitimate chain just under the depth limit still resolves
	folders := make([]models.Folder, maxFolderDepth-1)
	for i := range folders {
		folders[i] = models.Folder{ID: primitive.NewObjectID()}
		if i > 0 {
			folders[i].ParentID = &folders[i-1].ID
		}
	}

	path, err := buildFolderPath(folderIndex(folders...), folders[len(folders)-1].ID)
	require.NoError(t, err)
	assert.Len(t, path, maxFolderDepth-1)
}
