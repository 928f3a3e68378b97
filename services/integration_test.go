package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"docvault/config"
	"docvault/database"
	"docvault/models"
	"docvault/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// setupIntegration starts a single-node MongoDB replica set container,
// connects the global database handle to it and returns a local blob store
// rooted in a temp directory. Skipped unless TEST_INTEGRATION is set.
func setupIntegration(t *testing.T) storage.BlobStore {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()

	container, err := mongodb.Run(ctx,
		"docker.io/mongo:7",
		mongodb.WithReplicaSet("rs0"),
	)
	require.NoError(t, err, "failed to start MongoDB container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	t.Setenv("MONGO_URI", uri)
	t.Setenv("DB_NAME", "docvault_test")
	t.Setenv("STORAGE_PROVIDER", "local")
	t.Setenv("UPLOAD_PATH", t.TempDir())

	cfg := config.LoadConfig()
	require.NoError(t, database.Connect(cfg))
	require.NoError(t, database.CreateIndexes())
	t.Cleanup(func() {
		if err := database.Disconnect(); err != nil {
			t.Logf("failed to disconnect: %v", err)
		}
	})

	store, err := storage.NewLocalClient(cfg)
	require.NoError(t, err)

	return store
}

func mbBytes(n int64) int64 {
	return n * 1024 * 1024
}

func pdfUpload(name string, sizeMB int64) *DocumentUpload {
	return &DocumentUpload{
		OriginalName: name,
		ContentType:  "application/pdf",
		Size:         mbBytes(sizeMB),
		Content:      []byte("%PDF-1.4 test content"),
	}
}

func TestUploadListDeleteRoundTrip(t *testing.T) {
	store := setupIntegration(t)
	containerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	docs := NewDocumentService(store)

	document, err := docs.UploadDocument(containerID, userID, pdfUpload("oficio-042.pdf", 1), &models.DocumentUploadRequest{
		Name:     "Ofício 042/2025",
		Category: "Ofícios",
		Tags:     "urgente, urbanismo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ofício 042/2025", document.Name)
	assert.Equal(t, "Ofícios", document.Category)
	assert.Equal(t, []string{"urgente", "urbanismo"}, document.Tags)
	assert.Nil(t, document.FolderID)

	exists, err := store.Exists(document.StorageKey)
	require.NoError(t, err)
	assert.True(t, exists, "blob should be written on admission")

	listed, err := docs.GetDocuments(containerID, nil, &DocumentFilters{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, document.ID, listed[0].ID)

	url, err := docs.GetDownloadURL(containerID, document.ID)
	require.NoError(t, err)
	assert.Contains(t, url, document.StorageKey)

	require.NoError(t, docs.DeleteDocument(containerID, document.ID))

	_, err = docs.GetDocument(containerID, document.ID)
	assert.True(t, IsNotFound(err))

	exists, err = store.Exists(document.StorageKey)
	require.NoError(t, err)
	assert.False(t, exists, "blob should be removed with the catalog row")
}

func TestUploadRejectsOversizeBeforeBlobWrite(t *testing.T) {
	store := setupIntegration(t)
	containerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	docs := NewDocumentService(store)
	quota := NewQuotaService()

	// Default video ceiling is 10 MB; a 12 MB video must be refused.
	upload := &DocumentUpload{
		OriginalName: "sessao-camara.mp4",
		ContentType:  "video/mp4",
		Size:         mbBytes(12),
		Content:      []byte("mp4"),
	}

	_, err := docs.UploadDocument(containerID, userID, upload, &models.DocumentUploadRequest{})
	qe, ok := IsQuotaExceeded(err)
	require.True(t, ok, "expected quota rejection, got %v", err)
	assert.Equal(t, models.ResourceClassVideo, qe.Class)
	assert.Equal(t, QuotaViolationSize, qe.Kind)
	assert.Equal(t, int64(10), qe.Limit)

	// Usage must be untouched by the refused upload.
	usage, err := quota.GetUsage(containerID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), usage.Video)
}

func TestUploadRejectsWhenCountCeilingReached(t *testing.T) {
	store := setupIntegration(t)
	containerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	docs := NewDocumentService(store)
	quota := NewQuotaService()

	_, err := quota.UpdatePolicy(containerID, &models.QuotaPolicyUpdateRequest{
		Video:    models.ClassLimitUpdate{MaxSizeMB: 10, MaxCount: 30},
		Image:    models.ClassLimitUpdate{MaxSizeMB: 5, MaxCount: 2},
		Document: models.ClassLimitUpdate{MaxSizeMB: 20, MaxCount: 500},
	})
	require.NoError(t, err)

	imageUpload := func(name string) *DocumentUpload {
		return &DocumentUpload{
			OriginalName: name,
			ContentType:  "image/png",
			Size:         1024,
			Content:      []byte("png"),
		}
	}

	_, err = docs.UploadDocument(containerID, userID, imageUpload("planta-1.png"), &models.DocumentUploadRequest{})
	require.NoError(t, err)
	_, err = docs.UploadDocument(containerID, userID, imageUpload("planta-2.png"), &models.DocumentUploadRequest{})
	require.NoError(t, err)

	_, err = docs.UploadDocument(containerID, userID, imageUpload("planta-3.png"), &models.DocumentUploadRequest{})
	qe, ok := IsQuotaExceeded(err)
	require.True(t, ok, "expected count rejection, got %v", err)
	assert.Equal(t, models.ResourceClassImage, qe.Class)
	assert.Equal(t, QuotaViolationCount, qe.Kind)
	assert.Equal(t, int64(2), qe.Limit)

	usage, err := quota.GetUsage(containerID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), usage.Image)
}

func TestConcurrentUploadsCannotExceedCountCeiling(t *testing.T) {
	store := setupIntegration(t)
	containerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	docs := NewDocumentService(store)
	quota := NewQuotaService()

	_, err := quota.UpdatePolicy(containerID, &models.QuotaPolicyUpdateRequest{
		Video:    models.ClassLimitUpdate{MaxSizeMB: 10, MaxCount: 30},
		Image:    models.ClassLimitUpdate{MaxSizeMB: 5, MaxCount: 3},
		Document: models.ClassLimitUpdate{MaxSizeMB: 20, MaxCount: 500},
	})
	require.NoError(t, err)

	imageUpload := func(name string) *DocumentUpload {
		return &DocumentUpload{
			OriginalName: name,
			ContentType:  "image/png",
			Size:         1024,
			Content:      []byte("png"),
		}
	}

	// Fill to one below the ceiling, then race for the last slot.
	_, err = docs.UploadDocument(containerID, userID, imageUpload("base-1.png"), &models.DocumentUploadRequest{})
	require.NoError(t, err)
	_, err = docs.UploadDocument(containerID, userID, imageUpload("base-2.png"), &models.DocumentUploadRequest{})
	require.NoError(t, err)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = docs.UploadDocument(containerID, userID, imageUpload(fmt.Sprintf("race-%d.png", i)), &models.DocumentUploadRequest{})
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
			continue
		}
		if _, ok := IsQuotaExceeded(err); ok {
			continue
		}
		assert.ErrorIs(t, err, ErrConcurrencyConflict, "unexpected racer error: %v", err)
	}
	assert.LessOrEqual(t, admitted, 1, "at most one racer may take the last slot")

	usage, err := quota.GetUsage(containerID)
	require.NoError(t, err)
	assert.LessOrEqual(t, usage.Image, int64(3), "count ceiling must hold under concurrency")
	assert.Equal(t, int64(2+admitted), usage.Image)
}

func TestFolderPathAndDeleteCascade(t *testing.T) {
	store := setupIntegration(t)
	containerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	folders := NewFolderService()
	docs := NewDocumentService(store)

	year, err := folders.CreateFolder(containerID, &models.FolderCreateRequest{Name: "2025"})
	require.NoError(t, err)
	month, err := folders.CreateFolder(containerID, &models.FolderCreateRequest{Name: "Janeiro", ParentID: year.ID.Hex()})
	require.NoError(t, err)
	week, err := folders.CreateFolder(containerID, &models.FolderCreateRequest{Name: "Semana1", ParentID: month.ID.Hex()})
	require.NoError(t, err)

	path, err := folders.GetFolderPath(containerID, week.ID)
	require.NoError(t, err)
	require.Len(t, path, 3)
	assert.Equal(t, "2025", path[0].Name)
	assert.Equal(t, "Janeiro", path[1].Name)
	assert.Equal(t, "Semana1", path[2].Name)

	document, err := docs.UploadDocument(containerID, userID, pdfUpload("ata.pdf", 1), &models.DocumentUploadRequest{
		FolderID: month.ID.Hex(),
	})
	require.NoError(t, err)

	require.NoError(t, folders.DeleteFolder(containerID, month.ID))

	// Documents of the deleted folder land at the root.
	moved, err := docs.GetDocument(containerID, document.ID)
	require.NoError(t, err)
	assert.Nil(t, moved.FolderID)

	// Subfolders are reparented one level up, not to the root.
	reparented, err := folders.GetFolder(containerID, week.ID)
	require.NoError(t, err)
	require.NotNil(t, reparented.ParentID)
	assert.Equal(t, year.ID, *reparented.ParentID)

	_, err = folders.GetFolder(containerID, month.ID)
	assert.True(t, IsNotFound(err))
}

func TestDeleteRootLevelFolderReparentsChildrenToRoot(t *testing.T) {
	setupIntegration(t)
	containerID := primitive.NewObjectID()
	folders := NewFolderService()

	parent, err := folders.CreateFolder(containerID, &models.FolderCreateRequest{Name: "Arquivo"})
	require.NoError(t, err)
	child, err := folders.CreateFolder(containerID, &models.FolderCreateRequest{Name: "Antigo", ParentID: parent.ID.Hex()})
	require.NoError(t, err)

	require.NoError(t, folders.DeleteFolder(containerID, parent.ID))

	orphan, err := folders.GetFolder(containerID, child.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentID)
}

func TestFlagDeleteClearsDocumentReferences(t *testing.T) {
	store := setupIntegration(t)
	containerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	flags := NewFlagService()
	docs := NewDocumentService(store)

	flag, err := flags.CreateFlag(containerID, &models.FlagCreateRequest{Name: "Pendente", Color: "#FF0000"})
	require.NoError(t, err)

	document, err := docs.UploadDocument(containerID, userID, pdfUpload("requerimento.pdf", 1), &models.DocumentUploadRequest{
		FlagID: flag.ID.Hex(),
	})
	require.NoError(t, err)
	require.NotNil(t, document.FlagID)

	require.NoError(t, flags.DeleteFlag(containerID, flag.ID))

	cleared, err := docs.GetDocument(containerID, document.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.FlagID)

	_, err = flags.GetFlag(containerID, flag.ID)
	assert.True(t, IsNotFound(err))
}

func TestLimitRequestSubmissionSnapshotsPolicy(t *testing.T) {
	setupIntegration(t)
	containerID := primitive.NewObjectID()
	requesterID := primitive.NewObjectID()
	requests := NewLimitRequestService()

	request, err := requests.Submit(containerID, requesterID, &models.LimitIncreaseSubmission{
		ResourceClass:  "video",
		Kind:           models.LimitRequestKindCount,
		RequestedValue: 50,
		Justification:  "Gravações das sessões mensais da câmara",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LimitRequestPending, request.Status)
	assert.Equal(t, int64(30), request.CurrentValue)
	assert.Equal(t, int64(50), request.RequestedValue)

	fetched, err := requests.GetRequest(containerID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, fetched.ID)

	pending, err := requests.GetPendingRequests(containerID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, request.ID, pending[0].ID)
}

func TestReconcileRemovesDanglingRows(t *testing.T) {
	store := setupIntegration(t)
	containerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	docs := NewDocumentService(store)
	reconcile := NewReconcileService(store)

	kept, err := docs.UploadDocument(containerID, userID, pdfUpload("mantido.pdf", 1), &models.DocumentUploadRequest{})
	require.NoError(t, err)
	dangling, err := docs.UploadDocument(containerID, userID, pdfUpload("perdido.pdf", 1), &models.DocumentUploadRequest{})
	require.NoError(t, err)

	// Simulate a blob lost outside the catalog's control.
	require.NoError(t, store.Delete(dangling.StorageKey))

	report, err := reconcile.Reconcile(containerID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Scanned)
	assert.Equal(t, int64(1), report.RemovedRows)

	_, err = docs.GetDocument(containerID, dangling.ID)
	assert.True(t, IsNotFound(err))
	_, err = docs.GetDocument(containerID, kept.ID)
	require.NoError(t, err)
}

func TestUsageRecomputedAfterDelete(t *testing.T) {
	store := setupIntegration(t)
	containerID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	docs := NewDocumentService(store)
	quota := NewQuotaService()

	document, err := docs.UploadDocument(containerID, userID, pdfUpload("relatorio.pdf", 1), &models.DocumentUploadRequest{})
	require.NoError(t, err)

	usage, err := quota.GetUsage(containerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), usage.Document)

	require.NoError(t, docs.DeleteDocument(containerID, document.ID))

	// No decrement bookkeeping: the rescan simply no longer sees the row.
	usage, err = quota.GetUsage(containerID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), usage.Document)
}

func TestPolicyUpsertedOnFirstRead(t *testing.T) {
	setupIntegration(t)
	containerID := primitive.NewObjectID()
	quota := NewQuotaService()

	policy, err := quota.GetPolicy(containerID)
	require.NoError(t, err)
	assert.Equal(t, containerID, policy.ContainerID)
	assert.Equal(t, int64(10), policy.Video.MaxSizeMB)
	assert.Equal(t, int64(30), policy.Video.MaxCount)
	assert.Equal(t, int64(5), policy.Image.MaxSizeMB)
	assert.Equal(t, int64(200), policy.Image.MaxCount)
	assert.Equal(t, int64(20), policy.Document.MaxSizeMB)
	assert.Equal(t, int64(500), policy.Document.MaxCount)

	// A second read must return the same persisted policy.
	again, err := quota.GetPolicy(containerID)
	require.NoError(t, err)
	assert.Equal(t, policy.ID, again.ID)
}
