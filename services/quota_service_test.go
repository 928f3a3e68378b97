package services

import (
	"testing"

	"docvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() *models.QuotaPolicy {
	return &models.QuotaPolicy{
		Video:    models.ClassLimit{MaxSizeMB: 10, MaxCount: 30},
		Image:    models.ClassLimit{MaxSizeMB: 5, MaxCount: 2},
		Document: models.ClassLimit{MaxSizeMB: 20, MaxCount: 100},
	}
}

func TestClassifyContentType(t *testing.T) {
	testCases := []struct {
		contentType string
		expected    models.ResourceClass
	}{
		{"video/mp4", models.ResourceClassVideo},
		{"video/webm", models.ResourceClassVideo},
		{"image/png", models.ResourceClassImage},
		{"image/jpeg", models.ResourceClassImage},
		{"application/pdf", models.ResourceClassDocument},
		{"text/plain", models.ResourceClassDocument},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", models.ResourceClassDocument},
		// unrecognized and absent types land in the catch-all
		{"", models.ResourceClassDocument},
		{"garbage", models.ResourceClassDocument},
		{"videox/mp4", models.ResourceClassDocument},
		{"audio/ogg", models.ResourceClassDocument},
	}

	for _, tc := range testCases {
		t.Run(tc.contentType, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyContentType(tc.contentType))
		})
	}
}

func TestValidateUploadSizeExceeded(t *testing.T) {
	policy := testPolicy()

	// 12 MB video against a 10 MB ceiling
	err := ValidateUpload(policy, models.ResourceClassVideo, 12*1024*1024, 0)
	require.Error(t, err)

	qe, ok := IsQuotaExceeded(err)
	require.True(t, ok)
	assert.Equal(t, models.ResourceClassVideo, qe.Class)
	assert.Equal(t, QuotaViolationSize, qe.Kind)
	assert.Equal(t, int64(10), qe.Limit)
	assert.Equal(t, int64(12*1024*1024), qe.Actual)
}

func TestValidateUploadSizeBoundary(t *testing.T) {
	policy := testPolicy()

	// exactly at the ceiling passes, one byte over does not
	assert.NoError(t, ValidateUpload(policy, models.ResourceClassVideo, 10*1024*1024, 0))

	err := ValidateUpload(policy, models.ResourceClassVideo, 10*1024*1024+1, 0)
	_, ok := IsQuotaExceeded(err)
	assert.True(t, ok)
}

func TestValidateUploadCountExceeded(t *testing.T) {
	policy := testPolicy()

	// two images already cataloged against a limit of two
	err := ValidateUpload(policy, models.ResourceClassImage, 1024*1024, 2)
	require.Error(t, err)

	qe, ok := IsQuotaExceeded(err)
	require.True(t, ok)
	assert.Equal(t, models.ResourceClassImage, qe.Class)
	assert.Equal(t, QuotaViolationCount, qe.Kind)
	assert.Equal(t, int64(2), qe.Limit)
	assert.Equal(t, int64(2), qe.Actual)
}

func TestValidateUploadChecksSizeBeforeCount(t *testing.T) {
	policy := testPolicy()

	// both limits violated: the size rejection must win, the blob store is
	// never touched for oversized files
	err := ValidateUpload(policy, models.ResourceClassImage, 6*1024*1024, 5)
	qe, ok := IsQuotaExceeded(err)
	require.True(t, ok)
	assert.Equal(t, QuotaViolationSize, qe.Kind)
}

func TestValidateUploadOk(t *testing.T) {
	policy := testPolicy()

	assert.NoError(t, ValidateUpload(policy, models.ResourceClassImage, 1024*1024, 1))
	assert.NoError(t, ValidateUpload(policy, models.ResourceClassDocument, 19*1024*1024, 99))
}

func TestComputeUsage(t *testing.T) {
	docs := []models.Document{
		{ContentType: "video/mp4"},
		{ContentType: "image/png"},
		{ContentType: "image/jpeg"},
		{ContentType: "application/pdf"},
		{ContentType: ""},
		{ContentType: "audio/ogg"},
	}

	usage := ComputeUsage(docs)
	assert.Equal(t, int64(1), usage.Video)
	assert.Equal(t, int64(2), usage.Image)
	assert.Equal(t, int64(3), usage.Document)

	assert.Equal(t, int64(2), usage.Count(models.ResourceClassImage))
}

func TestComputeUsageEmpty(t *testing.T) {
	usage := ComputeUsage(nil)
	assert.Equal(t, models.UsageStats{}, usage)
}
