package services

import (
	"testing"

	"docvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() *models.LimitIncreaseSubmission {
	return &models.LimitIncreaseSubmission{
		ResourceClass:  "video",
		Kind:           models.LimitRequestKindCount,
		RequestedValue: 50,
		Justification:  "seasonal surge",
	}
}

func TestValidateSubmissionOk(t *testing.T) {
	assert.NoError(t, validateSubmission(validSubmission()))
}

func TestValidateSubmissionRejects(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.LimitIncreaseSubmission)
		field  string
	}{
		{
			name:   "unknown resource class",
			mutate: func(s *models.LimitIncreaseSubmission) { s.ResourceClass = "audio" },
			field:  "resource_class",
		},
		{
			name:   "unknown kind",
			mutate: func(s *models.LimitIncreaseSubmission) { s.Kind = "bandwidth" },
			field:  "kind",
		},
		{
			name:   "zero requested value",
			mutate: func(s *models.LimitIncreaseSubmission) { s.RequestedValue = 0 },
			field:  "requested_value",
		},
		{
			name:   "negative requested value",
			mutate: func(s *models.LimitIncreaseSubmission) { s.RequestedValue = -5 },
			field:  "requested_value",
		},
		{
			name:   "empty justification",
			mutate: func(s *models.LimitIncreaseSubmission) { s.Justification = "" },
			field:  "justification",
		},
		{
			name:   "whitespace justification",
			mutate: func(s *models.LimitIncreaseSubmission) { s.Justification = "   " },
			field:  "justification",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			submission := validSubmission()
			tc.mutate(submission)

			err := validateSubmission(submission)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestSnapshotCurrentValue(t *testing.T) {
	policy := &models.QuotaPolicy{
		Video:    models.ClassLimit{MaxSizeMB: 10, MaxCount: 30},
		Image:    models.ClassLimit{MaxSizeMB: 5, MaxCount: 200},
		Document: models.ClassLimit{MaxSizeMB: 20, MaxCount: 500},
	}

	assert.Equal(t, int64(30), snapshotCurrentValue(policy, models.ResourceClassVideo, models.LimitRequestKindCount))
	assert.Equal(t, int64(10), snapshotCurrentValue(policy, models.ResourceClassVideo, models.LimitRequestKindSize))
	assert.Equal(t, int64(5), snapshotCurrentValue(policy, models.ResourceClassImage, models.LimitRequestKindSize))
	assert.Equal(t, int64(500), snapshotCurrentValue(policy, models.ResourceClassDocument, models.LimitRequestKindCount))
}
