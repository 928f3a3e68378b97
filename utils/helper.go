package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	claimsContextKey = "claims"

	// RootFolderAlias is accepted wherever a folder id is expected and
	// resolves to the container root (no folder).
	RootFolderAlias = "root"
)

// getEnv gets environment variable with fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// StringToObjectID converts string to MongoDB ObjectID
func StringToObjectID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}

// IsValidObjectID checks if string is a valid MongoDB ObjectID
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// ParseFolderID resolves a folder id parameter to an optional ObjectID.
// Empty strings and the "root" alias mean the container root.
func ParseFolderID(s string) (*primitive.ObjectID, error) {
	if s == "" || s == RootFolderAlias {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid folder id %q", s)
	}
	return &id, nil
}

// ParseTags splits a comma separated tag string into a deduplicated list of
// trimmed, non-empty tags. Order of first appearance is kept.
func ParseTags(s string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// GenerateStorageKey builds a unique blob key scoped to the container.
func GenerateStorageKey(containerID primitive.ObjectID, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	now := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%s%s", containerID.Hex(), now.Year(), now.Month(), uuid.NewString(), ext)
}

// FormatFileSize converts bytes to human readable format
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// SetClaimsInContext stores validated token claims in the gin context
func SetClaimsInContext(c *gin.Context, claims *Claims) {
	c.Set(claimsContextKey, claims)
}

// GetClaimsFromContext returns the token claims set by the auth middleware
func GetClaimsFromContext(c *gin.Context) (*Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}
