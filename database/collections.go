package database

// Collection names as constants to prevent typos
const (
	FoldersCollection       = "folders"
	DocumentsCollection     = "documents"
	FlagsCollection         = "flags"
	QuotaPoliciesCollection = "quota_policies"
	LimitRequestsCollection = "limit_requests"
)
