package models

// FolderCreateRequest is the payload for creating a folder.
type FolderCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Color       string `json:"color" validate:"omitempty,hex_color"`
	Icon        string `json:"icon" validate:"max=64"`
	ParentID    string `json:"parent_id" validate:"omitempty,object_id"`
}

// FolderUpdateRequest is the payload for renaming or restyling a folder.
type FolderUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Color       *string `json:"color" validate:"omitempty,hex_color"`
	Icon        *string `json:"icon" validate:"omitempty,max=64"`
}

// DocumentUploadRequest carries the metadata fields of a multipart upload.
// Tags arrive as a single comma separated string.
type DocumentUploadRequest struct {
	Name        string `form:"name" json:"name" validate:"max=255"`
	Description string `form:"description" json:"description" validate:"max=1000"`
	FolderID    string `form:"folder_id" json:"folder_id" validate:"omitempty,object_id"`
	FlagID      string `form:"flag_id" json:"flag_id" validate:"omitempty,object_id"`
	Category    string `form:"category" json:"category" validate:"omitempty,doc_category"`
	Tags        string `form:"tags" json:"tags" validate:"max=2000"`
}

// DocumentUpdateRequest changes category, flag or tags of a document.
type DocumentUpdateRequest struct {
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Category    *string `json:"category" validate:"omitempty,doc_category"`
	FlagID      *string `json:"flag_id" validate:"omitempty,object_id"`
	Tags        *string `json:"tags" validate:"omitempty,max=2000"`
}

// DocumentMoveRequest moves a document to another folder; empty or "root"
// targets the container root.
type DocumentMoveRequest struct {
	FolderID string `json:"folder_id" validate:"omitempty,object_id"`
}

// FlagCreateRequest is the payload for creating or replacing a flag.
type FlagCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Color       string `json:"color" validate:"required,hex_color"`
	Description string `json:"description" validate:"max=1000"`
}

// LimitIncreaseSubmission is the payload for filing a limit increase request.
type LimitIncreaseSubmission struct {
	ResourceClass  string `json:"resource_class" validate:"required,resource_class"`
	Kind           string `json:"kind" validate:"required,oneof=size count"`
	RequestedValue int64  `json:"requested_value" validate:"required"`
	Justification  string `json:"justification" validate:"required"`
}

// QuotaPolicyUpdateRequest replaces the per-class ceilings of a container's
// policy. Invoked by the administration review collaborator.
type QuotaPolicyUpdateRequest struct {
	Video    ClassLimitUpdate `json:"video" validate:"required"`
	Image    ClassLimitUpdate `json:"image" validate:"required"`
	Document ClassLimitUpdate `json:"document" validate:"required"`
}

type ClassLimitUpdate struct {
	MaxSizeMB int64 `json:"max_size_mb" validate:"gt=0"`
	MaxCount  int64 `json:"max_count" validate:"gt=0"`
}
