package models

import "time"

type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
	Total      int `json:"total,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
}

// QuotaReport is the payload of the usage endpoint: current policy ceilings
// alongside the counts recomputed from the catalog.
type QuotaReport struct {
	Policy *QuotaPolicy `json:"policy"`
	Usage  *UsageStats  `json:"usage"`
}

type UploadResponse struct {
	Document *Document `json:"document"`
}
