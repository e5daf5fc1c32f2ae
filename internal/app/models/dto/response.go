package dto

import "time"

// APIResponse is the envelope of every successful response
type APIResponse struct {
	Success    bool            `json:"success" example:"true"`
	Message    string          `json:"message,omitempty" example:"Schools retrieved successfully"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Error      *ErrorDetail    `json:"error,omitempty"`
	Timestamp  time.Time       `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// PaginationInfo describes the window of a list response
type PaginationInfo struct {
	Skip  int   `json:"skip" example:"0"`
	Limit int   `json:"limit" example:"100"`
	Total int64 `json:"total" example:"42"`
	Count int   `json:"count" example:"42"`
}

// NewAPIResponse creates a successful response carrying data
func NewAPIResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewListResponse creates a successful response for one page of items
func NewListResponse(data interface{}, pagination PaginationInfo, message string) APIResponse {
	resp := NewAPIResponse(data, message)
	resp.Pagination = &pagination
	return resp
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}
