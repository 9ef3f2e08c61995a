package common

// ErrorResponse is the body rendered for every failed request
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Info    string `json:"info,omitempty"`
}

// SuccessResponse wraps every successful payload
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      interface{}         `json:"items"`
	Pagination *PaginationResponse `json:"pagination"`
}
