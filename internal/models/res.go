package models

// ApiResponse is the envelope every JSON endpoint returns. Page, Limit and
// Total are set only on paginated listings such as the place directory.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Page    int         `json:"page,omitempty"`
	Limit   int         `json:"limit,omitempty"`
	Total   int         `json:"total,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

// PaginatedResponse wraps one page of a listing. Total counts the rows that
// matched before the page window was applied, so clients can tell how many
// pages exist.
func PaginatedResponse(data interface{}, page, limit, total int) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Page:    page,
		Limit:   limit,
		Total:   total,
	}
}
