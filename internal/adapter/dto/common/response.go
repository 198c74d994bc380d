package common

// ErrorResponse is the error envelope written by handler.HandleError
type ErrorResponse struct {
	Code    int               `json:"code" example:"3000"`
	Message string            `json:"message" example:"Transcript not found"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse is the success envelope written by handler.HandleSuccess
type SuccessResponse struct {
	Code    int         `json:"code" example:"200"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginationRequest represents common paging query parameters
type PaginationRequest struct {
	Page     int `query:"page" json:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
}

// Normalize fills in default paging values
func (p *PaginationRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
}

// Offset returns the row offset of the current page
func (p PaginationRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

// NewPagination builds pagination metadata for a page of results
func NewPagination(page, pageSize int, total int64) *PaginationResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PaginationResponse{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}
}
