package models

import "encoding/json"

// APIResponse is the envelope the backend wraps every JSON body in. Data is
// kept raw so each call site can decode it into its own type; all fields are
// optional reads, the client never fails on a missing envelope field.
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *APIErrorBody   `json:"error"`
}

type APIErrorBody struct {
	Type   string         `json:"type"`
	Detail APIErrorDetail `json:"detail"`
}

type APIErrorDetail struct {
	Message string `json:"message"`
}

// ErrorMessage digs the most specific human-readable message out of the
// envelope, falling back to the top-level message.
func (r *APIResponse) ErrorMessage() string {
	if r == nil {
		return ""
	}
	if r.Error != nil && r.Error.Detail.Message != "" {
		return r.Error.Detail.Message
	}
	return r.Message
}

// Metadata is the pagination block returned by list endpoints.
type Metadata struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type ProductList struct {
	Products []Product `json:"products"`
	Metadata Metadata  `json:"metadata"`
}

type BlogList struct {
	Blogs    []Blog   `json:"blogs"`
	Metadata Metadata `json:"metadata"`
}
