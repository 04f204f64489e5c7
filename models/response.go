package models

// APIResponse is the envelope of paginated listings served by the admin API.
type APIResponse[T any] struct {
	Page     *Page `json:"page"`
	Elements []T   `json:"elements"`
}
