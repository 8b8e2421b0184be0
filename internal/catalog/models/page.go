package models

// Pagination describes where a page sits within the filtered sequence.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// List is the envelope of a bounded list, whose size is capped by construction.
type List[T any] struct {
	Data []T `json:"data"`
}

// Data wraps a single derived value, such as the megamenu, in the response envelope.
type Data[T any] struct {
	Data T `json:"data"`
}
