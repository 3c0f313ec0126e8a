package models

import "time"

// Pagination mirrors the summary the list endpoint returns for the requested
// page. It is always replaced together with the product collection.
type Pagination struct {
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	HasPre      bool `json:"has_pre"`
	HasNext     bool `json:"has_next"`
}

// ProductPage is one successfully fetched page: products plus their
// pagination summary, decoded from a single response.
type ProductPage struct {
	Products   []Product
	Pagination Pagination
}

// LoginResult is a successful signin: the session token and its expiry.
type LoginResult struct {
	Token   string
	Expired time.Time
}
