package models

// ItemResponse is the envelope the API uses for a single resource.
type ItemResponse[T any] struct {
	Item T `json:"item"`
}

// ItemsResponse is the envelope the API uses for a collection.
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}
