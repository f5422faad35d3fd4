package model

// Category groups products in the catalog. Names are unique; deleting a
// category cascades to its products at the storage layer.
type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
