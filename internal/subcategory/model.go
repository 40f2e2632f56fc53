package subcategory

import (
	"time"

	"catalog-admin/internal/catalog"
)

type SubCategory struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Category  catalog.Ref `json:"category"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
}

// CreateRequest is sent as JSON.
type CreateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}
