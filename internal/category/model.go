package category

import "time"

type Category struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Image       string        `json:"image,omitempty"`
	SubCategory []SubCategory `json:"subCategory"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`
}

// SubCategory is the embedded summary carried by a category.
type SubCategory struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
