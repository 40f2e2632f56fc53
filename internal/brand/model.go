package brand

import (
	"encoding/json"
	"time"
)

type Brand struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Since     json.Number `json:"since"`
	Image     string      `json:"image,omitempty"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
}
