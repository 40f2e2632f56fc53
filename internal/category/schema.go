package category

import (
	"catalog-admin/internal/media"
	"catalog-admin/internal/validation"
)

type CreateForm struct {
	Name  string     `json:"name" validate:"min=2"`
	Image media.File `json:"image" validate:"required,image"`
}

// UpdateForm keeps the current image when Image is nil.
type UpdateForm struct {
	Name  string      `json:"name" validate:"min=2"`
	Image *media.File `json:"image" validate:"omitempty,image"`
}

var createMessages = validation.Messages{
	"name":           "Name must be at least 2 characters",
	"image.required": "Image is required",
	"image.image":    "Only image files are allowed",
}

var updateMessages = validation.Messages{
	"name":        "Name must be at least 2 characters",
	"image.image": "Only image files are allowed",
}

type updateInput struct {
	Slug string
	Form UpdateForm
}
