package brand

import (
	"catalog-admin/internal/media"
	"catalog-admin/internal/validation"
)

type CreateForm struct {
	Name  string     `json:"name" validate:"min=2"`
	Since string     `json:"since" validate:"year4,realyear"`
	Image media.File `json:"image" validate:"required,image"`
}

// UpdateForm is the edit page: the image may be left unchanged.
type UpdateForm struct {
	Name  string      `json:"name" validate:"min=2"`
	Since string      `json:"since" validate:"year4,realyear"`
	Image *media.File `json:"image" validate:"omitempty,image"`
}

var formMessages = validation.Messages{
	"name":           "Brand name is required",
	"since.year4":    "Enter a valid year",
	"since.realyear": "Year must be realistic",
	"image.required": "Image is required",
	"image.image":    "Only image files are allowed",
}

type updateInput struct {
	Slug string
	Form UpdateForm
}
