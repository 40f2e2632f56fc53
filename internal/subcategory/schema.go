package subcategory

import "catalog-admin/internal/validation"

type CreateForm struct {
	Name     string `json:"name" validate:"min=2"`
	Category string `json:"category" validate:"required"`
}

var createMessages = validation.Messages{
	"name":     "Sub-category name is required",
	"category": "Category is required",
}

func (f CreateForm) Request() CreateRequest {
	return CreateRequest{Name: f.Name, Category: f.Category}
}
