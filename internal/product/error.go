package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoImages        = errors.New("at least one image is required")
	ErrAllProductType  = errors.New("product type must be single or multiple")
)
