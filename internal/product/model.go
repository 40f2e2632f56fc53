package product

import (
	"time"

	"catalog-admin/internal/catalog"
)

// Variant is one purchasable configuration of a multiple-variant product.
type Variant struct {
	ID            string  `json:"_id,omitempty"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity float64 `json:"stockQuantity"`
	Image         string  `json:"image,omitempty"`
}

type Product struct {
	ID                  string              `json:"_id"`
	Name                string              `json:"name"`
	Slug                string              `json:"slug"`
	Description         string              `json:"description,omitempty"`
	SKU                 string              `json:"sku,omitempty"`
	Category            catalog.Ref         `json:"category"`
	SubCategory         catalog.Ref         `json:"subCategory"`
	Brand               catalog.Ref         `json:"brand"`
	Unit                string              `json:"unit,omitempty"`
	GroupUnit           string              `json:"groupUnit,omitempty"`
	RetailPrice         float64             `json:"retailPrice"`
	WholesalePrice      float64             `json:"wholesalePrice"`
	StockQuantity       float64             `json:"stockQuantity"`
	MinimumQuantity     float64             `json:"minimumQuantity,omitempty"`
	Image               []string            `json:"image"`
	IsActive            bool                `json:"isActive"`
	VarientType         catalog.VariantType `json:"varientType"`
	ManufactureCountry  string              `json:"manufactureCountry,omitempty"`
	WarrantyInformation string              `json:"warrantyInformation,omitempty"`
	WarrantyExpires     string              `json:"warrantyexpires,omitempty"`
	ShippingInformation string              `json:"shippingInformation,omitempty"`
	AvailabilityStatus  string              `json:"availabilityStatus,omitempty"`
	Tag                 []string            `json:"tag,omitempty"`
	Variants            []Variant           `json:"variants,omitempty"`
	CreatedAt           *time.Time          `json:"createdAt,omitempty"`
}

// Type is the list the product belongs to.
func (p Product) Type() catalog.ProductType {
	return catalog.TypeOf(p.VarientType)
}

// Cover is the first image, empty when there is none.
func (p Product) Cover() string {
	if len(p.Image) == 0 {
		return ""
	}
	return p.Image[0]
}

// SingleUpdate is the JSON body of a single-variant edit.
type SingleUpdate struct {
	Name          string  `json:"name"`
	RetailPrice   float64 `json:"retailPrice"`
	StockQuantity float64 `json:"stockQuantity"`
	IsActive      bool    `json:"isActive"`
}

// MultipleUpdate is the JSON body of a multiple-variant edit.
type MultipleUpdate struct {
	Name                string              `json:"name"`
	Description         string              `json:"description"`
	Category            string              `json:"category"`
	SubCategory         string              `json:"subCategory"`
	Brand               string              `json:"brand"`
	ManufactureCountry  string              `json:"manufactureCountry,omitempty"`
	WarrantyInformation string              `json:"warrantyInformation,omitempty"`
	WarrantyExpires     string              `json:"warrantyexpires,omitempty"`
	ShippingInformation string              `json:"shippingInformation,omitempty"`
	Tag                 []string            `json:"tag,omitempty"`
	VarientType         catalog.VariantType `json:"varientType"`
}
