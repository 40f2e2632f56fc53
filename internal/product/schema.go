package product

import (
	"strconv"
	"strings"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/cascade"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/media"
	"catalog-admin/internal/validation"
)

// Units a single-variant product is sold in.
var (
	Units      = []string{"Piece", "Kg", "Gram", "Custom"}
	GroupUnits = []string{"Box", "Packet", "Dozen", "Custom"}
)

// SingleVariantForm is the create form for a single-variant product.
// Prices and quantity are raw text: empty means 0, anything else must
// parse as a number.
type SingleVariantForm struct {
	Name           string       `json:"name" validate:"min=2"`
	Description    string       `json:"description" validate:"min=10"`
	Category       string       `json:"category" validate:"required"`
	SubCategory    string       `json:"subCategory" validate:"required"`
	Brand          string       `json:"brand" validate:"required"`
	SKU            string       `json:"sku" validate:"required"`
	Unit           string       `json:"unit" validate:"oneof=Piece Kg Gram Custom"`
	GroupUnit      string       `json:"groupUnit" validate:"omitempty,oneof=Box Packet Dozen Custom"`
	RetailPrice    string       `json:"retailPrice" validate:"omitempty,numeric"`
	WholesalePrice string       `json:"wholesalePrice" validate:"omitempty,numeric"`
	StockQuantity  string       `json:"stockQuantity" validate:"omitempty,numeric"`
	Images         []media.File `json:"image" validate:"min=1,dive,image"`
	IsActive       bool         `json:"isActive"`
}

var singleMessages = validation.Messages{
	"name":        "Name must be at least 2 characters",
	"description": "Description must be at least 10 characters",
	"category":    "Category is required",
	"subCategory": "Sub-category is required",
	"brand":       "Brand is required",
	"sku":         "SKU is required",
	"image.min":   "At least one image is required",
}

// Multipart lays the form out the way the create endpoint expects: one
// part per scalar and one "image" part per file.
func (f SingleVariantForm) Multipart() *apiclient.Form {
	form := apiclient.NewForm().
		Field("name", f.Name).
		Field("description", f.Description).
		Field("category", f.Category).
		Field("subCategory", f.SubCategory).
		Field("brand", f.Brand).
		Field("sku", f.SKU).
		Field("unit", f.Unit).
		Field("retailPrice", number(f.RetailPrice)).
		Field("wholesalePrice", number(f.WholesalePrice)).
		Field("stockQuantity", number(f.StockQuantity)).
		Field("isActive", strconv.FormatBool(f.IsActive)).
		Field("varientType", string(catalog.SingleVariant))
	if f.GroupUnit != "" {
		form.Field("groupUnit", f.GroupUnit)
	}
	return form.Files("image", f.Images)
}

// MultipleVariantForm is the base record of a multiple-variant product.
type MultipleVariantForm struct {
	Name                string       `json:"name" validate:"min=2"`
	Description         string       `json:"description" validate:"min=10"`
	Category            string       `json:"category" validate:"required"`
	SubCategory         string       `json:"subCategory" validate:"required"`
	Brand               string       `json:"brand" validate:"required"`
	ManufactureCountry  string       `json:"manufactureCountry"`
	WarrantyInformation string       `json:"warrantyInformation"`
	WarrantyExpires     string       `json:"warrantyexpires"`
	ShippingInformation string       `json:"shippingInformation"`
	Tags                []string     `json:"tag"`
	Images              []media.File `json:"image" validate:"omitempty,dive,image"`
}

var multipleMessages = validation.Messages{
	"name":        "Name is required",
	"description": "Description is required",
	"category":    "Category is required",
	"subCategory": "Sub-category is required",
	"brand":       "Brand is required",
}

func (f MultipleVariantForm) Multipart() *apiclient.Form {
	form := apiclient.NewForm().
		Field("name", f.Name).
		Field("description", f.Description).
		Field("category", f.Category).
		Field("subCategory", f.SubCategory).
		Field("brand", f.Brand)

	optional := []struct{ name, value string }{
		{"manufactureCountry", f.ManufactureCountry},
		{"warrantyInformation", f.WarrantyInformation},
		{"warrantyexpires", f.WarrantyExpires},
		{"shippingInformation", f.ShippingInformation},
	}
	for _, o := range optional {
		if o.value != "" {
			form.Field(o.name, o.value)
		}
	}
	for _, tag := range f.Tags {
		form.Field("tag", tag)
	}

	form.Field("varientType", string(catalog.MultipleVariant))
	return form.Files("image", f.Images)
}

// Update is the JSON body for an edit of the base record.
func (f MultipleVariantForm) Update() MultipleUpdate {
	return MultipleUpdate{
		Name:                f.Name,
		Description:         f.Description,
		Category:            f.Category,
		SubCategory:         f.SubCategory,
		Brand:               f.Brand,
		ManufactureCountry:  f.ManufactureCountry,
		WarrantyInformation: f.WarrantyInformation,
		WarrantyExpires:     f.WarrantyExpires,
		ShippingInformation: f.ShippingInformation,
		Tag:                 f.Tags,
		VarientType:         catalog.MultipleVariant,
	}
}

// EditForm is the single-variant edit page. Fields go out as JSON.
type EditForm struct {
	Name          string `json:"name" validate:"min=2"`
	RetailPrice   string `json:"retailPrice" validate:"omitempty,numeric"`
	StockQuantity string `json:"stockQuantity" validate:"omitempty,numeric"`
	IsActive      bool   `json:"isActive"`
}

var editMessages = validation.Messages{
	"name": "Name must be at least 2 characters",
}

func (f EditForm) Update() SingleUpdate {
	return SingleUpdate{
		Name:          f.Name,
		RetailPrice:   validation.Number(f.RetailPrice),
		StockQuantity: validation.Number(f.StockQuantity),
		IsActive:      f.IsActive,
	}
}

// Select copies the selector's category and sub-category into the form.
func (f *SingleVariantForm) Select(sel *cascade.Selector) {
	f.Category, f.SubCategory = sel.Category(), sel.SubCategory()
}

func (f *MultipleVariantForm) Select(sel *cascade.Selector) {
	f.Category, f.SubCategory = sel.Category(), sel.SubCategory()
}

func number(s string) string {
	return strconv.FormatFloat(validation.Number(s), 'f', -1, 64)
}

// SplitTags turns "a, b,,c" into [a b c].
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type updateInput[T any] struct {
	Slug string
	Type catalog.ProductType
	Body T
}

type imagesInput struct {
	Slug   string
	Type   catalog.ProductType
	Images []media.File
}
