package product

import (
	"sort"
	"strconv"

	"catalog-admin/internal/cascade"
	"catalog-admin/internal/catalog"
)

// ToEditForm prefills the single-variant edit page from p.
func ToEditForm(p Product) EditForm {
	return EditForm{
		Name:          p.Name,
		RetailPrice:   formatNumber(p.RetailPrice),
		StockQuantity: formatNumber(p.StockQuantity),
		IsActive:      p.IsActive,
	}
}

// ToMultipleForm prefills the multiple-variant edit page from p. Populated
// references are reduced to their ids.
func ToMultipleForm(p Product) MultipleVariantForm {
	return MultipleVariantForm{
		Name:                p.Name,
		Description:         p.Description,
		Category:            p.Category.ID,
		SubCategory:         p.SubCategory.ID,
		Brand:               p.Brand.ID,
		ManufactureCountry:  p.ManufactureCountry,
		WarrantyInformation: p.WarrantyInformation,
		WarrantyExpires:     p.WarrantyExpires,
		ShippingInformation: p.ShippingInformation,
		Tags:                p.Tag,
	}
}

// Preset points sel at the product's current category and sub-category
// without clearing the sub-category.
func Preset(sel *cascade.Selector, p Product) {
	sel.Preset(p.Category.ID, p.SubCategory.ID)
}

// Recent returns up to n products, newest first. Products without a
// creation time sort last, in their original order.
func Recent(products []Product, n int) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt, out[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CountType counts products of type t; All counts everything.
func CountType(products []Product, t catalog.ProductType) int {
	if t == catalog.All {
		return len(products)
	}
	n := 0
	for _, p := range products {
		if p.Type() == t {
			n++
		}
	}
	return n
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
