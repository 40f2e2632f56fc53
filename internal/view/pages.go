package view

import (
	"strings"
	"time"

	"catalog-admin/internal/brand"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/category"
	"catalog-admin/internal/product"
	"catalog-admin/internal/query"
	"catalog-admin/internal/subcategory"
)

const (
	NoCategories    = "No categories found"
	NoSubCategories = "No sub-categories found"
	NoBrands        = "No brands found"
	NoProducts      = "No products found"
	NoMultiple      = "No products found. What about adding some?"
)

func Categories(r *Renderer, res query.Result[[]category.Category]) error {
	return List(r, res, Columns[category.Category]{
		Headers:  []string{"NAME", "SLUG", "SUB-CATEGORIES", "IMAGE"},
		Empty:    NoCategories,
		Fallback: "Failed to load categories",
		Row: func(c category.Category) []string {
			names := make([]string, 0, len(c.SubCategory))
			for _, s := range c.SubCategory {
				names = append(names, s.Name)
			}
			return []string{c.Name, c.Slug, orPlaceholder(strings.Join(names, ", ")), orPlaceholder(c.Image)}
		},
	})
}

func SubCategories(r *Renderer, res query.Result[[]subcategory.SubCategory]) error {
	return List(r, res, Columns[subcategory.SubCategory]{
		Headers:  []string{"SUB CATEGORY", "CATEGORY", "SLUG"},
		Empty:    NoSubCategories,
		Fallback: "Failed to load sub-categories",
		Row: func(s subcategory.SubCategory) []string {
			return []string{s.Name, s.Category.Label(), orPlaceholder(s.Slug)}
		},
	})
}

func Brands(r *Renderer, res query.Result[[]brand.Brand]) error {
	return List(r, res, Columns[brand.Brand]{
		Headers:  []string{"BRAND NAME", "SINCE", "SLUG", "LOGO"},
		Empty:    NoBrands,
		Fallback: "Failed to load brands",
		Row: func(b brand.Brand) []string {
			return []string{b.Name, orPlaceholder(b.Since.String()), b.Slug, orPlaceholder(b.Image)}
		},
	})
}

// Products renders the list page for t. The multiple-variant page has its
// own empty text.
func Products(r *Renderer, t catalog.ProductType, res query.Result[[]product.Product]) error {
	empty := NoProducts
	if t == catalog.Multiple {
		empty = NoMultiple
	}

	return List(r, res, Columns[product.Product]{
		Headers:    []string{"PRODUCT NAME", "SLUG", "CATEGORY", "BRAND", "PRICE", "STOCK", "ACTIVE"},
		Empty:      empty,
		ErrorTitle: "Failed to load products",
		Fallback:   "Please try again later.",
		Row: func(p product.Product) []string {
			return []string{
				p.Name,
				p.Slug,
				p.Category.Label(),
				p.Brand.Label(),
				number(p.RetailPrice),
				number(p.StockQuantity),
				yesNo(p.IsActive),
			}
		},
	})
}

func BrandDetail(r *Renderer, b *brand.Brand) error {
	return Detail(r, b, []Field{
		{"Name", b.Name},
		{"Slug", b.Slug},
		{"Since", b.Since.String()},
		{"Logo", b.Image},
		{"Created", date(b.CreatedAt)},
	})
}

func ProductDetail(r *Renderer, p *product.Product) error {
	fields := []Field{
		{"Name", p.Name},
		{"Slug", p.Slug},
		{"Type", string(p.Type())},
		{"Description", p.Description},
		{"SKU", p.SKU},
		{"Category", p.Category.Label()},
		{"Sub-category", p.SubCategory.Label()},
		{"Brand", p.Brand.Label()},
		{"Unit", unit(p)},
		{"Retail price", number(p.RetailPrice)},
		{"Wholesale price", number(p.WholesalePrice)},
		{"Stock", number(p.StockQuantity)},
		{"Active", yesNo(p.IsActive)},
		{"Images", strings.Join(p.Image, ", ")},
	}

	if p.Type() == catalog.Multiple {
		fields = append(fields,
			Field{"Manufacture country", p.ManufactureCountry},
			Field{"Warranty", p.WarrantyInformation},
			Field{"Warranty expires", p.WarrantyExpires},
			Field{"Shipping", p.ShippingInformation},
			Field{"Tags", strings.Join(p.Tag, ", ")},
		)
		for _, v := range p.Variants {
			fields = append(fields, Field{"Variant " + v.Name, number(v.Price) + " x " + number(v.StockQuantity)})
		}
	}
	fields = append(fields, Field{"Created", date(p.CreatedAt)})

	return Detail(r, p, fields)
}

func unit(p *product.Product) string {
	if p.GroupUnit == "" {
		return p.Unit
	}
	return p.Unit + " / " + p.GroupUnit
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
