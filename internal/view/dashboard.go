package view

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"catalog-admin/internal/brand"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/category"
	"catalog-admin/internal/product"
)

const (
	WelcomeTitle = "Welcome to your Dashboard"
	WelcomeText  = "Start by creating your first category or product"
	recentCount  = 5
)

type StatCard struct {
	Title string `json:"title" yaml:"title"`
	Value int    `json:"value" yaml:"value"`
}

type Dashboard struct {
	Cards  []StatCard        `json:"cards" yaml:"cards"`
	Recent []product.Product `json:"recent" yaml:"recent"`
}

// NewDashboard summarises the three collections the home page loads.
func NewDashboard(products []product.Product, categories []category.Category, brands []brand.Brand) Dashboard {
	return Dashboard{
		Cards: []StatCard{
			{Title: "Total Products", Value: len(products)},
			{Title: "Categories", Value: len(categories)},
			{Title: "Brands", Value: len(brands)},
			{Title: "Single Variant", Value: product.CountType(products, catalog.Single)},
		},
		Recent: product.Recent(products, recentCount),
	}
}

// Empty reports whether every card is zero.
func (d Dashboard) Empty() bool {
	for _, c := range d.Cards {
		if c.Value > 0 {
			return false
		}
	}
	return true
}

func RenderDashboard(r *Renderer, d Dashboard) error {
	if ok, err := r.Data(d); ok {
		return err
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, c := range d.Cards {
		fmt.Fprintf(tw, "%s\t%d\n", c.Title, c.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(r.w)

	if d.Empty() {
		_, err := fmt.Fprintf(r.w, "%s\n%s\n", WelcomeTitle, WelcomeText)
		return err
	}

	fmt.Fprintln(r.w, "Recent Products")
	tw = tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSUB-CATEGORY\tBRAND\tVARIANT\tDATE")
	for _, p := range d.Recent {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			orPlaceholder(p.Name),
			p.SubCategory.Label(),
			p.Brand.Label(),
			variant(p),
			orPlaceholder(date(p.CreatedAt)),
		)
	}
	return tw.Flush()
}

func variant(p product.Product) string {
	if t := p.Type(); t != catalog.All {
		return string(t)
	}
	return string(catalog.Single)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
