package category

import "catalog-admin/internal/cascade"

// ToCascade turns the category collection into selector options.
func ToCascade(categories []Category) []cascade.Category {
	out := make([]cascade.Category, 0, len(categories))
	for _, c := range categories {
		subs := make([]cascade.Option, 0, len(c.SubCategory))
		for _, sc := range c.SubCategory {
			subs = append(subs, cascade.Option{ID: sc.ID, Name: sc.Name})
		}
		out = append(out, cascade.Category{
			Option:        cascade.Option{ID: c.ID, Name: c.Name},
			SubCategories: subs,
		})
	}
	return out
}
