package router

type MenuItem struct {
	Title string
	URL   string
}

type Section struct {
	Title string
	URL   string
	Items []MenuItem
}

// Sidebar is the navigation tree of the dashboard. Settings entries have
// no page yet and point at "#".
func Sidebar() []Section {
	return []Section{
		{Title: "Category", URL: "#", Items: []MenuItem{
			{Title: "Create-Category", URL: CreateCategory},
			{Title: "Category-List", URL: CategoryList},
		}},
		{Title: "Sub-Category", URL: "#", Items: []MenuItem{
			{Title: "Create-SubCategory", URL: CreateSubCategory},
			{Title: "SubCategory-List", URL: SubCategoryList},
		}},
		{Title: "Brand", URL: "#", Items: []MenuItem{
			{Title: "Create-Brand", URL: CreateBrand},
			{Title: "Brand-List", URL: BrandList},
		}},
		{Title: "Single Variant", URL: "#", Items: []MenuItem{
			{Title: "Create-Single-Variant", URL: CreateSingleVariant},
			{Title: "Single-Variant-List", URL: SingleVariantList},
		}},
		{Title: "Multiple Variant", URL: "#", Items: []MenuItem{
			{Title: "Create-Multiple-Variant", URL: CreateMultipleVariant},
			{Title: "Multiple-Variant-List", URL: MultipleVariantList},
		}},
		{Title: "Settings", URL: "#", Items: []MenuItem{
			{Title: "General", URL: "#"},
			{Title: "Team", URL: "#"},
			{Title: "Billing", URL: "#"},
			{Title: "Limits", URL: "#"},
		}},
	}
}

// Find returns the sidebar section and item that link to route.
func Find(route string) (Section, MenuItem, bool) {
	for _, s := range Sidebar() {
		for _, it := range s.Items {
			if it.URL == route {
				return s, it, true
			}
		}
	}
	return Section{}, MenuItem{}, false
}
