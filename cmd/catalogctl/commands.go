package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/brand"
	"catalog-admin/internal/cascade"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/category"
	"catalog-admin/internal/media"
	"catalog-admin/internal/product"
	"catalog-admin/internal/router"
	"catalog-admin/internal/subcategory"
	"catalog-admin/internal/view"

	"golang.org/x/sync/errgroup"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	id := fs.String("id", "", "email or phone number")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	_, err := a.auth.Login(ctx, auth.LoginForm{Identifier: *id, Password: *password})
	return err
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "password, at least 8 characters")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	_, err := a.auth.Register(ctx, auth.RegistrationForm{
		Name:        *name,
		Email:       *email,
		PhoneNumber: *phone,
		Password:    *password,
	})
	return err
}

func (a *app) whoami(ctx context.Context) error {
	claims, err := a.auth.WhoAmI(ctx)
	if err != nil && !errors.Is(err, auth.ErrTokenExpired) {
		return err
	}

	expires := ""
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time.Format(time.RFC3339)
	}
	if rerr := view.Detail(a.renderer(), claims, []view.Field{
		{Label: "Subject", Value: claims.Subject},
		{Label: "Name", Value: claims.Name},
		{Label: "Email", Value: claims.Email},
		{Label: "Phone", Value: claims.Phone},
		{Label: "Role", Value: claims.Role},
		{Label: "Expires", Value: expires},
	}); rerr != nil {
		return rerr
	}

	if err != nil {
		a.toast.Warning("Your session has expired, please log in again")
	}
	return err
}

// dashboard loads the three collections the home page summarises in
// parallel; any failure fails the page.
func (a *app) dashboard(ctx context.Context) error {
	var (
		products   []product.Product
		categories []category.Category
		brands     []brand.Brand
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = a.products.GetProducts(gctx, catalog.All)
		return err
	})
	g.Go(func() (err error) {
		categories, err = a.categories.GetCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		brands, err = a.brands.GetBrands(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return view.RenderDashboard(a.renderer(), view.NewDashboard(products, categories, brands))
}

func (a *app) menu() error {
	r := a.renderer()
	sections := router.Sidebar()
	if ok, err := r.Data(sections); ok {
		return err
	}

	for _, s := range sections {
		fmt.Fprintln(a.out, s.Title)
		for _, it := range s.Items {
			fmt.Fprintf(a.out, "  %-24s %s\n", it.Title, it.URL)
		}
	}
	return nil
}

func (a *app) category(ctx context.Context, args []string) error {
	sub, args, err := a.subcommand("category", args)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		obs := a.categories.ListQuery()
		defer obs.Unmount()
		return view.Categories(a.renderer(), obs.Mount(ctx))

	case "get":
		slug, _, err := a.slugArg("category get", args)
		if err != nil {
			return err
		}
		c, err := a.categories.GetCategory(ctx, slug)
		if err != nil {
			return err
		}
		subs := make([]string, 0, len(c.SubCategory))
		for _, s := range c.SubCategory {
			subs = append(subs, s.Name)
		}
		return view.Detail(a.renderer(), c, []view.Field{
			{Label: "Name", Value: c.Name},
			{Label: "Slug", Value: c.Slug},
			{Label: "Image", Value: c.Image},
			{Label: "Sub-categories", Value: strings.Join(subs, ", ")},
		})

	case "create":
		fs := a.flags("category create")
		name := fs.String("name", "", "category name")
		image := fs.String("image", "", "path to the category image")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		form := category.CreateForm{Name: *name}
		if *image != "" {
			if form.Image, err = media.Open(*image); err != nil {
				return err
			}
		}
		_, err = a.categories.AddCategory(ctx, form)
		return err

	case "update":
		slug, args, err := a.slugArg("category update", args)
		if err != nil {
			return err
		}
		current, err := a.categories.GetCategory(ctx, slug)
		if err != nil {
			return err
		}

		fs := a.flags("category update")
		name := fs.String("name", current.Name, "category name")
		image := fs.String("image", "", "path to a new image; the current one is kept when empty")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}

		form := category.UpdateForm{Name: *name}
		if *image != "" {
			f, err := media.Open(*image)
			if err != nil {
				return err
			}
			form.Image = &f
		}
		_, err = a.categories.UpdateCategory(ctx, slug, form)
		return err

	case "delete":
		slug, _, err := a.slugArg("category delete", args)
		if err != nil {
			return err
		}
		return a.categories.DeleteCategory(ctx, slug)

	default:
		return a.unknown("category", sub)
	}
}

func (a *app) subcategory(ctx context.Context, args []string) error {
	sub, args, err := a.subcommand("subcategory", args)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		obs := a.subcategories.ListQuery()
		defer obs.Unmount()
		return view.SubCategories(a.renderer(), obs.Mount(ctx))

	case "create":
		fs := a.flags("subcategory create")
		name := fs.String("name", "", "sub-category name")
		parent := fs.String("category", "", "parent category id, slug or name")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}

		categoryID := *parent
		if categoryID != "" {
			categories, err := a.categories.GetCategories(ctx)
			if err != nil {
				return err
			}
			categoryID = resolveCategory(categories, categoryID)
		}
		_, err = a.subcategories.AddSubCategory(ctx, subcategory.CreateForm{Name: *name, Category: categoryID})
		return err

	default:
		return a.unknown("subcategory", sub)
	}
}

func (a *app) brand(ctx context.Context, args []string) error {
	sub, args, err := a.subcommand("brand", args)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		obs := a.brands.ListQuery()
		defer obs.Unmount()
		return view.Brands(a.renderer(), obs.Mount(ctx))

	case "get":
		slug, _, err := a.slugArg("brand get", args)
		if err != nil {
			return err
		}
		b, err := a.brands.GetBrand(ctx, slug)
		if err != nil {
			return err
		}
		return view.BrandDetail(a.renderer(), b)

	case "create":
		fs := a.flags("brand create")
		name := fs.String("name", "", "brand name")
		since := fs.String("since", "", "founding year, four digits")
		image := fs.String("image", "", "path to the brand logo")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		form := brand.CreateForm{Name: *name, Since: *since}
		if *image != "" {
			if form.Image, err = media.Open(*image); err != nil {
				return err
			}
		}
		_, err = a.brands.AddBrand(ctx, form)
		return err

	case "update":
		slug, args, err := a.slugArg("brand update", args)
		if err != nil {
			return err
		}
		current, err := a.brands.GetBrand(ctx, slug)
		if err != nil {
			return err
		}

		fs := a.flags("brand update")
		name := fs.String("name", current.Name, "brand name")
		since := fs.String("since", current.Since.String(), "founding year, four digits")
		image := fs.String("image", "", "path to a new logo; the current one is kept when empty")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}

		form := brand.UpdateForm{Name: *name, Since: *since}
		if *image != "" {
			f, err := media.Open(*image)
			if err != nil {
				return err
			}
			form.Image = &f
		}
		_, err = a.brands.UpdateBrand(ctx, slug, form)
		return err

	case "delete":
		slug, _, err := a.slugArg("brand delete", args)
		if err != nil {
			return err
		}
		return a.brands.DeleteBrand(ctx, slug)

	default:
		return a.unknown("brand", sub)
	}
}

func (a *app) product(ctx context.Context, args []string) error {
	sub, args, err := a.subcommand("product", args)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		fs := a.flags("product list")
		kind := fs.String("type", string(catalog.All), "single, multiple or all")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		t, err := catalog.ParseProductType(*kind)
		if err != nil {
			return err
		}
		obs := a.products.ListQuery(t)
		defer obs.Unmount()
		return view.Products(a.renderer(), t, obs.Mount(ctx))

	case "get":
		slug, _, err := a.slugArg("product get", args)
		if err != nil {
			return err
		}
		p, err := a.products.GetProduct(ctx, slug)
		if err != nil {
			return err
		}
		return view.ProductDetail(a.renderer(), p)

	case "create-single":
		return a.createSingle(ctx, args)
	case "create-multiple":
		return a.createMultiple(ctx, args)
	case "update":
		return a.updateProduct(ctx, args)

	case "upload":
		slug, args, err := a.slugArg("product upload", args)
		if err != nil {
			return err
		}
		fs := a.flags("product upload")
		kind := fs.String("type", string(catalog.All), "product type whose lists are refreshed")
		images := fs.String("images", "", "comma separated image paths")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		t, err := catalog.ParseProductType(*kind)
		if err != nil {
			return err
		}
		files, err := media.OpenAll(splitPaths(*images))
		if err != nil {
			return err
		}
		_, err = a.products.UploadImages(ctx, slug, t, files)
		return err

	case "delete":
		slug, args, err := a.slugArg("product delete", args)
		if err != nil {
			return err
		}
		fs := a.flags("product delete")
		kind := fs.String("type", string(catalog.All), "product type whose lists are refreshed")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		t, err := catalog.ParseProductType(*kind)
		if err != nil {
			return err
		}
		return a.products.DeleteProduct(ctx, slug, t)

	default:
		return a.unknown("product", sub)
	}
}

// catalogFlags are the placement fields both create forms share.
type catalogFlags struct {
	category    *string
	subCategory *string
	brand       *string
}

func addCatalogFlags(fs *flag.FlagSet, defaults product.Product) catalogFlags {
	return catalogFlags{
		category:    fs.String("category", defaults.Category.ID, "category id, slug or name"),
		subCategory: fs.String("subcategory", defaults.SubCategory.ID, "sub-category id, slug or name"),
		brand:       fs.String("brand", defaults.Brand.ID, "brand id, slug or name"),
	}
}

// placement resolves the catalog flags into ids, running the category
// through the cascading selector so a sub-category from another category
// is rejected before anything is sent.
func (a *app) placement(ctx context.Context, current *product.Product, f catalogFlags) (*cascade.Selector, string, error) {
	var (
		categories []category.Category
		brands     []brand.Brand
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = a.categories.GetCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		brands, err = a.brands.GetBrands(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	sel := cascade.NewSelector()
	sel.SetCategories(category.ToCascade(categories))

	categoryID := resolveCategory(categories, *f.category)
	subID := resolveSubCategory(categories, categoryID, *f.subCategory)
	if current != nil && categoryID == current.Category.ID {
		product.Preset(sel, *current)
	} else {
		sel.SelectCategory(categoryID)
	}
	if categoryID != "" && subID != sel.SubCategory() {
		if err := sel.SelectSubCategory(subID); err != nil {
			return nil, "", fmt.Errorf("sub-category %q: %w", *f.subCategory, err)
		}
	}

	return sel, resolveBrand(brands, *f.brand), nil
}

func (a *app) createSingle(ctx context.Context, args []string) error {
	fs := a.flags("product create-single")
	place := addCatalogFlags(fs, product.Product{})
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	sku := fs.String("sku", "", "stock keeping unit")
	unit := fs.String("unit", product.Units[0], "unit: "+strings.Join(product.Units, ", "))
	groupUnit := fs.String("group-unit", "", "group unit: "+strings.Join(product.GroupUnits, ", "))
	retail := fs.String("price", "", "retail price")
	wholesale := fs.String("wholesale", "", "wholesale price")
	stock := fs.String("stock", "", "stock quantity")
	active := fs.Bool("active", true, "list the product as active")
	images := fs.String("images", "", "comma separated image paths")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	files, err := media.OpenAll(splitPaths(*images))
	if err != nil {
		return err
	}
	sel, brandID, err := a.placement(ctx, nil, place)
	if err != nil {
		return err
	}

	form := product.SingleVariantForm{
		Name:           *name,
		Description:    *description,
		Brand:          brandID,
		SKU:            *sku,
		Unit:           *unit,
		GroupUnit:      *groupUnit,
		RetailPrice:    *retail,
		WholesalePrice: *wholesale,
		StockQuantity:  *stock,
		Images:         files,
		IsActive:       *active,
	}
	form.Select(sel)

	_, err = a.products.CreateSingle(ctx, form)
	return err
}

func (a *app) createMultiple(ctx context.Context, args []string) error {
	fs := a.flags("product create-multiple")
	place := addCatalogFlags(fs, product.Product{})
	form := multipleFlags(fs, product.MultipleVariantForm{})
	images := fs.String("images", "", "comma separated image paths")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	files, err := media.OpenAll(splitPaths(*images))
	if err != nil {
		return err
	}
	sel, brandID, err := a.placement(ctx, nil, place)
	if err != nil {
		return err
	}

	f := form()
	f.Brand = brandID
	f.Images = files
	f.Select(sel)

	_, err = a.products.CreateMultiple(ctx, f)
	return err
}

// multipleFlags registers the base-record fields of a multiple-variant
// product, defaulting to base, and returns a func building the form once
// the flags are parsed.
func multipleFlags(fs *flag.FlagSet, base product.MultipleVariantForm) func() product.MultipleVariantForm {
	name := fs.String("name", base.Name, "product name")
	description := fs.String("description", base.Description, "product description")
	country := fs.String("country", base.ManufactureCountry, "manufacture country")
	warranty := fs.String("warranty", base.WarrantyInformation, "warranty information")
	expires := fs.String("warranty-expires", base.WarrantyExpires, "warranty expiry")
	shipping := fs.String("shipping", base.ShippingInformation, "shipping information")
	tags := fs.String("tags", strings.Join(base.Tags, ","), "comma separated tags")

	return func() product.MultipleVariantForm {
		return product.MultipleVariantForm{
			Name:                *name,
			Description:         *description,
			ManufactureCountry:  *country,
			WarrantyInformation: *warranty,
			WarrantyExpires:     *expires,
			ShippingInformation: *shipping,
			Tags:                product.SplitTags(*tags),
		}
	}
}

// updateProduct edits a product in place: flags default to its current
// values, and the product's own variant decides which edit page applies.
func (a *app) updateProduct(ctx context.Context, args []string) error {
	slug, args, err := a.slugArg("product update", args)
	if err != nil {
		return err
	}
	current, err := a.products.GetProduct(ctx, slug)
	if err != nil {
		return err
	}

	fs := a.flags("product update")
	if current.Type() == catalog.Multiple {
		place := addCatalogFlags(fs, *current)
		form := multipleFlags(fs, product.ToMultipleForm(*current))
		if err := fs.Parse(args); err != nil {
			return errUsage
		}

		sel, brandID, err := a.placement(ctx, current, place)
		if err != nil {
			return err
		}
		f := form()
		f.Brand = brandID
		f.Select(sel)

		_, err = a.products.UpdateMultiple(ctx, slug, f)
		return err
	}

	edit := product.ToEditForm(*current)
	name := fs.String("name", edit.Name, "product name")
	retail := fs.String("price", edit.RetailPrice, "retail price")
	stock := fs.String("stock", edit.StockQuantity, "stock quantity")
	active := fs.Bool("active", edit.IsActive, "list the product as active")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	_, err = a.products.UpdateSingle(ctx, slug, product.EditForm{
		Name:          *name,
		RetailPrice:   *retail,
		StockQuantity: *stock,
		IsActive:      *active,
	})
	return err
}

func splitPaths(s string) []string {
	return product.SplitTags(s)
}

// resolveCategory maps an id, slug or name to the category id. Unknown
// values pass through so the backend can judge them.
func resolveCategory(categories []category.Category, ref string) string {
	for _, c := range categories {
		if c.ID == ref || c.Slug == ref || strings.EqualFold(c.Name, ref) {
			return c.ID
		}
	}
	return ref
}

func resolveSubCategory(categories []category.Category, categoryID, ref string) string {
	for _, c := range categories {
		if c.ID != categoryID {
			continue
		}
		for _, s := range c.SubCategory {
			if s.ID == ref || (s.Slug != "" && s.Slug == ref) || strings.EqualFold(s.Name, ref) {
				return s.ID
			}
		}
	}
	return ref
}

func resolveBrand(brands []brand.Brand, ref string) string {
	for _, b := range brands {
		if b.ID == ref || b.Slug == ref || strings.EqualFold(b.Name, ref) {
			return b.ID
		}
	}
	return ref
}
