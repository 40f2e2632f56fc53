package mockapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/media"
	"catalog-admin/internal/product"

	"github.com/gin-gonic/gin"
)

const maxUploadMemory = 32 << 20

var yearPattern = regexp.MustCompile(`^\d{4}$`)

type Handler struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"message": message, "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func notFoundOr(c *gin.Context, err error, what string) {
	if errors.Is(err, ErrNotFound) {
		fail(c, http.StatusNotFound, what+" not found")
		return
	}
	fail(c, http.StatusInternalServerError, err.Error())
}

// files reads every part named field into media files, sniffing their
// types from the content.
func files(c *gin.Context, field string) ([]media.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	headers := form.File[field]
	out := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func readPart(fh *multipart.FileHeader) (media.File, error) {
	r, err := fh.Open()
	if err != nil {
		return media.File{}, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return media.File{}, err
	}
	return media.FromBytes(fh.Filename, data), nil
}

// images stores every uploaded image and returns their URLs. Non-images
// are rejected.
func (h *Handler) images(c *gin.Context) ([]string, error) {
	fs, err := files(c, "image")
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(fs))
	for _, f := range fs {
		if !f.IsImage() {
			return nil, fmt.Errorf("%s: %w", f.Name, media.ErrNotImage)
		}
		urls = append(urls, h.store.SaveUpload(f))
	}
	return urls, nil
}

// --- auth ---

func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Password == "" ||
		(empty(req.Email) && empty(req.PhoneNumber)) {
		fail(c, http.StatusBadRequest, "Name, password and an email or phone number are required")
		return
	}

	user, err := h.store.Register(req)
	if errors.Is(err, ErrUserExists) {
		fail(c, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", user)
}

func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.store.Authenticate(req)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	claims := auth.Claims{Name: user.Name, Role: user.Role}
	if user.Email != nil {
		claims.Email = *user.Email
	}
	if user.PhoneNumber != nil {
		claims.Phone = *user.PhoneNumber
	}
	token, err := auth.IssueToken(h.secret, user.ID, claims, h.tokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.TokenKey, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
	respond(c, http.StatusOK, "Login successful", auth.LoginResult{AccessToken: token, User: &user})
}

func empty(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// --- categories ---

func (h *Handler) ListCategories(c *gin.Context) {
	respond(c, http.StatusOK, "Categories retrieved successfully", h.store.Categories())
}

func (h *Handler) GetCategory(c *gin.Context) {
	cat, err := h.store.Category(c.Param("slug"))
	if err != nil {
		notFoundOr(c, err, "Category")
		return
	}
	respond(c, http.StatusOK, "Category retrieved successfully", cat)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if len(name) < 2 {
		fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	urls, err := h.images(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(urls) == 0 {
		fail(c, http.StatusBadRequest, "Category image is required")
		return
	}

	respond(c, http.StatusCreated, "Category created successfully", h.store.AddCategory(name, urls[0]))
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name != "" && len(name) < 2 {
		fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	urls, err := h.images(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	image := ""
	if len(urls) > 0 {
		image = urls[0]
	}

	cat, err := h.store.UpdateCategory(c.Param("slug"), name, image)
	if err != nil {
		notFoundOr(c, err, "Category")
		return
	}
	respond(c, http.StatusOK, "Category updated successfully", cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.store.DeleteCategory(c.Param("slug")); err != nil {
		notFoundOr(c, err, "Category")
		return
	}
	respond(c, http.StatusOK, "Category deleted successfully", nil)
}

// --- sub-categories ---

func (h *Handler) ListSubCategories(c *gin.Context) {
	respond(c, http.StatusOK, "Sub-categories retrieved successfully", h.store.SubCategories())
}

func (h *Handler) CreateSubCategory(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if len(strings.TrimSpace(req.Name)) < 2 || req.Category == "" {
		fail(c, http.StatusBadRequest, "Sub-category name and category are required")
		return
	}

	sc, err := h.store.AddSubCategory(strings.TrimSpace(req.Name), req.Category)
	if err != nil {
		notFoundOr(c, err, "Category")
		return
	}
	respond(c, http.StatusCreated, "Sub-category created successfully", sc)
}

// --- brands ---

func (h *Handler) ListBrands(c *gin.Context) {
	respond(c, http.StatusOK, "Brands retrieved successfully", h.store.Brands())
}

func (h *Handler) GetBrand(c *gin.Context) {
	b, err := h.store.Brand(c.Param("slug"))
	if err != nil {
		notFoundOr(c, err, "Brand")
		return
	}
	respond(c, http.StatusOK, "Brand retrieved successfully", b)
}

func (h *Handler) CreateBrand(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	since := strings.TrimSpace(c.PostForm("since"))
	if len(name) < 2 || !yearPattern.MatchString(since) {
		fail(c, http.StatusBadRequest, "Brand name and a four digit founding year are required")
		return
	}

	urls, err := h.images(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(urls) == 0 {
		fail(c, http.StatusBadRequest, "Brand image is required")
		return
	}

	respond(c, http.StatusCreated, "Brand created successfully", h.store.AddBrand(name, since, urls[0]))
}

func (h *Handler) UpdateBrand(c *gin.Context) {
	since := strings.TrimSpace(c.PostForm("since"))
	if since != "" && !yearPattern.MatchString(since) {
		fail(c, http.StatusBadRequest, "Enter a valid year")
		return
	}

	urls, err := h.images(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	image := ""
	if len(urls) > 0 {
		image = urls[0]
	}

	b, err := h.store.UpdateBrand(c.Param("slug"), strings.TrimSpace(c.PostForm("name")), since, image)
	if err != nil {
		notFoundOr(c, err, "Brand")
		return
	}
	respond(c, http.StatusOK, "Brand updated successfully", b)
}

func (h *Handler) DeleteBrand(c *gin.Context) {
	if err := h.store.DeleteBrand(c.Param("slug")); err != nil {
		notFoundOr(c, err, "Brand")
		return
	}
	respond(c, http.StatusOK, "Brand deleted successfully", nil)
}

// --- products ---

func (h *Handler) ListProducts(c *gin.Context) {
	t, err := catalog.ParseProductType(c.Query("productType"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	respond(c, http.StatusOK, "Products retrieved successfully", h.store.Products(t))
}

func (h *Handler) GetProduct(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		fail(c, http.StatusBadRequest, "slug is required")
		return
	}

	p, err := h.store.Product(slug)
	if err != nil {
		notFoundOr(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, "Product retrieved successfully", p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	p := product.Product{
		Name:                strings.TrimSpace(c.PostForm("name")),
		Description:         c.PostForm("description"),
		SKU:                 c.PostForm("sku"),
		Category:            catalog.ID(c.PostForm("category")),
		SubCategory:         catalog.ID(c.PostForm("subCategory")),
		Brand:               catalog.ID(c.PostForm("brand")),
		Unit:                c.PostForm("unit"),
		GroupUnit:           c.PostForm("groupUnit"),
		RetailPrice:         formNumber(c, "retailPrice"),
		WholesalePrice:      formNumber(c, "wholesalePrice"),
		StockQuantity:       formNumber(c, "stockQuantity"),
		IsActive:            c.PostForm("isActive") == "true",
		VarientType:         catalog.VariantType(c.PostForm("varientType")),
		ManufactureCountry:  c.PostForm("manufactureCountry"),
		WarrantyInformation: c.PostForm("warrantyInformation"),
		WarrantyExpires:     c.PostForm("warrantyexpires"),
		ShippingInformation: c.PostForm("shippingInformation"),
		Tag:                 c.PostFormArray("tag"),
	}

	if len(p.Name) < 2 || p.Category.ID == "" || p.SubCategory.ID == "" || p.Brand.ID == "" {
		fail(c, http.StatusBadRequest, "Name, category, sub-category and brand are required")
		return
	}
	if t := p.Type(); t == catalog.All {
		fail(c, http.StatusBadRequest, "varientType must be singleVarient or multipleVarient")
		return
	}

	urls, err := h.images(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if p.Type() == catalog.Single && len(urls) == 0 {
		fail(c, http.StatusBadRequest, "At least one image is required")
		return
	}
	p.Image = urls

	respond(c, http.StatusCreated, "Product created successfully", h.store.AddProduct(p))
}

func formNumber(c *gin.Context, field string) float64 {
	n, _ := strconv.ParseFloat(strings.TrimSpace(c.PostForm(field)), 64)
	return n
}

// productPatch holds the JSON fields an edit may change.
type productPatch struct {
	Name                *string   `json:"name"`
	Description         *string   `json:"description"`
	Category            *string   `json:"category"`
	SubCategory         *string   `json:"subCategory"`
	Brand               *string   `json:"brand"`
	RetailPrice         *float64  `json:"retailPrice"`
	WholesalePrice      *float64  `json:"wholesalePrice"`
	StockQuantity       *float64  `json:"stockQuantity"`
	IsActive            *bool     `json:"isActive"`
	ManufactureCountry  *string   `json:"manufactureCountry"`
	WarrantyInformation *string   `json:"warrantyInformation"`
	WarrantyExpires     *string   `json:"warrantyexpires"`
	ShippingInformation *string   `json:"shippingInformation"`
	Tag                 *[]string `json:"tag"`
}

func (pp productPatch) apply(p *product.Product) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Name, pp.Name)
	set(&p.Description, pp.Description)
	set(&p.ManufactureCountry, pp.ManufactureCountry)
	set(&p.WarrantyInformation, pp.WarrantyInformation)
	set(&p.WarrantyExpires, pp.WarrantyExpires)
	set(&p.ShippingInformation, pp.ShippingInformation)
	if pp.Category != nil {
		p.Category = catalog.ID(*pp.Category)
	}
	if pp.SubCategory != nil {
		p.SubCategory = catalog.ID(*pp.SubCategory)
	}
	if pp.Brand != nil {
		p.Brand = catalog.ID(*pp.Brand)
	}
	if pp.RetailPrice != nil {
		p.RetailPrice = *pp.RetailPrice
	}
	if pp.WholesalePrice != nil {
		p.WholesalePrice = *pp.WholesalePrice
	}
	if pp.StockQuantity != nil {
		p.StockQuantity = *pp.StockQuantity
	}
	if pp.IsActive != nil {
		p.IsActive = *pp.IsActive
	}
	if pp.Tag != nil {
		p.Tag = *pp.Tag
	}
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch productPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}
	if patch.Name != nil && len(strings.TrimSpace(*patch.Name)) < 2 {
		fail(c, http.StatusBadRequest, "Name must be at least 2 characters")
		return
	}

	p, err := h.store.UpdateProduct(c.Param("slug"), patch.apply)
	if err != nil {
		notFoundOr(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, "Product updated successfully", p)
}

// UploadProductImages replaces the product's images.
func (h *Handler) UploadProductImages(c *gin.Context) {
	urls, err := h.images(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(urls) == 0 {
		fail(c, http.StatusBadRequest, "At least one image is required")
		return
	}

	p, err := h.store.UpdateProduct(c.Param("slug"), func(p *product.Product) { p.Image = urls })
	if err != nil {
		notFoundOr(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, "Images uploaded successfully", p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.store.DeleteProduct(c.Param("slug")); err != nil {
		notFoundOr(c, err, "Product")
		return
	}
	respond(c, http.StatusOK, "Product deleted successfully", nil)
}

// Upload serves a stored file.
func (h *Handler) Upload(c *gin.Context) {
	f, ok := h.store.Upload(c.Param("name"))
	if !ok {
		fail(c, http.StatusNotFound, "File not found")
		return
	}
	c.Data(http.StatusOK, f.ContentType, f.Data)
}
