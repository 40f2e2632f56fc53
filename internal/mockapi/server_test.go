package mockapi

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/auth"
	"catalog-admin/internal/brand"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/category"
	"catalog-admin/internal/media"
	"catalog-admin/internal/product"
	"catalog-admin/internal/subcategory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func pngFile(t *testing.T, name string) media.File {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return media.FromBytes(name, buf.Bytes())
}

type backend struct {
	server *Server
	url    string
	tokens *auth.MemoryStore
	api    *apiclient.Client
}

func newBackend(t *testing.T, opts Options) *backend {
	t.Helper()
	if opts.Secret == nil {
		opts.Secret = secret
	}

	s, err := New(opts)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	tokens := &auth.MemoryStore{}
	return &backend{
		server: s,
		url:    srv.URL,
		tokens: tokens,
		api:    apiclient.New(srv.URL+BasePath, apiclient.WithTokenSource(tokens)),
	}
}

func str(s string) *string { return &s }

func (b *backend) login(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	repo := auth.NewRepository(b.api)

	_, err := repo.Register(ctx, auth.RegisterRequest{Name: "Admin", Email: str("admin@shop.test"), Password: "secret123"})
	require.NoError(t, err)

	env, err := repo.Login(ctx, auth.LoginRequest{Email: str("admin@shop.test"), Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, b.tokens.SetToken(env.Data.AccessToken))
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestAuth(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t, Options{TokenTTL: time.Hour})
	repo := auth.NewRepository(b.api)

	user, err := repo.Register(ctx, auth.RegisterRequest{Name: "Rahim", PhoneNumber: str("01712345678"), Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Rahim", user.Data.Name)
	assert.Equal(t, "User registered successfully", user.Message)

	_, err = repo.Register(ctx, auth.RegisterRequest{Name: "Other", PhoneNumber: str("01712345678"), Password: "secret123"})
	assert.Equal(t, http.StatusConflict, apiclient.StatusCode(err))

	_, err = repo.Register(ctx, auth.RegisterRequest{Name: "Nobody", Password: "secret123"})
	assert.Equal(t, http.StatusBadRequest, apiclient.StatusCode(err))

	_, err = repo.Login(ctx, auth.LoginRequest{PhoneNumber: str("01712345678"), Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))
	assert.Equal(t, "Invalid credentials", apiclient.Message(err, ""))

	env, err := repo.Login(ctx, auth.LoginRequest{PhoneNumber: str("01712345678"), Password: "secret123"})
	require.NoError(t, err)

	claims, err := auth.VerifyToken(secret, env.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Rahim", claims.Name)
	assert.Equal(t, "01712345678", claims.Phone)
	assert.Equal(t, user.Data.ID, claims.Subject)
	assert.False(t, claims.Expired(time.Now()))
}

func TestMutationsRequireToken(t *testing.T) {
	b := newBackend(t, Options{})

	_, err := category.NewRepository(b.api).AddCategory(context.Background(), "Phones", pngFile(t, "p.png"))
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

	require.NoError(t, b.tokens.SetToken("not-a-jwt"))
	_, err = category.NewRepository(b.api).AddCategory(context.Background(), "Phones", pngFile(t, "p.png"))
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))
	assert.Equal(t, "Invalid or expired token", apiclient.Message(err, ""))
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t, Options{TokenTTL: time.Hour})
	b.login(t)

	categories := category.NewRepository(b.api)
	subcategories := subcategory.NewRepository(b.api)
	brands := brand.NewRepository(b.api)
	products := product.NewRepository(b.api)

	// category + sub-category
	created, err := categories.AddCategory(ctx, "Mobile Phones", pngFile(t, "phones.png"))
	require.NoError(t, err)
	assert.Equal(t, "mobile-phones", created.Data.Slug)
	assert.Contains(t, created.Data.Image, "/uploads/")

	sub, err := subcategories.AddSubCategory(ctx, subcategory.CreateRequest{Name: "Android", Category: created.Data.ID})
	require.NoError(t, err)
	assert.Equal(t, "Mobile Phones", sub.Data.Category.Name)

	cat, err := categories.GetCategory(ctx, "mobile-phones")
	require.NoError(t, err)
	require.Len(t, cat.SubCategory, 1)
	assert.Equal(t, "Android", cat.SubCategory[0].Name)

	renamed, err := categories.UpdateCategory(ctx, "mobile-phones", "Phones", nil)
	require.NoError(t, err)
	assert.Equal(t, "Phones", renamed.Data.Name)
	assert.Equal(t, "mobile-phones", renamed.Data.Slug)
	assert.Equal(t, created.Data.Image, renamed.Data.Image)
	assert.Len(t, renamed.Data.SubCategory, 1)

	_, err = subcategories.AddSubCategory(ctx, subcategory.CreateRequest{Name: "Orphan", Category: "missing"})
	assert.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))

	// brand
	br, err := brands.AddBrand(ctx, "Xiaomi", "2010", pngFile(t, "mi.png"))
	require.NoError(t, err)
	assert.Equal(t, "2010", br.Data.Since.String())

	updated, err := brands.UpdateBrand(ctx, br.Data.Slug, "Xiaomi Inc", "2010", nil)
	require.NoError(t, err)
	assert.Equal(t, "Xiaomi Inc", updated.Data.Name)
	assert.Equal(t, br.Data.Image, updated.Data.Image)

	// product
	form := product.SingleVariantForm{
		Name: "Redmi Note 13", Description: "AMOLED display, 8GB RAM",
		Category: created.Data.ID, SubCategory: sub.Data.ID, Brand: br.Data.ID,
		SKU: "RN13", Unit: "Piece", RetailPrice: "25999", StockQuantity: "10",
		Images:   []media.File{pngFile(t, "a.png"), pngFile(t, "b.png")},
		IsActive: true,
	}
	p, err := products.CreateProduct(ctx, form.Multipart())
	require.NoError(t, err)
	assert.Len(t, p.Data.Image, 2)

	single, err := products.GetProducts(ctx, catalog.Single)
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "Xiaomi Inc", single[0].Brand.Name)
	assert.Equal(t, "Android", single[0].SubCategory.Label())
	assert.Equal(t, 25999.0, single[0].RetailPrice)

	multiple, err := products.GetProducts(ctx, catalog.Multiple)
	require.NoError(t, err)
	assert.Empty(t, multiple)

	edit := product.EditForm{Name: "Redmi Note 13 Pro", RetailPrice: "27999", StockQuantity: "3"}
	_, err = products.UpdateProduct(ctx, p.Data.Slug, edit.Update())
	require.NoError(t, err)

	_, err = products.UploadImages(ctx, p.Data.Slug, []media.File{pngFile(t, "c.png")})
	require.NoError(t, err)

	got, err := products.GetProduct(ctx, p.Data.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Redmi Note 13 Pro", got.Name)
	assert.Equal(t, 3.0, got.StockQuantity)
	assert.False(t, got.IsActive)
	require.Len(t, got.Image, 1)

	resp, err := http.Get(b.url + got.Image[0])
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	// deletes
	_, err = products.DeleteProduct(ctx, p.Data.Slug)
	require.NoError(t, err)
	_, err = products.GetProduct(ctx, p.Data.Slug)
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	_, err = brands.DeleteBrand(ctx, br.Data.Slug)
	require.NoError(t, err)
	_, err = categories.DeleteCategory(ctx, "mobile-phones")
	require.NoError(t, err)

	subs, err := subcategories.GetSubCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestCreateRejectsNonImages(t *testing.T) {
	b := newBackend(t, Options{})
	b.login(t)

	txt := media.FromBytes("notes.txt", []byte("plain text"))
	_, err := category.NewRepository(b.api).AddCategory(context.Background(), "Phones", txt)

	assert.Equal(t, http.StatusBadRequest, apiclient.StatusCode(err))
}

func TestDuplicateNamesGetDistinctSlugs(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t, Options{})
	b.login(t)
	brands := brand.NewRepository(b.api)

	first, err := brands.AddBrand(ctx, "Walton", "1977", pngFile(t, "w.png"))
	require.NoError(t, err)
	second, err := brands.AddBrand(ctx, "Walton", "1977", pngFile(t, "w.png"))
	require.NoError(t, err)

	assert.Equal(t, "walton", first.Data.Slug)
	assert.NotEqual(t, first.Data.Slug, second.Data.Slug)
	assert.Contains(t, second.Data.Slug, "walton-")
}

func TestRateLimit(t *testing.T) {
	b := newBackend(t, Options{RateLimit: 0.001, RateBurst: 1})
	repo := brand.NewRepository(b.api)

	_, err := repo.GetBrands(context.Background())
	require.NoError(t, err)

	_, err = repo.GetBrands(context.Background())
	assert.Equal(t, http.StatusTooManyRequests, apiclient.StatusCode(err))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "mobile-phones", Slugify("  Mobile   Phones "))
	assert.Equal(t, "a-b-c", Slugify("A & B -- C!"))
	assert.Equal(t, "", Slugify("!!!"))
}
