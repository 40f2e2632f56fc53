package product

import (
	"context"
	"testing"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/hooks"
	"catalog-admin/internal/media"
	"catalog-admin/internal/notify"
	"catalog-admin/internal/query"
	"catalog-admin/internal/router"
	"catalog-admin/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProducts(ctx context.Context, productType catalog.ProductType) ([]Product, error) {
	args := m.Called(ctx, productType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetProduct(ctx context.Context, slug string) (*Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) CreateProduct(ctx context.Context, form *apiclient.Form) (apiclient.Envelope[*Product], error) {
	args := m.Called(ctx, form)
	return args.Get(0).(apiclient.Envelope[*Product]), args.Error(1)
}

func (m *MockRepository) UpdateProduct(ctx context.Context, slug string, body any) (apiclient.Envelope[*Product], error) {
	args := m.Called(ctx, slug, body)
	return args.Get(0).(apiclient.Envelope[*Product]), args.Error(1)
}

func (m *MockRepository) UploadImages(ctx context.Context, slug string, images []media.File) (apiclient.Envelope[*Product], error) {
	args := m.Called(ctx, slug, images)
	return args.Get(0).(apiclient.Envelope[*Product]), args.Error(1)
}

func (m *MockRepository) DeleteProduct(ctx context.Context, slug string) (apiclient.Ack, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

type fixture struct {
	repo    *MockRepository
	queries *query.Client
	toasts  *notify.Recorder
	history *router.History
	svc     Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    new(MockRepository),
		queries: query.NewClient(query.Options{}),
		toasts:  &notify.Recorder{},
		history: router.NewHistory(router.Home),
	}
	f.svc = NewService(f.repo, hooks.Env{
		Queries: f.queries,
		Toast:   notify.NewToaster(f.toasts),
		Nav:     f.history,
	})
	return f
}

var photo = media.File{Name: "redmi.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

func validSingle() SingleVariantForm {
	return SingleVariantForm{
		Name:          "Redmi Note 13",
		Description:   "6.67 inch AMOLED, 8GB RAM",
		Category:      "c1",
		SubCategory:   "s1",
		Brand:         "b1",
		SKU:           "RN13-8-256",
		Unit:          "Piece",
		RetailPrice:   "25999",
		StockQuantity: "",
		Images:        []media.File{photo},
		IsActive:      true,
	}
}

// --- Tests ---

func TestService_GetProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Lists are cached per type", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetProducts", mock.Anything, catalog.Single).Return([]Product{{Slug: "a"}}, nil).Once()
		f.repo.On("GetProducts", mock.Anything, catalog.Multiple).Return([]Product{}, nil).Once()

		single, err := f.svc.GetProducts(ctx, catalog.Single)
		require.NoError(t, err)
		_, err = f.svc.GetProducts(ctx, catalog.Single)
		require.NoError(t, err)
		multiple, err := f.svc.GetProducts(ctx, catalog.Multiple)
		require.NoError(t, err)

		assert.Len(t, single, 1)
		assert.Empty(t, multiple)
		f.repo.AssertNumberOfCalls(t, "GetProducts", 2)
	})

	t.Run("Empty list is success, not error", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetProducts", mock.Anything, catalog.Single).Return([]Product{}, nil)

		o := f.svc.ListQuery(catalog.Single)
		res := o.Mount(ctx)
		defer o.Unmount()

		assert.True(t, res.IsSuccess())
		assert.Empty(t, res.Data)
	})
}

func TestService_GetProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.GetProduct(ctx, "")
	assert.ErrorIs(t, err, query.ErrDisabled)

	f.repo.On("GetProduct", mock.Anything, "redmi").Return(&Product{Slug: "redmi"}, nil).Once()
	p, err := f.svc.GetProduct(ctx, "redmi")
	require.NoError(t, err)
	assert.Equal(t, "redmi", p.Slug)

	cached, ok, _ := query.GetData[*Product](f.queries, DetailKey("redmi"))
	assert.True(t, ok)
	assert.Same(t, p, cached)
}

func TestService_CreateSingle(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		query.SetData(f.queries, ListKey(catalog.Single), []Product{})
		query.SetData(f.queries, ListKey(catalog.All), []Product{})
		query.SetData(f.queries, ListKey(catalog.Multiple), []Product{})

		var sent *apiclient.Form
		f.repo.On("CreateProduct", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*apiclient.Form) }).
			Return(apiclient.Envelope[*Product]{Message: "Product created", Data: &Product{ID: "p1"}}, nil)

		p, err := f.svc.CreateSingle(ctx, validSingle())

		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		require.NotNil(t, sent)
		values := sent.Values()
		assert.Equal(t, []string{"singleVarient"}, values["varientType"])
		assert.Equal(t, []string{"0"}, values["stockQuantity"])
		assert.Equal(t, []string{"25999"}, values["retailPrice"])
		assert.Equal(t, 1, sent.FileCount())

		_, single, _ := query.GetData[[]Product](f.queries, ListKey(catalog.Single))
		_, all, _ := query.GetData[[]Product](f.queries, ListKey(catalog.All))
		_, multiple, _ := query.GetData[[]Product](f.queries, ListKey(catalog.Multiple))
		assert.False(t, single)
		assert.False(t, all)
		assert.True(t, multiple)
		assert.Equal(t, router.SingleVariantList, f.history.Current())
	})

	t.Run("No images blocks submit", func(t *testing.T) {
		f := newFixture()
		form := validSingle()
		form.Images = nil

		_, err := f.svc.CreateSingle(ctx, form)

		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "At least one image is required", errs.Field("image"))
		f.repo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Bad fields", func(t *testing.T) {
		f := newFixture()
		form := validSingle()
		form.Unit = "Litre"
		form.WholesalePrice = "cheap"
		form.Description = "short"
		form.SubCategory = ""

		_, err := f.svc.CreateSingle(ctx, form)

		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "unit must be one of: Piece, Kg, Gram, Custom", errs.Field("unit"))
		assert.Equal(t, "wholesalePrice must be a number", errs.Field("wholesalePrice"))
		assert.Equal(t, "Description must be at least 10 characters", errs.Field("description"))
		assert.Equal(t, "Sub-category is required", errs.Field("subCategory"))
	})
}

func TestService_CreateMultiple(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	var sent *apiclient.Form
	f.repo.On("CreateProduct", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*apiclient.Form) }).
		Return(apiclient.Envelope[*Product]{Data: &Product{ID: "p2"}}, nil)

	_, err := f.svc.CreateMultiple(ctx, MultipleVariantForm{
		Name:        "Galaxy S24",
		Description: "Flagship with several storage options",
		Category:    "c1",
		SubCategory: "s1",
		Brand:       "b2",
		Tags:        []string{"5g", "android"},
	})

	require.NoError(t, err)
	values := sent.Values()
	assert.Equal(t, []string{"multipleVarient"}, values["varientType"])
	assert.Equal(t, []string{"5g", "android"}, values["tag"])
	assert.NotContains(t, values, "manufactureCountry")
	assert.Equal(t, router.MultipleVariantList, f.history.Current())
	toast, _ := f.toasts.Last()
	assert.Equal(t, "Product created successfully", toast.Message)
}

func TestService_UpdateSingle(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends JSON fields", func(t *testing.T) {
		f := newFixture()
		query.SetData(f.queries, DetailKey("redmi"), &Product{Slug: "redmi"})
		f.repo.On("UpdateProduct", mock.Anything, "redmi", SingleUpdate{
			Name: "Redmi Note 13 Pro", RetailPrice: 27999, StockQuantity: 4, IsActive: false,
		}).Return(apiclient.Envelope[*Product]{Data: &Product{Slug: "redmi"}}, nil)

		_, err := f.svc.UpdateSingle(ctx, "redmi", EditForm{Name: "Redmi Note 13 Pro", RetailPrice: "27999", StockQuantity: "4"})

		require.NoError(t, err)
		_, cached, _ := query.GetData[*Product](f.queries, DetailKey("redmi"))
		assert.False(t, cached)
		assert.Equal(t, router.SingleVariantList, f.history.Current())
		f.repo.AssertExpectations(t)
	})

	t.Run("Non-numeric price", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateSingle(ctx, "redmi", EditForm{Name: "Redmi", RetailPrice: "12a"})

		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "retailPrice must be a number", errs.Field("retailPrice"))
	})
}

func TestService_UpdateMultiple(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	form := MultipleVariantForm{
		Name: "Galaxy S24", Description: "Flagship with several storage options",
		Category: "c1", SubCategory: "s1", Brand: "b2",
		Images: []media.File{photo},
	}
	f.repo.On("UpdateProduct", mock.Anything, "galaxy-s24", form.Update()).
		Return(apiclient.Envelope[*Product]{Message: "Updated", Data: &Product{}}, nil)

	_, err := f.svc.UpdateMultiple(ctx, "galaxy-s24", form)

	require.NoError(t, err)
	assert.Equal(t, router.MultipleVariantList, f.history.Current())
	toast, _ := f.toasts.Last()
	assert.Equal(t, "Updated", toast.Message)
}

func TestService_UploadImages(t *testing.T) {
	ctx := context.Background()

	t.Run("Nothing selected", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UploadImages(ctx, "redmi", catalog.Single, nil)
		assert.ErrorIs(t, err, ErrNoImages)
		f.repo.AssertNotCalled(t, "UploadImages", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Non-image", func(t *testing.T) {
		f := newFixture()
		doc := media.File{Name: "spec.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
		_, err := f.svc.UploadImages(ctx, "redmi", catalog.Single, []media.File{doc})
		assert.ErrorIs(t, err, media.ErrNotImage)
	})

	t.Run("Success stays on page", func(t *testing.T) {
		f := newFixture()
		f.repo.On("UploadImages", mock.Anything, "redmi", []media.File{photo}).
			Return(apiclient.Envelope[*Product]{Data: &Product{Image: []string{"u1"}}}, nil)

		p, err := f.svc.UploadImages(ctx, "redmi", catalog.Single, []media.File{photo})

		require.NoError(t, err)
		assert.Equal(t, "u1", p.Cover())
		assert.Equal(t, router.Home, f.history.Current())
	})
}

func TestService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	query.SetData(f.queries, ListKey(catalog.Multiple), []Product{{Slug: "galaxy"}})
	f.repo.On("DeleteProduct", mock.Anything, "galaxy").Return(apiclient.Ack{}, &apiclient.Error{Status: 404, Message: "Product not found"}).Once()
	f.repo.On("DeleteProduct", mock.Anything, "galaxy").Return(apiclient.Ack{Message: "Deleted"}, nil).Once()

	err := f.svc.DeleteProduct(ctx, "galaxy", catalog.Multiple)
	assert.Error(t, err)
	toast, _ := f.toasts.Last()
	assert.Equal(t, "Product not found", toast.Message)
	_, cached, _ := query.GetData[[]Product](f.queries, ListKey(catalog.Multiple))
	assert.True(t, cached)

	require.NoError(t, f.svc.DeleteProduct(ctx, "galaxy", catalog.Multiple))
	_, cached, _ = query.GetData[[]Product](f.queries, ListKey(catalog.Multiple))
	assert.False(t, cached)
	assert.False(t, f.svc.Pending())
}

func TestListKey(t *testing.T) {
	assert.Equal(t, query.Key{"single", "list"}, ListKey(catalog.Single))
	assert.Equal(t, query.Key{"all", "list"}, ListKey(""))
	assert.Len(t, affected(catalog.Single, ""), 2)
	assert.ElementsMatch(t, []query.Key{
		ListKey(catalog.Single), ListKey(catalog.Multiple), ListKey(catalog.All), DetailKey("x"),
	}, affected(catalog.All, "x"))
	assert.ElementsMatch(t, affected(catalog.All, ""), affected("", ""))
}

func TestService_DeleteProduct_AnyType(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.repo.On("GetProducts", mock.Anything, catalog.Single).Return([]Product{{Slug: "phone"}}, nil).Once()
	f.repo.On("GetProducts", mock.Anything, catalog.Single).Return([]Product{}, nil).Once()
	f.repo.On("DeleteProduct", mock.Anything, "phone").Return(apiclient.Ack{Message: "Deleted"}, nil).Once()

	before, err := f.svc.GetProducts(ctx, catalog.Single)
	require.NoError(t, err)
	require.Len(t, before, 1)

	require.NoError(t, f.svc.DeleteProduct(ctx, "phone", catalog.All))

	after, err := f.svc.GetProducts(ctx, catalog.Single)
	require.NoError(t, err)
	assert.Empty(t, after)
	f.repo.AssertNumberOfCalls(t, "GetProducts", 2)
}
