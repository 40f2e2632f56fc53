package product

import (
	"context"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/hooks"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/media"
	"catalog-admin/internal/query"
	"catalog-admin/internal/router"

	"go.uber.org/zap"
)

// ListKey is [productType, "list"]; All is the unfiltered list.
func ListKey(t catalog.ProductType) query.Key {
	if t == "" {
		t = catalog.All
	}
	return query.Key{string(t), "list"}
}

func DetailKey(slug string) query.Key {
	return query.Key{"products", "detail", slug}
}

// affected lists the keys a write to a product of type t touches.
func affected(t catalog.ProductType, slug string) []query.Key {
	var keys []query.Key
	switch t {
	case catalog.Single, catalog.Multiple:
		keys = []query.Key{ListKey(t), ListKey(catalog.All)}
	default:
		// Type unknown to the caller: every list may hold the product.
		keys = []query.Key{ListKey(catalog.Single), ListKey(catalog.Multiple), ListKey(catalog.All)}
	}
	if slug != "" {
		keys = append(keys, DetailKey(slug))
	}
	return keys
}

func listRoute(t catalog.ProductType) string {
	if t == catalog.Multiple {
		return router.MultipleVariantList
	}
	return router.SingleVariantList
}

type Service interface {
	GetProducts(ctx context.Context, productType catalog.ProductType) ([]Product, error)
	GetProduct(ctx context.Context, slug string) (*Product, error)
	ListQuery(productType catalog.ProductType) *query.Observer[[]Product]
	DetailQuery(slug string) *query.Observer[*Product]
	CreateSingle(ctx context.Context, form SingleVariantForm) (*Product, error)
	CreateMultiple(ctx context.Context, form MultipleVariantForm) (*Product, error)
	UpdateSingle(ctx context.Context, slug string, form EditForm) (*Product, error)
	UpdateMultiple(ctx context.Context, slug string, form MultipleVariantForm) (*Product, error)
	UploadImages(ctx context.Context, slug string, productType catalog.ProductType, images []media.File) (*Product, error)
	DeleteProduct(ctx context.Context, slug string, productType catalog.ProductType) error
	Pending() bool
}

type createInput struct {
	Type catalog.ProductType
	Form *apiclient.Form
}

type service struct {
	repo Repository
	env  hooks.Env

	create *query.Mutation[createInput, apiclient.Envelope[*Product]]
	update *query.Mutation[updateInput[any], apiclient.Envelope[*Product]]
	upload *query.Mutation[imagesInput, apiclient.Envelope[*Product]]
	remove *query.Mutation[updateInput[struct{}], apiclient.Ack]
}

func NewService(repo Repository, env hooks.Env) Service {
	s := &service{repo: repo, env: env}

	s.create = hooks.NewMutation(env, hooks.Effects[createInput]{
		Name:    "CreateProduct",
		Success: "Product created successfully",
		Failure: "Failed to create product",
		Invalidate: func(in createInput) []query.Key {
			return affected(in.Type, "")
		},
		Redirect: func(in createInput) string {
			return listRoute(in.Type)
		},
	}, func(ctx context.Context, in createInput) (apiclient.Envelope[*Product], error) {
		return repo.CreateProduct(ctx, in.Form)
	})

	s.update = hooks.NewMutation(env, hooks.Effects[updateInput[any]]{
		Name:    "UpdateProduct",
		Success: "Product updated successfully",
		Failure: "Failed to update product",
		Invalidate: func(in updateInput[any]) []query.Key {
			return affected(in.Type, in.Slug)
		},
		Redirect: func(in updateInput[any]) string {
			return listRoute(in.Type)
		},
	}, func(ctx context.Context, in updateInput[any]) (apiclient.Envelope[*Product], error) {
		return repo.UpdateProduct(ctx, in.Slug, in.Body)
	})

	s.upload = hooks.NewMutation(env, hooks.Effects[imagesInput]{
		Name:    "UploadProductImages",
		Success: "Images uploaded successfully",
		Failure: "Failed to upload images",
		Invalidate: func(in imagesInput) []query.Key {
			return affected(in.Type, in.Slug)
		},
	}, func(ctx context.Context, in imagesInput) (apiclient.Envelope[*Product], error) {
		return repo.UploadImages(ctx, in.Slug, in.Images)
	})

	s.remove = hooks.NewMutation(env, hooks.Effects[updateInput[struct{}]]{
		Name:    "DeleteProduct",
		Success: "Product deleted successfully",
		Failure: "Failed to delete product",
		Invalidate: func(in updateInput[struct{}]) []query.Key {
			return affected(in.Type, in.Slug)
		},
	}, func(ctx context.Context, in updateInput[struct{}]) (apiclient.Ack, error) {
		return repo.DeleteProduct(ctx, in.Slug)
	})

	return s
}

func (s *service) listFetch(t catalog.ProductType) query.FetchFunc[[]Product] {
	return func(ctx context.Context) ([]Product, error) {
		return s.repo.GetProducts(ctx, t)
	}
}

func (s *service) detailFetch(slug string) query.FetchFunc[*Product] {
	return func(ctx context.Context) (*Product, error) {
		return s.repo.GetProduct(ctx, slug)
	}
}

func (s *service) GetProducts(ctx context.Context, productType catalog.ProductType) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProducts"),
		zap.String("product_type", string(productType)),
	)
	log.Info("GetProducts started")

	products, err := query.Fetch(ctx, s.env.Queries, ListKey(productType), s.listFetch(productType))
	if err != nil {
		log.Error("failed to get products", zap.Error(err))
		return nil, err
	}

	log.Info("GetProducts success", zap.Int("count", len(products)))
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, slug string) (*Product, error) {
	if slug == "" {
		return nil, query.ErrDisabled
	}

	p, err := query.Fetch(ctx, s.env.Queries, DetailKey(slug), s.detailFetch(slug))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product",
			zap.String("layer", "service"),
			zap.String("slug", slug),
			zap.Error(err),
		)
		return nil, err
	}
	return p, nil
}

func (s *service) ListQuery(productType catalog.ProductType) *query.Observer[[]Product] {
	return query.NewObserver(s.env.Queries, ListKey(productType), s.listFetch(productType))
}

func (s *service) DetailQuery(slug string) *query.Observer[*Product] {
	return query.NewObserver(s.env.Queries, DetailKey(slug), s.detailFetch(slug), query.Enabled(slug != ""))
}

func (s *service) CreateSingle(ctx context.Context, form SingleVariantForm) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateSingle"),
		zap.String("sku", form.SKU),
	)
	log.Info("CreateSingle started")

	if err := s.env.Validate(form, singleMessages); err != nil {
		log.Warn("single variant form invalid", zap.Error(err))
		return nil, err
	}

	images, err := s.env.Optimize(form.Images...)
	if err != nil {
		log.Error("failed to prepare images", zap.Error(err))
		return nil, err
	}
	form.Images = images

	env, err := s.create.Mutate(ctx, createInput{Type: catalog.Single, Form: form.Multipart()})
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("CreateSingle success")
	return env.Data, nil
}

func (s *service) CreateMultiple(ctx context.Context, form MultipleVariantForm) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateMultiple"),
		zap.String("name", form.Name),
	)
	log.Info("CreateMultiple started")

	if err := s.env.Validate(form, multipleMessages); err != nil {
		log.Warn("multiple variant form invalid", zap.Error(err))
		return nil, err
	}

	images, err := s.env.Optimize(form.Images...)
	if err != nil {
		log.Error("failed to prepare images", zap.Error(err))
		return nil, err
	}
	form.Images = images

	env, err := s.create.Mutate(ctx, createInput{Type: catalog.Multiple, Form: form.Multipart()})
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("CreateMultiple success")
	return env.Data, nil
}

func (s *service) UpdateSingle(ctx context.Context, slug string, form EditForm) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateSingle"),
		zap.String("slug", slug),
	)
	log.Info("UpdateSingle started")

	if err := s.env.Validate(form, editMessages); err != nil {
		log.Warn("edit form invalid", zap.Error(err))
		return nil, err
	}

	env, err := s.update.Mutate(ctx, updateInput[any]{Slug: slug, Type: catalog.Single, Body: form.Update()})
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateSingle success")
	return env.Data, nil
}

// UpdateMultiple sends the base record only; images go through UploadImages.
func (s *service) UpdateMultiple(ctx context.Context, slug string, form MultipleVariantForm) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateMultiple"),
		zap.String("slug", slug),
	)
	log.Info("UpdateMultiple started")

	form.Images = nil
	if err := s.env.Validate(form, multipleMessages); err != nil {
		log.Warn("multiple variant form invalid", zap.Error(err))
		return nil, err
	}

	env, err := s.update.Mutate(ctx, updateInput[any]{Slug: slug, Type: catalog.Multiple, Body: form.Update()})
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateMultiple success")
	return env.Data, nil
}

func (s *service) UploadImages(ctx context.Context, slug string, productType catalog.ProductType, images []media.File) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UploadImages"),
		zap.String("slug", slug),
		zap.Int("count", len(images)),
	)
	log.Info("UploadImages started")

	if len(images) == 0 {
		return nil, ErrNoImages
	}
	for _, img := range images {
		if !img.IsImage() {
			log.Warn("rejected non-image upload", zap.String("file", img.Name))
			return nil, media.ErrNotImage
		}
	}

	images, err := s.env.Optimize(images...)
	if err != nil {
		log.Error("failed to prepare images", zap.Error(err))
		return nil, err
	}

	env, err := s.upload.Mutate(ctx, imagesInput{Slug: slug, Type: productType, Images: images})
	if err != nil {
		log.Error("failed to upload images", zap.Error(err))
		return nil, err
	}

	log.Info("UploadImages success")
	return env.Data, nil
}

// DeleteProduct removes the product and refreshes the list it was shown in.
func (s *service) DeleteProduct(ctx context.Context, slug string, productType catalog.ProductType) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.String("slug", slug),
	)
	log.Info("DeleteProduct started")

	if _, err := s.remove.Mutate(ctx, updateInput[struct{}]{Slug: slug, Type: productType}); err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	log.Info("DeleteProduct success")
	return nil
}

func (s *service) Pending() bool {
	return s.create.IsPending() || s.update.IsPending() || s.upload.IsPending() || s.remove.IsPending()
}
