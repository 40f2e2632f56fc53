package product

import (
	"context"
	"net/url"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/media"
)

type Repository interface {
	GetProducts(ctx context.Context, productType catalog.ProductType) ([]Product, error)
	GetProduct(ctx context.Context, slug string) (*Product, error)
	CreateProduct(ctx context.Context, form *apiclient.Form) (apiclient.Envelope[*Product], error)
	UpdateProduct(ctx context.Context, slug string, body any) (apiclient.Envelope[*Product], error)
	UploadImages(ctx context.Context, slug string, images []media.File) (apiclient.Envelope[*Product], error)
	DeleteProduct(ctx context.Context, slug string) (apiclient.Ack, error)
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

// GetProducts lists products; All sends no filter.
func (r *repository) GetProducts(ctx context.Context, productType catalog.ProductType) ([]Product, error) {
	q := url.Values{}
	if productType != catalog.All && productType != "" {
		q.Set("productType", string(productType))
	}

	resp, err := r.api.Get(ctx, "/product/getall-products", q)
	if err != nil {
		return nil, err
	}

	env, err := apiclient.DecodeEnvelope[[]Product](resp)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []Product{}, nil
	}
	return env.Data, nil
}

func (r *repository) GetProduct(ctx context.Context, slug string) (*Product, error) {
	if _, err := apiclient.PathParam(slug); err != nil {
		return nil, err
	}

	resp, err := r.api.Get(ctx, "/product/single-product", url.Values{"slug": {slug}})
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	env, err := apiclient.DecodeEnvelope[*Product](resp)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, ErrProductNotFound
	}
	return env.Data, nil
}

func (r *repository) CreateProduct(ctx context.Context, form *apiclient.Form) (apiclient.Envelope[*Product], error) {
	resp, err := r.api.Post(ctx, "/product/create-product", form)
	if err != nil {
		return apiclient.Envelope[*Product]{}, err
	}
	return apiclient.DecodeEnvelope[*Product](resp)
}

func (r *repository) UpdateProduct(ctx context.Context, slug string, body any) (apiclient.Envelope[*Product], error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return apiclient.Envelope[*Product]{}, err
	}

	resp, err := r.api.Put(ctx, "/product/update-product/"+p, apiclient.JSON(body))
	if err != nil {
		return apiclient.Envelope[*Product]{}, err
	}
	return apiclient.DecodeEnvelope[*Product](resp)
}

func (r *repository) UploadImages(ctx context.Context, slug string, images []media.File) (apiclient.Envelope[*Product], error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return apiclient.Envelope[*Product]{}, err
	}

	resp, err := r.api.Put(ctx, "/product/upload-productimg/"+p, apiclient.NewForm().Files("image", images))
	if err != nil {
		return apiclient.Envelope[*Product]{}, err
	}
	return apiclient.DecodeEnvelope[*Product](resp)
}

func (r *repository) DeleteProduct(ctx context.Context, slug string) (apiclient.Ack, error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return apiclient.Ack{}, err
	}

	resp, err := r.api.Delete(ctx, "/product/delete-product/"+p)
	if err != nil {
		return apiclient.Ack{}, err
	}
	return apiclient.DecodeAck(resp)
}
