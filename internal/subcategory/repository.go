package subcategory

import (
	"context"

	"catalog-admin/internal/apiclient"
)

type Repository interface {
	GetSubCategories(ctx context.Context) ([]SubCategory, error)
	AddSubCategory(ctx context.Context, req CreateRequest) (apiclient.Envelope[*SubCategory], error)
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

func (r *repository) GetSubCategories(ctx context.Context) ([]SubCategory, error) {
	resp, err := r.api.Get(ctx, "/subcategory/all-subcategory", nil)
	if err != nil {
		return nil, err
	}

	env, err := apiclient.DecodeEnvelope[[]SubCategory](resp)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []SubCategory{}, nil
	}
	return env.Data, nil
}

func (r *repository) AddSubCategory(ctx context.Context, req CreateRequest) (apiclient.Envelope[*SubCategory], error) {
	resp, err := r.api.Post(ctx, "/subcategory/create-subcategory", apiclient.JSON(req))
	if err != nil {
		return apiclient.Envelope[*SubCategory]{}, err
	}
	return apiclient.DecodeEnvelope[*SubCategory](resp)
}
