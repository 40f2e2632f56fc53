package category

import (
	"context"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/media"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, slug string) (*Category, error)
	AddCategory(ctx context.Context, name string, image media.File) (apiclient.Envelope[*Category], error)
	UpdateCategory(ctx context.Context, slug, name string, image *media.File) (apiclient.Envelope[*Category], error)
	DeleteCategory(ctx context.Context, slug string) (apiclient.Ack, error)
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

func (r *repository) GetCategories(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	resp, err := r.api.Get(ctx, "/category/get-all-category", nil)
	if err != nil {
		return nil, err
	}

	env, err := apiclient.DecodeEnvelope[[]Category](resp)
	if err != nil {
		log.Error("GetCategories decode failed", zap.Error(err))
		return nil, err
	}
	if env.Data == nil {
		return []Category{}, nil
	}
	return env.Data, nil
}

func (r *repository) GetCategory(ctx context.Context, slug string) (*Category, error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return nil, err
	}

	resp, err := r.api.Get(ctx, "/category/singlecategory/"+p, nil)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	env, err := apiclient.DecodeEnvelope[*Category](resp)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, ErrCategoryNotFound
	}
	return env.Data, nil
}

func (r *repository) AddCategory(ctx context.Context, name string, image media.File) (apiclient.Envelope[*Category], error) {
	form := apiclient.NewForm().
		Field("name", name).
		File("image", image)

	resp, err := r.api.Post(ctx, "/category/create_category", form)
	if err != nil {
		return apiclient.Envelope[*Category]{}, err
	}
	return apiclient.DecodeEnvelope[*Category](resp)
}

func (r *repository) UpdateCategory(ctx context.Context, slug, name string, image *media.File) (apiclient.Envelope[*Category], error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return apiclient.Envelope[*Category]{}, err
	}

	form := apiclient.NewForm().Field("name", name)
	if image != nil {
		form.File("image", *image)
	}

	resp, err := r.api.Put(ctx, "/category/update-category/"+p, form)
	if err != nil {
		return apiclient.Envelope[*Category]{}, err
	}
	return apiclient.DecodeEnvelope[*Category](resp)
}

func (r *repository) DeleteCategory(ctx context.Context, slug string) (apiclient.Ack, error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return apiclient.Ack{}, err
	}

	resp, err := r.api.Delete(ctx, "/category/deletecategory/"+p)
	if err != nil {
		return apiclient.Ack{}, err
	}
	return apiclient.DecodeAck(resp)
}
