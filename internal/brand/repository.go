package brand

import (
	"context"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/media"
)

type Repository interface {
	GetBrands(ctx context.Context) ([]Brand, error)
	GetBrand(ctx context.Context, slug string) (*Brand, error)
	AddBrand(ctx context.Context, name, since string, image media.File) (apiclient.Envelope[*Brand], error)
	UpdateBrand(ctx context.Context, slug, name, since string, image *media.File) (apiclient.Envelope[*Brand], error)
	DeleteBrand(ctx context.Context, slug string) (apiclient.Ack, error)
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

func (r *repository) GetBrands(ctx context.Context) ([]Brand, error) {
	resp, err := r.api.Get(ctx, "/brand/all-brand", nil)
	if err != nil {
		return nil, err
	}

	env, err := apiclient.DecodeEnvelope[[]Brand](resp)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []Brand{}, nil
	}
	return env.Data, nil
}

func (r *repository) GetBrand(ctx context.Context, slug string) (*Brand, error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return nil, err
	}

	resp, err := r.api.Get(ctx, "/brand/single-brand/"+p, nil)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}

	env, err := apiclient.DecodeEnvelope[*Brand](resp)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, ErrBrandNotFound
	}
	return env.Data, nil
}

func (r *repository) AddBrand(ctx context.Context, name, since string, image media.File) (apiclient.Envelope[*Brand], error) {
	form := apiclient.NewForm().
		Field("name", name).
		Field("since", since).
		File("image", image)

	resp, err := r.api.Post(ctx, "/brand/create-brand", form)
	if err != nil {
		return apiclient.Envelope[*Brand]{}, err
	}
	return apiclient.DecodeEnvelope[*Brand](resp)
}

// UpdateBrand sends the image part only when a new image was chosen.
func (r *repository) UpdateBrand(ctx context.Context, slug, name, since string, image *media.File) (apiclient.Envelope[*Brand], error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return apiclient.Envelope[*Brand]{}, err
	}

	form := apiclient.NewForm().
		Field("name", name).
		Field("since", since)
	if image != nil {
		form.File("image", *image)
	}

	resp, err := r.api.Put(ctx, "/brand/update-brand/"+p, form)
	if err != nil {
		return apiclient.Envelope[*Brand]{}, err
	}
	return apiclient.DecodeEnvelope[*Brand](resp)
}

func (r *repository) DeleteBrand(ctx context.Context, slug string) (apiclient.Ack, error) {
	p, err := apiclient.PathParam(slug)
	if err != nil {
		return apiclient.Ack{}, err
	}

	resp, err := r.api.Delete(ctx, "/brand/delete-brand/"+p)
	if err != nil {
		return apiclient.Ack{}, err
	}
	return apiclient.DecodeAck(resp)
}
