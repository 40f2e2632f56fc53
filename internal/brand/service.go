package brand

import (
	"context"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/hooks"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/query"
	"catalog-admin/internal/router"

	"go.uber.org/zap"
)

var (
	// Keys is the prefix of every brand query.
	Keys    = query.Key{"brands"}
	ListKey = Keys.Append("list")
)

func DetailKey(slug string) query.Key {
	return Keys.Append("detail", slug)
}

type Service interface {
	GetBrands(ctx context.Context) ([]Brand, error)
	GetBrand(ctx context.Context, slug string) (*Brand, error)
	ListQuery() *query.Observer[[]Brand]
	DetailQuery(slug string) *query.Observer[*Brand]
	AddBrand(ctx context.Context, form CreateForm) (*Brand, error)
	UpdateBrand(ctx context.Context, slug string, form UpdateForm) (*Brand, error)
	DeleteBrand(ctx context.Context, slug string) error
	Pending() bool
}

type service struct {
	repo Repository
	env  hooks.Env

	create *query.Mutation[CreateForm, apiclient.Envelope[*Brand]]
	update *query.Mutation[updateInput, apiclient.Envelope[*Brand]]
	remove *query.Mutation[string, apiclient.Ack]
}

func NewService(repo Repository, env hooks.Env) Service {
	s := &service{repo: repo, env: env}

	s.create = hooks.NewMutation(env, hooks.Effects[CreateForm]{
		Name:       "AddBrand",
		Success:    "Brand created successfully",
		Failure:    "Failed to create brand",
		Invalidate: hooks.Keys[CreateForm](ListKey),
		Redirect:   hooks.To[CreateForm](router.BrandList),
	}, func(ctx context.Context, f CreateForm) (apiclient.Envelope[*Brand], error) {
		return repo.AddBrand(ctx, f.Name, f.Since, f.Image)
	})

	s.update = hooks.NewMutation(env, hooks.Effects[updateInput]{
		Name:       "UpdateBrand",
		Success:    "Brand updated successfully",
		Failure:    "Failed to update brand",
		Invalidate: hooks.Keys[updateInput](Keys),
		Redirect:   hooks.To[updateInput](router.BrandList),
	}, func(ctx context.Context, in updateInput) (apiclient.Envelope[*Brand], error) {
		return repo.UpdateBrand(ctx, in.Slug, in.Form.Name, in.Form.Since, in.Form.Image)
	})

	s.remove = hooks.NewMutation(env, hooks.Effects[string]{
		Name:       "DeleteBrand",
		Success:    "Brand deleted successfully",
		Failure:    "Failed to delete brand",
		Invalidate: hooks.Keys[string](Keys),
	}, repo.DeleteBrand)

	return s
}

func (s *service) detailFetch(slug string) query.FetchFunc[*Brand] {
	return func(ctx context.Context) (*Brand, error) {
		return s.repo.GetBrand(ctx, slug)
	}
}

func (s *service) GetBrands(ctx context.Context) ([]Brand, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetBrands"),
	)
	log.Info("GetBrands started")

	brands, err := query.Fetch(ctx, s.env.Queries, ListKey, s.repo.GetBrands)
	if err != nil {
		log.Error("failed to get brands", zap.Error(err))
		return nil, err
	}

	log.Info("GetBrands success", zap.Int("count", len(brands)))
	return brands, nil
}

func (s *service) GetBrand(ctx context.Context, slug string) (*Brand, error) {
	if slug == "" {
		return nil, query.ErrDisabled
	}

	b, err := query.Fetch(ctx, s.env.Queries, DetailKey(slug), s.detailFetch(slug))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get brand",
			zap.String("layer", "service"),
			zap.String("slug", slug),
			zap.Error(err),
		)
		return nil, err
	}
	return b, nil
}

func (s *service) ListQuery() *query.Observer[[]Brand] {
	return query.NewObserver(s.env.Queries, ListKey, s.repo.GetBrands)
}

func (s *service) DetailQuery(slug string) *query.Observer[*Brand] {
	return query.NewObserver(s.env.Queries, DetailKey(slug), s.detailFetch(slug), query.Enabled(slug != ""))
}

func (s *service) AddBrand(ctx context.Context, form CreateForm) (*Brand, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddBrand"),
		zap.String("name", form.Name),
	)
	log.Info("AddBrand started")

	if err := s.env.Validate(form, formMessages); err != nil {
		log.Warn("brand form invalid", zap.Error(err))
		return nil, err
	}

	images, err := s.env.Optimize(form.Image)
	if err != nil {
		log.Error("failed to prepare image", zap.Error(err))
		return nil, err
	}
	form.Image = images[0]

	env, err := s.create.Mutate(ctx, form)
	if err != nil {
		log.Error("failed to add brand", zap.Error(err))
		return nil, err
	}

	log.Info("AddBrand success")
	return env.Data, nil
}

func (s *service) UpdateBrand(ctx context.Context, slug string, form UpdateForm) (*Brand, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateBrand"),
		zap.String("slug", slug),
	)
	log.Info("UpdateBrand started")

	if err := s.env.Validate(form, formMessages); err != nil {
		log.Warn("brand form invalid", zap.Error(err))
		return nil, err
	}

	if form.Image != nil {
		images, err := s.env.Optimize(*form.Image)
		if err != nil {
			log.Error("failed to prepare image", zap.Error(err))
			return nil, err
		}
		form.Image = &images[0]
	}

	env, err := s.update.Mutate(ctx, updateInput{Slug: slug, Form: form})
	if err != nil {
		log.Error("failed to update brand", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateBrand success")
	return env.Data, nil
}

func (s *service) DeleteBrand(ctx context.Context, slug string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteBrand"),
		zap.String("slug", slug),
	)
	log.Info("DeleteBrand started")

	if _, err := s.remove.Mutate(ctx, slug); err != nil {
		log.Error("failed to delete brand", zap.Error(err))
		return err
	}

	log.Info("DeleteBrand success")
	return nil
}

func (s *service) Pending() bool {
	return s.create.IsPending() || s.update.IsPending() || s.remove.IsPending()
}
