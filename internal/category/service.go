package category

import (
	"context"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/hooks"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/query"
	"catalog-admin/internal/router"

	"go.uber.org/zap"
)

// ListKey caches the category collection.
var ListKey = query.Key{"categories", "list"}

func DetailKey(slug string) query.Key {
	return query.Key{"categories", "detail", slug}
}

// Service is the category data layer used by pages and the CLI.
type Service interface {
	GetCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, slug string) (*Category, error)
	ListQuery() *query.Observer[[]Category]
	DetailQuery(slug string) *query.Observer[*Category]
	AddCategory(ctx context.Context, form CreateForm) (*Category, error)
	UpdateCategory(ctx context.Context, slug string, form UpdateForm) (*Category, error)
	DeleteCategory(ctx context.Context, slug string) error
	Pending() bool
}

type service struct {
	repo Repository
	env  hooks.Env

	create *query.Mutation[CreateForm, apiclient.Envelope[*Category]]
	update *query.Mutation[updateInput, apiclient.Envelope[*Category]]
	remove *query.Mutation[string, apiclient.Ack]
}

func NewService(repo Repository, env hooks.Env) Service {
	s := &service{repo: repo, env: env}

	s.create = hooks.NewMutation(env, hooks.Effects[CreateForm]{
		Name:       "AddCategory",
		Success:    "Category created successfully",
		Failure:    "Failed to create category",
		Invalidate: hooks.Keys[CreateForm](ListKey),
		Redirect:   hooks.To[CreateForm](router.CategoryList),
	}, func(ctx context.Context, f CreateForm) (apiclient.Envelope[*Category], error) {
		return repo.AddCategory(ctx, f.Name, f.Image)
	})

	s.update = hooks.NewMutation(env, hooks.Effects[updateInput]{
		Name:    "UpdateCategory",
		Success: "Category updated successfully",
		Failure: "Failed to update category",
		Invalidate: func(in updateInput) []query.Key {
			return []query.Key{ListKey, DetailKey(in.Slug)}
		},
		Redirect: hooks.To[updateInput](router.CategoryList),
	}, func(ctx context.Context, in updateInput) (apiclient.Envelope[*Category], error) {
		return repo.UpdateCategory(ctx, in.Slug, in.Form.Name, in.Form.Image)
	})

	s.remove = hooks.NewMutation(env, hooks.Effects[string]{
		Name:    "DeleteCategory",
		Success: "Category deleted successfully",
		Failure: "Failed to delete category",
		Invalidate: func(slug string) []query.Key {
			return []query.Key{ListKey, DetailKey(slug)}
		},
	}, repo.DeleteCategory)

	return s
}

func (s *service) listFetch(ctx context.Context) ([]Category, error) {
	return s.repo.GetCategories(ctx)
}

func (s *service) detailFetch(slug string) query.FetchFunc[*Category] {
	return func(ctx context.Context) (*Category, error) {
		return s.repo.GetCategory(ctx, slug)
	}
}

// GetCategories returns the cached collection, loading it on a miss.
func (s *service) GetCategories(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)
	log.Info("GetCategories started")

	categories, err := query.Fetch(ctx, s.env.Queries, ListKey, s.listFetch)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

// GetCategory never reaches the backend for an empty slug.
func (s *service) GetCategory(ctx context.Context, slug string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategory"),
		zap.String("slug", slug),
	)

	if slug == "" {
		return nil, query.ErrDisabled
	}

	c, err := query.Fetch(ctx, s.env.Queries, DetailKey(slug), s.detailFetch(slug))
	if err != nil {
		log.Error("failed to get category", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *service) ListQuery() *query.Observer[[]Category] {
	return query.NewObserver(s.env.Queries, ListKey, s.listFetch)
}

func (s *service) DetailQuery(slug string) *query.Observer[*Category] {
	return query.NewObserver(s.env.Queries, DetailKey(slug), s.detailFetch(slug), query.Enabled(slug != ""))
}

func (s *service) AddCategory(ctx context.Context, form CreateForm) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", form.Name),
	)
	log.Info("AddCategory started")

	if err := s.env.Validate(form, createMessages); err != nil {
		log.Warn("category form invalid", zap.Error(err))
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
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success")
	return env.Data, nil
}

func (s *service) UpdateCategory(ctx context.Context, slug string, form UpdateForm) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateCategory"),
		zap.String("slug", slug),
	)
	log.Info("UpdateCategory started")

	if err := s.env.Validate(form, updateMessages); err != nil {
		log.Warn("category form invalid", zap.Error(err))
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
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateCategory success")
	return env.Data, nil
}

func (s *service) DeleteCategory(ctx context.Context, slug string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteCategory"),
		zap.String("slug", slug),
	)
	log.Info("DeleteCategory started")

	if _, err := s.remove.Mutate(ctx, slug); err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return err
	}

	log.Info("DeleteCategory success")
	return nil
}

// Pending reports whether a create, update or delete is in flight.
func (s *service) Pending() bool {
	return s.create.IsPending() || s.update.IsPending() || s.remove.IsPending()
}
