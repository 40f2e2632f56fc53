package subcategory

import (
	"context"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/category"
	"catalog-admin/internal/hooks"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/query"
	"catalog-admin/internal/router"

	"go.uber.org/zap"
)

var ListKey = query.Key{"subcategories", "list"}

type Service interface {
	GetSubCategories(ctx context.Context) ([]SubCategory, error)
	ListQuery() *query.Observer[[]SubCategory]
	AddSubCategory(ctx context.Context, form CreateForm) (*SubCategory, error)
	Pending() bool
}

type service struct {
	repo Repository
	env  hooks.Env

	create *query.Mutation[CreateRequest, apiclient.Envelope[*SubCategory]]
}

func NewService(repo Repository, env hooks.Env) Service {
	s := &service{repo: repo, env: env}

	// categories embed their sub-category lists, so both go stale
	s.create = hooks.NewMutation(env, hooks.Effects[CreateRequest]{
		Name:       "AddSubCategory",
		Success:    "Sub-category created successfully",
		Failure:    "Failed to create sub-category",
		Invalidate: hooks.Keys[CreateRequest](ListKey, category.ListKey),
		Redirect:   hooks.To[CreateRequest](router.SubCategoryList),
	}, repo.AddSubCategory)

	return s
}

func (s *service) GetSubCategories(ctx context.Context) ([]SubCategory, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetSubCategories"),
	)
	log.Info("GetSubCategories started")

	items, err := query.Fetch(ctx, s.env.Queries, ListKey, s.repo.GetSubCategories)
	if err != nil {
		log.Error("failed to get sub-categories", zap.Error(err))
		return nil, err
	}

	log.Info("GetSubCategories success", zap.Int("count", len(items)))
	return items, nil
}

func (s *service) ListQuery() *query.Observer[[]SubCategory] {
	return query.NewObserver(s.env.Queries, ListKey, s.repo.GetSubCategories)
}

func (s *service) AddSubCategory(ctx context.Context, form CreateForm) (*SubCategory, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddSubCategory"),
		zap.String("category_id", form.Category),
		zap.String("name", form.Name),
	)
	log.Info("AddSubCategory started")

	if err := s.env.Validate(form, createMessages); err != nil {
		log.Warn("sub-category form invalid", zap.Error(err))
		return nil, err
	}

	env, err := s.create.Mutate(ctx, form.Request())
	if err != nil {
		log.Error("failed to add sub-category", zap.Error(err))
		return nil, err
	}

	log.Info("AddSubCategory success")
	return env.Data, nil
}

func (s *service) Pending() bool {
	return s.create.IsPending()
}
