// Package hooks binds queries and mutations to the side effects a page
// expects: toasts, cache invalidation and navigation.
package hooks

import (
	"context"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/media"
	"catalog-admin/internal/notify"
	"catalog-admin/internal/query"
	"catalog-admin/internal/router"
	"catalog-admin/internal/validation"

	"go.uber.org/zap"
)

// Env is what every resource service needs to run its hooks.
type Env struct {
	Queries   *query.Client
	Toast     *notify.Toaster
	Nav       router.Navigator
	// Validator checks forms before a mutation runs; nil means
	// validation.Default().
	Validator *validation.Validator
	// Media shrinks attachments before upload; the zero value sends them
	// unchanged.
	Media     media.Optimizer
}

// Validate checks form against its rules and messages.
func (e Env) Validate(form any, msgs validation.Messages) error {
	v := e.Validator
	if v == nil {
		v = validation.Default()
	}
	return v.Struct(form, msgs)
}

// Optimize runs the configured optimizer over files, keeping their order.
func (e Env) Optimize(files ...media.File) ([]media.File, error) {
	return e.Media.Apply(files...)
}

// Messenger is implemented by mutation results that carry the backend's
// message, such as apiclient.Envelope.
type Messenger interface {
	ResponseMessage() string
}

// Effects describes what happens after a mutation settles.
type Effects[In any] struct {
	// Name is used in logs.
	Name string
	// Success is shown when the backend did not send a message.
	Success string
	// Failure is shown when the error carries no API message.
	Failure string
	// Invalidate returns the key prefixes to invalidate on success.
	Invalidate func(in In) []query.Key
	// Redirect returns the route to navigate to on success; empty stays.
	Redirect func(in In) string
}

// Keys invalidates a fixed set of prefixes regardless of input.
func Keys[In any](keys ...query.Key) func(In) []query.Key {
	return func(In) []query.Key { return keys }
}

// To navigates to a fixed route regardless of input.
func To[In any](route string) func(In) string {
	return func(In) string { return route }
}

// NewMutation wraps fn with the toast / invalidate / navigate lifecycle.
// Invalidation failures are logged and do not fail the mutation: the write
// already happened.
func NewMutation[In, Out any](env Env, fx Effects[In], fn query.MutationFunc[In, Out]) *query.Mutation[In, Out] {
	onSuccess := func(ctx context.Context, in In, out Out) {
		log := logger.FromCtx(ctx).With(
			zap.String("layer", "hooks"),
			zap.String("mutation", fx.Name),
		)

		env.Toast.Success(successMessage(out, fx.Success))

		if fx.Invalidate != nil && env.Queries != nil {
			for _, key := range fx.Invalidate(in) {
				if err := env.Queries.Invalidate(ctx, key); err != nil {
					log.Warn("failed to refresh invalidated queries",
						zap.String("prefix", key.String()),
						zap.Error(err),
					)
				}
			}
		}

		if fx.Redirect != nil && env.Nav != nil {
			if route := fx.Redirect(in); route != "" {
				env.Nav.Navigate(route)
			}
		}
		log.Info("mutation success")
	}

	onError := func(ctx context.Context, in In, err error) {
		logger.FromCtx(ctx).Error("mutation failed",
			zap.String("layer", "hooks"),
			zap.String("mutation", fx.Name),
			zap.Error(err),
		)
		env.Toast.Error(apiclient.Message(err, fx.Failure))
	}

	return query.NewMutation(fn,
		query.OnSuccess(onSuccess),
		query.OnError[In, Out](onError),
	)
}

func successMessage(out any, fallback string) string {
	if m, ok := out.(Messenger); ok && m.ResponseMessage() != "" {
		return m.ResponseMessage()
	}
	return fallback
}
