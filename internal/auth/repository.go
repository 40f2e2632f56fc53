package auth

import (
	"context"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Login(ctx context.Context, req LoginRequest) (apiclient.Envelope[LoginResult], error)
	Register(ctx context.Context, req RegisterRequest) (apiclient.Envelope[User], error)
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

func (r *repository) Login(ctx context.Context, req LoginRequest) (apiclient.Envelope[LoginResult], error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))
	log.Debug("Login request")

	resp, err := r.api.Post(ctx, "/auth/login", apiclient.JSON(req))
	if err != nil {
		return apiclient.Envelope[LoginResult]{}, err
	}

	env, err := apiclient.DecodeEnvelope[LoginResult](resp)
	if err != nil {
		log.Error("Login response decode failed", zap.Error(err))
		return env, err
	}

	// some deployments return the token next to the envelope
	if env.Data.AccessToken == "" {
		var flat LoginResult
		if err := resp.Decode(&flat); err == nil {
			env.Data.AccessToken = flat.AccessToken
		}
	}
	return env, nil
}

func (r *repository) Register(ctx context.Context, req RegisterRequest) (apiclient.Envelope[User], error) {
	resp, err := r.api.Post(ctx, "/auth/registration", apiclient.JSON(req))
	if err != nil {
		return apiclient.Envelope[User]{}, err
	}
	return apiclient.DecodeEnvelope[User](resp)
}
