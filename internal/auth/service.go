package auth

import (
	"context"
	"fmt"
	"time"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/hooks"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/query"
	"catalog-admin/internal/router"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, form LoginForm) (*LoginResult, error)
	Register(ctx context.Context, form RegistrationForm) (*User, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*Claims, error)
}

type service struct {
	repo  Repository
	store Store
	env   hooks.Env
	now   func() time.Time

	login    *query.Mutation[LoginRequest, apiclient.Envelope[LoginResult]]
	register *query.Mutation[RegisterRequest, apiclient.Envelope[User]]
}

func NewService(repo Repository, store Store, env hooks.Env) Service {
	s := &service{repo: repo, store: store, env: env, now: time.Now}

	s.login = hooks.NewMutation(env, hooks.Effects[LoginRequest]{
		Name:     "Login",
		Success:  "Login successful",
		Failure:  "Login failed",
		Redirect: hooks.To[LoginRequest](router.Home),
	}, s.doLogin)

	s.register = hooks.NewMutation(env, hooks.Effects[RegisterRequest]{
		Name:     "Register",
		Success:  "Registration successful",
		Failure:  "Registration failed",
		Redirect: hooks.To[RegisterRequest](router.Login),
	}, repo.Register)

	return s
}

// doLogin stores the token before the success effects run, so anything
// refetched on navigation is already authenticated.
func (s *service) doLogin(ctx context.Context, req LoginRequest) (apiclient.Envelope[LoginResult], error) {
	env, err := s.repo.Login(ctx, req)
	if err != nil {
		return env, err
	}
	if env.Data.AccessToken == "" {
		return env, ErrMissingToken
	}
	if err := s.store.SetToken(env.Data.AccessToken); err != nil {
		return env, fmt.Errorf("store access token: %w", err)
	}
	return env, nil
}

func (s *service) Login(ctx context.Context, form LoginForm) (*LoginResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)
	log.Info("Login started")

	if err := s.env.Validate(form, loginMessages); err != nil {
		log.Warn("login form invalid", zap.Error(err))
		return nil, err
	}

	id, err := ClassifyIdentifier(form.Identifier)
	if err != nil {
		return nil, err
	}

	req := LoginRequest{Password: form.Password}
	switch id.Kind {
	case IdentifierEmail:
		req.Email = &id.Value
	case IdentifierPhone:
		req.PhoneNumber = &id.Value
	}

	env, err := s.login.Mutate(ctx, req)
	if err != nil {
		log.Error("failed to login", zap.String("identifier_kind", id.Kind.String()), zap.Error(err))
		return nil, err
	}

	log.Info("Login success", zap.String("identifier_kind", id.Kind.String()))
	return &env.Data, nil
}

func (s *service) Register(ctx context.Context, form RegistrationForm) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)
	log.Info("Register started")

	if err := s.env.Validate(form, registrationMessages); err != nil {
		log.Warn("registration form invalid", zap.Error(err))
		return nil, err
	}

	env, err := s.register.Mutate(ctx, form.Request())
	if err != nil {
		log.Error("failed to register", zap.Error(err))
		return nil, err
	}

	log.Info("Register success", zap.String("user_id", env.Data.ID))
	return &env.Data, nil
}

// Logout forgets the token and every cached query.
func (s *service) Logout(ctx context.Context) error {
	if err := s.store.Clear(); err != nil {
		logger.FromCtx(ctx).Error("failed to clear token", zap.Error(err))
		return err
	}
	if s.env.Queries != nil {
		s.env.Queries.Clear()
	}
	s.env.Toast.Info("Logged out")
	if s.env.Nav != nil {
		s.env.Nav.Navigate(router.Login)
	}
	return nil
}

// WhoAmI decodes the stored token. An expired token is returned together
// with ErrTokenExpired.
func (s *service) WhoAmI(ctx context.Context) (*Claims, error) {
	token, err := s.store.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoToken
	}

	claims, err := ParseClaims(token)
	if err != nil {
		return nil, err
	}
	if claims.Expired(s.now()) {
		return claims, ErrTokenExpired
	}
	return claims, nil
}
