package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/auth"
	"catalog-admin/internal/brand"
	"catalog-admin/internal/category"
	"catalog-admin/internal/config"
	"catalog-admin/internal/hooks"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/media"
	"catalog-admin/internal/notify"
	"catalog-admin/internal/product"
	"catalog-admin/internal/query"
	"catalog-admin/internal/router"
	"catalog-admin/internal/subcategory"
	"catalog-admin/internal/validation"
	"catalog-admin/internal/view"

	"go.uber.org/zap"
)

const usage = `usage: catalogctl [-o table|json|yaml] <command> [arguments]

commands:
  login       -id <email|phone> -password <password>
  register    -name <name> [-email <email>] [-phone <phone>] -password <password>
  logout
  whoami
  dashboard
  menu
  category    list | get <slug> | create -name -image
              | update <slug> [-name] [-image] | delete <slug>
  subcategory list | create -name -category
  brand       list | get <slug> | create -name -since -image
              | update <slug> [-name] [-since] [-image] | delete <slug>
  product     list [-type] | get <slug> | create-single ... | create-multiple ...
              | update <slug> ... | upload <slug> -images | delete <slug>
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, requestID := logger.EnsureRequestID(ctx)
	logger.FromCtx(ctx).Debug("catalogctl started",
		zap.String("request_id", requestID),
		zap.Strings("args", args),
	)

	a := newApp(cfg, stdout, auth.NewFileStore(cfg.TokenFile))
	err = a.run(ctx, args)

	stats := a.queries.Stats()
	logger.FromCtx(ctx).Debug("catalogctl finished",
		zap.Uint64("cache_hits", stats.Hits),
		zap.Uint64("cache_misses", stats.Misses),
		zap.Error(err),
	)
	return err
}

type app struct {
	out     io.Writer
	format  view.Format
	tokens  auth.Store
	history *router.History
	toast   *notify.Toaster
	queries *query.Client

	auth          auth.Service
	categories    category.Service
	subcategories subcategory.Service
	brands        brand.Service
	products      product.Service
}

func newApp(cfg *config.Config, out io.Writer, tokens auth.Store) *app {
	history := router.NewHistory(router.Home)
	toast := notify.NewToaster(&notify.WriterSink{W: out})

	opts := []apiclient.Option{
		apiclient.WithTokenSource(tokens),
		apiclient.WithUnauthorizedHandler(func() {
			if err := tokens.Clear(); err != nil {
				logger.L().Warn("failed to clear token after 401", zap.Error(err))
			}
			history.Navigate(router.Login)
		}),
	}
	if cfg.APITimeout > 0 {
		opts = append(opts, apiclient.WithTimeout(cfg.APITimeout))
	}
	if cfg.APIRateLimit > 0 {
		opts = append(opts, apiclient.WithRateLimit(cfg.APIRateLimit, cfg.APIRateBurst))
	}
	api := apiclient.New(cfg.APIBaseURL, opts...)

	env := hooks.Env{
		Queries:   query.NewClient(query.Options{Size: cfg.CacheSize, TTL: cfg.CacheTTL}),
		Toast:     toast,
		Nav:       history,
		Validator: validation.Default(),
		Media:     media.Optimizer{MaxDimension: cfg.ImageMaxDimension, Quality: cfg.ImageQuality},
	}

	return &app{
		out:     out,
		format:  view.Table,
		tokens:  tokens,
		history: history,
		toast:   toast,
		queries: env.Queries,

		auth:          auth.NewService(auth.NewRepository(api), tokens, env),
		categories:    category.NewService(category.NewRepository(api), env),
		subcategories: subcategory.NewService(subcategory.NewRepository(api), env),
		brands:        brand.NewService(brand.NewRepository(api), env),
		products:      product.NewService(product.NewRepository(api), env),
	}
}

func (a *app) renderer() *view.Renderer {
	return view.New(a.out, a.format)
}

func (a *app) run(ctx context.Context, args []string) error {
	fs := a.flags("catalogctl")
	output := fs.String("o", string(view.Table), "output format: table, json or yaml")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	format, err := view.ParseFormat(*output)
	if err != nil {
		return err
	}
	a.format = format

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprint(a.out, usage)
		return errUsage
	}

	cmd, rest := rest[0], rest[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		return a.auth.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "dashboard":
		return a.dashboard(ctx)
	case "menu":
		return a.menu()
	case "category":
		return a.category(ctx, rest)
	case "subcategory":
		return a.subcategory(ctx, rest)
	case "brand":
		return a.brand(ctx, rest)
	case "product":
		return a.product(ctx, rest)
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprintf(a.out, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// subcommand splits "<sub> [args]" and reports a usage error when it is
// missing.
func (a *app) subcommand(resource string, args []string) (string, []string, error) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "missing %s subcommand\n\n%s", resource, usage)
		return "", nil, errUsage
	}
	return args[0], args[1:], nil
}

func (a *app) unknown(resource, sub string) error {
	fmt.Fprintf(a.out, "unknown %s subcommand %q\n\n%s", resource, sub, usage)
	return errUsage
}

// slugArg reads "<slug> [flags]": the slug comes first so flags can follow.
func (a *app) slugArg(resource string, args []string) (string, []string, error) {
	if len(args) == 0 || args[0] == "" || args[0][0] == '-' {
		fmt.Fprintf(a.out, "%s: a slug is required\n", resource)
		return "", nil, errUsage
	}
	return args[0], args[1:], nil
}
