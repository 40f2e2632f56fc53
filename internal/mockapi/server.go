// Package mockapi is an in-memory stand-in for the catalog REST backend,
// serving the same routes and envelopes so the client can be run and
// tested without the real service.
package mockapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// BasePath is where the API is mounted, matching the default API_BASE_URL.
const BasePath = "/api/v1"

type Options struct {
	// Secret signs access tokens. Required.
	Secret   []byte
	TokenTTL time.Duration
	// RateLimit is requests per second per client for non-auth routes;
	// zero disables rate limiting entirely.
	RateLimit float64
	RateBurst int
}

type Server struct {
	store   *Store
	handler *Handler
	engine  *gin.Engine
}

func New(opts Options) (*Server, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("mockapi: token secret is empty")
	}

	gin.SetMode(gin.ReleaseMode)

	store := NewStore()
	s := &Server{
		store:   store,
		handler: &Handler{store: store, secret: opts.Secret, tokenTTL: opts.TokenTTL},
		engine:  gin.New(),
	}

	s.engine.Use(gin.Recovery(), RequestLogger())
	if opts.RateLimit > 0 {
		s.engine.Use(RateLimit(newVisitors(opts.RateLimit, opts.RateBurst)))
	}
	s.routes(RequireAuth(opts.Secret))
	return s, nil
}

func (s *Server) routes(requireAuth gin.HandlerFunc) {
	h := s.handler
	api := s.engine.Group(BasePath)

	api.POST("/auth/registration", h.Register)
	api.POST("/auth/login", h.Login)

	api.GET("/category/get-all-category", h.ListCategories)
	api.GET("/category/singlecategory/:slug", h.GetCategory)
	api.POST("/category/create_category", requireAuth, h.CreateCategory)
	api.PUT("/category/update-category/:slug", requireAuth, h.UpdateCategory)
	api.DELETE("/category/deletecategory/:slug", requireAuth, h.DeleteCategory)

	api.GET("/subcategory/all-subcategory", h.ListSubCategories)
	api.POST("/subcategory/create-subcategory", requireAuth, h.CreateSubCategory)

	api.GET("/brand/all-brand", h.ListBrands)
	api.GET("/brand/single-brand/:slug", h.GetBrand)
	api.POST("/brand/create-brand", requireAuth, h.CreateBrand)
	api.PUT("/brand/update-brand/:slug", requireAuth, h.UpdateBrand)
	api.DELETE("/brand/delete-brand/:slug", requireAuth, h.DeleteBrand)

	api.GET("/product/getall-products", h.ListProducts)
	api.GET("/product/single-product", h.GetProduct)
	api.POST("/product/create-product", requireAuth, h.CreateProduct)
	api.PUT("/product/update-product/:slug", requireAuth, h.UpdateProduct)
	api.PUT("/product/upload-productimg/:slug", requireAuth, h.UploadProductImages)
	api.DELETE("/product/delete-product/:slug", requireAuth, h.DeleteProduct)

	s.engine.GET("/uploads/:name", h.Upload)
	s.engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Store() *Store {
	return s.store
}
