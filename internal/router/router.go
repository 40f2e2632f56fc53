// Package router names the dashboard pages and records navigation.
package router

import (
	"strings"
	"sync"
)

const (
	Home                  = "/"
	Login                 = "/login"
	Registration          = "/registration"
	CreateCategory        = "/create-category"
	CategoryList          = "/category-list"
	EditCategory          = "/edit-categorylist/:slug"
	CreateSubCategory     = "/create-subcategory"
	SubCategoryList       = "/subcategory-list"
	CreateBrand           = "/create-brand"
	BrandList             = "/brand-list"
	EditBrand             = "/edit-brand/:slug"
	CreateSingleVariant   = "/create-single-variant"
	SingleVariantList     = "/single-variant-list"
	EditSingleVariant     = "/edit-single-variant/:slug"
	CreateMultipleVariant = "/create-multiple-variant"
	MultipleVariantList   = "/multiple-variant-list"
	EditMultipleVariant   = "/edit-multiple-variant/:slug"
	MultipleVariantDetail = "/multiple-variant/:slug"
)

// Path fills the ":slug" placeholder of route.
func Path(route, slug string) string {
	return strings.Replace(route, ":slug", slug, 1)
}

// Navigator moves the UI to another route.
type Navigator interface {
	Navigate(route string)
}

// History is an in-memory Navigator.
type History struct {
	mu      sync.Mutex
	entries []string
}

func NewHistory(start string) *History {
	return &History{entries: []string{start}}
}

func (h *History) Navigate(route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, route)
}

// Current returns the latest route, Home when nothing was visited.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return Home
	}
	return h.entries[len(h.entries)-1]
}

// Back pops the current route and returns the one before it.
func (h *History) Back() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
	if len(h.entries) == 0 {
		return Home
	}
	return h.entries[len(h.entries)-1]
}

func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }
