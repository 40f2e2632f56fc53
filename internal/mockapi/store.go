package mockapi

import (
	"encoding/json"
	"errors"
	"net/url"
	"path"
	"sync"
	"time"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/brand"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/category"
	"catalog-admin/internal/media"
	"catalog-admin/internal/product"
	"catalog-admin/internal/subcategory"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUserExists    = errors.New("user already exists")
	ErrBadCredential = errors.New("invalid credentials")
)

type userRecord struct {
	user auth.User
	hash string
}

// Store is the backend's in-memory state. Records are kept in insertion
// order and returned as copies with their references populated.
type Store struct {
	mu            sync.RWMutex
	users         []*userRecord
	categories    []*category.Category
	subcategories []*subcategory.SubCategory
	brands        []*brand.Brand
	products      []*product.Product
	uploads       map[string]media.File
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		uploads: make(map[string]media.File),
		now:     time.Now,
	}
}

func (s *Store) stamp() *time.Time {
	t := s.now().UTC()
	return &t
}

// --- users ---

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func sameContact(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}

func (s *Store) Register(req auth.RegisterRequest) (auth.User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return auth.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if sameContact(u.user.Email, req.Email) || sameContact(u.user.PhoneNumber, req.PhoneNumber) {
			return auth.User{}, ErrUserExists
		}
	}

	rec := &userRecord{
		user: auth.User{
			ID:          newID(),
			Name:        req.Name,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Role:        "admin",
		},
		hash: hash,
	}
	s.users = append(s.users, rec)
	return rec.user, nil
}

// Authenticate finds the user by email or phone number and checks the
// password.
func (s *Store) Authenticate(req auth.LoginRequest) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if sameContact(u.user.Email, req.Email) || sameContact(u.user.PhoneNumber, req.PhoneNumber) {
			if !CheckPasswordHash(req.Password, u.hash) {
				return auth.User{}, ErrBadCredential
			}
			return u.user, nil
		}
	}
	return auth.User{}, ErrBadCredential
}

// --- uploads ---

// SaveUpload keeps f and returns the URL it is served from.
func (s *Store) SaveUpload(f media.File) string {
	name := newID() + path.Ext(f.Name)

	s.mu.Lock()
	s.uploads[name] = f
	s.mu.Unlock()

	return "/uploads/" + url.PathEscape(name)
}

func (s *Store) Upload(name string) (media.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.uploads[name]
	return f, ok
}

// --- categories ---

func (s *Store) categoryByID(id string) *category.Category {
	for _, c := range s.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Store) categoryView(c *category.Category) category.Category {
	out := *c
	out.SubCategory = []category.SubCategory{}
	for _, sc := range s.subcategories {
		if sc.Category.ID == c.ID {
			out.SubCategory = append(out.SubCategory, category.SubCategory{ID: sc.ID, Name: sc.Name, Slug: sc.Slug})
		}
	}
	return out
}

func (s *Store) Categories() []category.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, s.categoryView(c))
	}
	return out
}

func (s *Store) Category(slug string) (category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Slug == slug {
			return s.categoryView(c), nil
		}
	}
	return category.Category{}, ErrNotFound
}

func (s *Store) AddCategory(name, image string) category.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &category.Category{
		ID:        newID(),
		Name:      name,
		Image:     image,
		Slug:      uniqueSlug(name, func(slug string) bool { return s.categorySlugTaken(slug) }),
		CreatedAt: s.stamp(),
	}
	s.categories = append(s.categories, c)
	return s.categoryView(c)
}

func (s *Store) categorySlugTaken(slug string) bool {
	for _, c := range s.categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

// UpdateCategory leaves the slug alone so existing links keep working.
func (s *Store) UpdateCategory(slug, name, image string) (category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Slug != slug {
			continue
		}
		if name != "" {
			c.Name = name
		}
		if image != "" {
			c.Image = image
		}
		return s.categoryView(c), nil
	}
	return category.Category{}, ErrNotFound
}

// DeleteCategory removes the category and its sub-categories.
func (s *Store) DeleteCategory(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.categories {
		if c.Slug != slug {
			continue
		}
		s.categories = append(s.categories[:i], s.categories[i+1:]...)

		kept := s.subcategories[:0]
		for _, sc := range s.subcategories {
			if sc.Category.ID != c.ID {
				kept = append(kept, sc)
			}
		}
		s.subcategories = kept
		return nil
	}
	return ErrNotFound
}

// --- sub-categories ---

func (s *Store) subCategoryView(sc *subcategory.SubCategory) subcategory.SubCategory {
	out := *sc
	if c := s.categoryByID(sc.Category.ID); c != nil {
		out.Category = catalog.Ref{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return out
}

func (s *Store) SubCategories() []subcategory.SubCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]subcategory.SubCategory, 0, len(s.subcategories))
	for _, sc := range s.subcategories {
		out = append(out, s.subCategoryView(sc))
	}
	return out
}

func (s *Store) AddSubCategory(name, categoryID string) (subcategory.SubCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryByID(categoryID) == nil {
		return subcategory.SubCategory{}, ErrNotFound
	}

	sc := &subcategory.SubCategory{
		ID:   newID(),
		Name: name,
		Slug: uniqueSlug(name, func(slug string) bool {
			for _, x := range s.subcategories {
				if x.Slug == slug {
					return true
				}
			}
			return false
		}),
		Category:  catalog.ID(categoryID),
		CreatedAt: s.stamp(),
	}
	s.subcategories = append(s.subcategories, sc)
	return s.subCategoryView(sc), nil
}

// --- brands ---

func (s *Store) Brands() []brand.Brand {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]brand.Brand, 0, len(s.brands))
	for _, b := range s.brands {
		out = append(out, *b)
	}
	return out
}

func (s *Store) brandBySlug(slug string) *brand.Brand {
	for _, b := range s.brands {
		if b.Slug == slug {
			return b
		}
	}
	return nil
}

func (s *Store) brandByID(id string) *brand.Brand {
	for _, b := range s.brands {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Store) Brand(slug string) (brand.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b := s.brandBySlug(slug); b != nil {
		return *b, nil
	}
	return brand.Brand{}, ErrNotFound
}

func (s *Store) AddBrand(name, since, image string) brand.Brand {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := &brand.Brand{
		ID:        newID(),
		Name:      name,
		Since:     json.Number(since),
		Image:     image,
		Slug:      uniqueSlug(name, func(slug string) bool { return s.brandBySlug(slug) != nil }),
		CreatedAt: s.stamp(),
	}
	s.brands = append(s.brands, b)
	return *b
}

// UpdateBrand changes name and since; an empty image keeps the old one.
// The slug is stable.
func (s *Store) UpdateBrand(slug, name, since, image string) (brand.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.brandBySlug(slug)
	if b == nil {
		return brand.Brand{}, ErrNotFound
	}
	if name != "" {
		b.Name = name
	}
	if since != "" {
		b.Since = json.Number(since)
	}
	if image != "" {
		b.Image = image
	}
	return *b, nil
}

func (s *Store) DeleteBrand(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.brands {
		if b.Slug == slug {
			s.brands = append(s.brands[:i], s.brands[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- products ---

func (s *Store) productView(p *product.Product) product.Product {
	out := *p
	out.Image = append([]string{}, p.Image...)
	if c := s.categoryByID(p.Category.ID); c != nil {
		out.Category = catalog.Ref{ID: c.ID, Name: c.Name, Slug: c.Slug, Image: c.Image}
	}
	for _, sc := range s.subcategories {
		if sc.ID == p.SubCategory.ID {
			out.SubCategory = catalog.Ref{ID: sc.ID, Name: sc.Name, Slug: sc.Slug}
		}
	}
	if b := s.brandByID(p.Brand.ID); b != nil {
		out.Brand = catalog.Ref{ID: b.ID, Name: b.Name, Slug: b.Slug, Image: b.Image}
	}
	return out
}

func (s *Store) productBySlug(slug string) *product.Product {
	for _, p := range s.products {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

// Products lists products of type t; All lists every product.
func (s *Store) Products(t catalog.ProductType) []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		if t == catalog.All || p.Type() == t {
			out = append(out, s.productView(p))
		}
	}
	return out
}

func (s *Store) Product(slug string) (product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.productBySlug(slug); p != nil {
		return s.productView(p), nil
	}
	return product.Product{}, ErrNotFound
}

func (s *Store) AddProduct(p product.Product) product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = newID()
	p.Slug = uniqueSlug(p.Name, func(slug string) bool { return s.productBySlug(slug) != nil })
	p.CreatedAt = s.stamp()
	if p.Image == nil {
		p.Image = []string{}
	}
	s.products = append(s.products, &p)
	return s.productView(&p)
}

// UpdateProduct applies fn to the stored product under the lock.
func (s *Store) UpdateProduct(slug string, fn func(*product.Product)) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.productBySlug(slug)
	if p == nil {
		return product.Product{}, ErrNotFound
	}
	fn(p)
	return s.productView(p), nil
}

func (s *Store) DeleteProduct(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.Slug == slug {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
