// Package cascade is the category -> sub-category selector used by the
// product forms. A sub-category can only be chosen from the selected
// category's own list, and changing the category drops the previous
// choice.
package cascade

import (
	"errors"
	"sync"
)

var (
	ErrNoCategory         = errors.New("select a category first")
	ErrUnknownSubCategory = errors.New("sub-category does not belong to the selected category")
)

type State int

const (
	NoCategorySelected State = iota
	CategorySelectedAwaitingSubList
	SubCategoryListReady
)

func (s State) String() string {
	switch s {
	case CategorySelectedAwaitingSubList:
		return "CategorySelectedAwaitingSubList"
	case SubCategoryListReady:
		return "SubCategoryListReady"
	default:
		return "NoCategorySelected"
	}
}

type Option struct {
	ID   string
	Name string
}

type Category struct {
	Option
	SubCategories []Option
}

// Selector is safe for concurrent use: the collection may arrive from a
// query while the user is picking.
type Selector struct {
	mu          sync.Mutex
	categories  []Category
	loaded      bool
	state       State
	category    string
	subCategory string
	options     []Option
}

func NewSelector() *Selector {
	return &Selector{}
}

// SetCategories supplies (or replaces) the fetched category collection.
// A chosen sub-category survives only if it is still offered.
func (s *Selector) SetCategories(categories []Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = append([]Category(nil), categories...)
	s.loaded = true
	if s.category == "" {
		return
	}
	s.readOptions()
	if s.subCategory != "" && !s.offered(s.subCategory) {
		s.subCategory = ""
	}
}

// SelectCategory picks a category and clears the sub-category. An empty
// id clears the selection.
func (s *Selector) SelectCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subCategory = ""
	s.options = nil
	s.category = id

	switch {
	case id == "":
		s.state = NoCategorySelected
	case !s.loaded:
		s.state = CategorySelectedAwaitingSubList
	default:
		s.readOptions()
	}
}

// Preset restores a saved pair, as an edit form does. The sub-category is
// kept only when it belongs to the category once the collection is known.
func (s *Selector) Preset(categoryID, subCategoryID string) {
	s.SelectCategory(categoryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if categoryID == "" {
		return
	}
	if !s.loaded || s.offered(subCategoryID) {
		s.subCategory = subCategoryID
	}
}

func (s *Selector) SelectSubCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == NoCategorySelected {
		return ErrNoCategory
	}
	if id == "" {
		s.subCategory = ""
		return nil
	}
	if s.state != SubCategoryListReady || !s.offered(id) {
		return ErrUnknownSubCategory
	}
	s.subCategory = id
	return nil
}

func (s *Selector) readOptions() {
	s.options = nil
	for _, c := range s.categories {
		if c.ID == s.category {
			s.options = append([]Option(nil), c.SubCategories...)
			break
		}
	}
	s.state = SubCategoryListReady
}

func (s *Selector) offered(id string) bool {
	for _, o := range s.options {
		if o.ID == id {
			return true
		}
	}
	return false
}

func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Selector) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

func (s *Selector) SubCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subCategory
}

// Options are the selectable sub-categories; empty until the list is ready.
func (s *Selector) Options() []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Option(nil), s.options...)
}

// SubCategoryEnabled reports whether the sub-category control accepts input.
func (s *Selector) SubCategoryEnabled() bool {
	return s.State() != NoCategorySelected
}
