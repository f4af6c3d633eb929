// internal/data/models.go
package data

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aoideee/bookshelf-api/internal/validator"
)

// Models is a top-level container that groups all repositories together.
// It is passed around the application via applicationDependencies so every
// handler shares the same collection.
type Models struct {
	Books *BookModel // In-memory book collection
}

// NewModels constructs a Models value with an empty book collection.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels() Models {
	return Models{
		Books: NewBookModel(),
	}
}

var (
	// ErrRecordNotFound is returned when no book has the requested identifier.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when a freshly generated identifier is already taken.
	ErrDuplicateID = errors.New("generated book id already exists")
)

// ValidationError reports the fields of a payload that failed validation.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + DescribeErrors(e.Errors)
}

// DescribeErrors renders a field error map as "field message" pairs sorted
// by field name, e.g. "pageCount must be greater than or equal to 0".
func DescribeErrors(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + " " + errs[field]
	}
	return strings.Join(parts, "; ")
}

// BookFilters narrows a listing. A nil pointer or empty Name means
// "no filter" for that attribute; all supplied filters must match.
type BookFilters struct {
	Name     string // Case-insensitive substring of the book name
	Reading  *bool
	Finished *bool
}

func (f BookFilters) match(b *Book) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Reading != nil && b.Reading != *f.Reading {
		return false
	}
	if f.Finished != nil && b.Finished != *f.Finished {
		return false
	}
	return true
}

// BookModel owns the book collection. Records are kept in insertion order
// and every method runs under a single mutex.
type BookModel struct {
	mu    sync.Mutex
	books []*Book

	now   func() time.Time
	newID func() (string, error)
}

// NewBookModel returns an empty collection using the wall clock in UTC and
// random UUIDs for identifiers.
func NewBookModel() *BookModel {
	return &BookModel{
		now: func() time.Time { return time.Now().UTC() },
		newID: func() (string, error) {
			id, err := uuid.NewRandom()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
}

// indexOf returns the position of the book with the given id, or -1.
// Callers must hold m.mu.
func (m *BookModel) indexOf(id string) int {
	return slices.IndexFunc(m.books, func(b *Book) bool { return b.ID == id })
}

// Insert validates input and adds a new book, returning its identifier.
// Returns a *ValidationError if the payload is invalid.
func (m *BookModel) Insert(input BookInput) (string, error) {
	v := validator.New()
	ValidateBook(v, input)
	if !v.Valid() {
		return "", &ValidationError{Errors: v.Errors}
	}

	id, err := m.newID()
	if err != nil {
		return "", fmt.Errorf("generate book id: %w", err)
	}

	now := m.now()
	book := &Book{ID: id, InsertedAt: now, UpdatedAt: now}
	book.setFields(input)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(id) >= 0 {
		return "", ErrDuplicateID
	}
	m.books = append(m.books, book)

	return id, nil
}

// GetAll returns summaries of every book matching filters, in insertion order.
// The result is never nil.
func (m *BookModel) GetAll(filters BookFilters) []BookSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := []BookSummary{}
	for _, b := range m.books {
		if filters.match(b) {
			summaries = append(summaries, b.summary())
		}
	}
	return summaries
}

// Get returns a copy of the book with the given id.
// Returns ErrRecordNotFound if no such book exists.
func (m *BookModel) Get(id string) (Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return Book{}, ErrRecordNotFound
	}
	return *m.books[i], nil
}

// Update applies input to the book with the given id and refreshes UpdatedAt.
// The identifier and InsertedAt never change. Returns ErrRecordNotFound for an
// unknown id, or a *ValidationError (leaving the record untouched) for an
// invalid payload.
func (m *BookModel) Update(id string, input UpdateBookInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrRecordNotFound
	}
	book := m.books[i]

	v := validator.New()
	v.Check(input.Name != nil, "name", MsgNameRequired)
	merged := input.apply(*book)
	ValidateBook(v, merged)
	if !v.Valid() {
		return &ValidationError{Errors: v.Errors}
	}

	book.setFields(merged)
	if now := m.now(); now.After(book.UpdatedAt) {
		book.UpdatedAt = now
	}

	return nil
}

// Delete removes the book with the given id permanently.
// Returns ErrRecordNotFound if no matching record exists.
func (m *BookModel) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrRecordNotFound
	}
	m.books = slices.Delete(m.books, i, i+1)

	return nil
}

// Len reports how many books are stored.
func (m *BookModel) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.books)
}
