// Package data provides the book records and the in-memory repository
// behind the bookshelf API.
package data

import (
	"time"

	"github.com/aoideee/bookshelf-api/internal/validator"
)

// Book represents a single book record held by the repository.
type Book struct {
	ID         string    `json:"id"`         // Opaque identifier assigned at creation
	Name       string    `json:"name"`       // Title of the book
	Year       int       `json:"year"`       // Year the book was published
	Author     string    `json:"author"`     // Author's name
	Summary    string    `json:"summary"`    // Short description
	Publisher  string    `json:"publisher"`  // Name of the publishing company
	PageCount  int       `json:"pageCount"`  // Total number of pages
	ReadPage   int       `json:"readPage"`   // Pages read so far, never above PageCount
	Finished   bool      `json:"finished"`   // Derived: ReadPage == PageCount
	Reading    bool      `json:"reading"`    // Whether the book is currently being read
	InsertedAt time.Time `json:"insertedAt"` // Timestamp when the record was created
	UpdatedAt  time.Time `json:"updatedAt"`  // Timestamp when the record was last modified
}

// BookSummary is the lightweight projection returned by list queries.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// BookInput holds the fields a client supplies when creating a book.
// finished is deliberately absent: it is always derived.
type BookInput struct {
	Name      string `json:"name"      validate:"required"`
	Year      int    `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount" validate:"min=0"`
	ReadPage  int    `json:"readPage"  validate:"min=0"`
	Reading   bool   `json:"reading"`
}

// UpdateBookInput holds the fields a client supplies when updating a book.
// Every field is a pointer so we can distinguish between "not provided" (nil)
// and "intentionally set to zero/empty". Only non-nil fields are applied;
// Name is still mandatory.
type UpdateBookInput struct {
	Name      *string `json:"name"`
	Year      *int    `json:"year"`
	Author    *string `json:"author"`
	Summary   *string `json:"summary"`
	Publisher *string `json:"publisher"`
	PageCount *int    `json:"pageCount"`
	ReadPage  *int    `json:"readPage"`
	Reading   *bool   `json:"reading"`
}

// Validation messages that callers translate into client-facing text.
const (
	MsgNameRequired     = "must be provided"
	MsgReadPageTooLarge = "must not be greater than pageCount"
)

// ValidateBook records every rule a book payload must satisfy.
func ValidateBook(v *validator.Validator, input BookInput) {
	v.Struct(input)
	v.Check(input.ReadPage <= input.PageCount, "readPage", MsgReadPageTooLarge)
}

// apply merges the provided fields of input onto the current values of b
// and returns the result as a full payload ready for validation.
func (input UpdateBookInput) apply(b Book) BookInput {
	merged := BookInput{
		Name:      b.Name,
		Year:      b.Year,
		Author:    b.Author,
		Summary:   b.Summary,
		Publisher: b.Publisher,
		PageCount: b.PageCount,
		ReadPage:  b.ReadPage,
		Reading:   b.Reading,
	}
	if input.Name != nil {
		merged.Name = *input.Name
	}
	if input.Year != nil {
		merged.Year = *input.Year
	}
	if input.Author != nil {
		merged.Author = *input.Author
	}
	if input.Summary != nil {
		merged.Summary = *input.Summary
	}
	if input.Publisher != nil {
		merged.Publisher = *input.Publisher
	}
	if input.PageCount != nil {
		merged.PageCount = *input.PageCount
	}
	if input.ReadPage != nil {
		merged.ReadPage = *input.ReadPage
	}
	if input.Reading != nil {
		merged.Reading = *input.Reading
	}
	return merged
}

// setFields copies a validated payload into b and recomputes Finished.
func (b *Book) setFields(input BookInput) {
	b.Name = input.Name
	b.Year = input.Year
	b.Author = input.Author
	b.Summary = input.Summary
	b.Publisher = input.Publisher
	b.PageCount = input.PageCount
	b.ReadPage = input.ReadPage
	b.Reading = input.Reading
	b.Finished = input.ReadPage == input.PageCount
}

func (b *Book) summary() BookSummary {
	return BookSummary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}
