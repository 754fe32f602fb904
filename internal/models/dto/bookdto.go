package dto

import "github.com/haguru/booknest/internal/models"

// BookInputDTO is the book payload for the saveBook mutation. Description
// is required by the schema but may be the empty string, so it carries no
// presence check.
type BookInputDTO struct {
	BookID      string   `json:"bookId" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Link        string   `json:"link" validate:"omitempty,url"`
}

// ToModel converts the input payload into the embedded book model.
func (b *BookInputDTO) ToModel() models.Book {
	authors := b.Authors
	if authors == nil {
		authors = []string{}
	}
	return models.Book{
		BookID:      b.BookID,
		Title:       b.Title,
		Authors:     authors,
		Description: b.Description,
		Image:       b.Image,
		Link:        b.Link,
	}
}

// SaveBookRequestDTO is the saveBook mutation payload. UserID is caller
// supplied per the API contract; it is not derived from the token identity.
type SaveBookRequestDTO struct {
	UserID string       `json:"userId" validate:"required"`
	Input  BookInputDTO `json:"input" validate:"required"`
}

// RemoveBookRequestDTO is the removeBook mutation payload.
type RemoveBookRequestDTO struct {
	UserID string `json:"userId" validate:"required"`
	BookID string `json:"bookId" validate:"required"`
}

// SearchBooksRequestDTO is the searchBooks query payload.
type SearchBooksRequestDTO struct {
	Query string `json:"query" validate:"required"`
}

// BooksResponseDTO wraps the searchBooks result.
type BooksResponseDTO struct {
	Books []models.Book `json:"books"`
}
