package model

import "time"

// Book represents a catalog record
type Book struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedDate time.Time `json:"publishedDate"`
	Pages         int       `json:"pages"`
	Genre         string    `json:"genre"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateBookRequest is used for creating a new book
type CreateBookRequest struct {
	Title         string `json:"title" binding:"required,min=1"`
	Author        string `json:"author" binding:"required,min=1"`
	PublishedDate Date   `json:"publishedDate" binding:"required"`
	Pages         int    `json:"pages" binding:"required,min=1"`
	Genre         string `json:"genre" binding:"required,min=1"`
}

// UpdateBookRequest holds the fields of a partial update.
// Pointers distinguish "absent" from zero values.
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty" binding:"omitempty,min=1"`
	Author        *string `json:"author,omitempty" binding:"omitempty,min=1"`
	PublishedDate *Date   `json:"publishedDate,omitempty"`
	Pages         *int    `json:"pages,omitempty" binding:"omitempty,min=1"`
	Genre         *string `json:"genre,omitempty" binding:"omitempty,min=1"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (r UpdateBookRequest) IsEmpty() bool {
	return r.Title == nil && r.Author == nil && r.PublishedDate == nil &&
		r.Pages == nil && r.Genre == nil
}

// ListBooksParams are the validated query parameters of GET /api/books
type ListBooksParams struct {
	Page   int
	Limit  int
	SortBy string // whitelisted JSON column name, e.g. "createdAt"
	Order  string // "ASC" or "DESC"
}

// SearchBooksParams are the validated query parameters of GET /api/books-search
type SearchBooksParams struct {
	Title  string
	Author string
	Genre  string
	Page   int
	Limit  int
}

// Pagination reports the paging envelope returned next to a book list
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalBooks   int `json:"totalBooks"`
	BooksPerPage int `json:"booksPerPage"`
}

// BookPage is the {books, pagination} response of list and search
type BookPage struct {
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}
