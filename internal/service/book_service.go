package service

import (
	"context"
	"errors"
	"fmt"

	"book_catalog/internal/model"
	"book_catalog/internal/repository"
)

var (
	// ErrBookNotFound is returned when the requested id does not exist.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookInvalid is returned when the database rejects a write for
	// violating a table constraint.
	ErrBookInvalid = errors.New("book violates a constraint")
)

// BookService provides the book catalog use-cases
type BookService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, id int) (*model.Book, error)
	ListBooks(ctx context.Context, params model.ListBooksParams) (*model.BookPage, error)
	SearchBooks(ctx context.Context, params model.SearchBooksParams) (*model.BookPage, error)
	UpdateBook(ctx context.Context, id int, patch model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id int) (*model.Book, error)
}

type bookService struct {
	bookRepo repository.BookRepository
}

// NewBookService creates a new BookService
func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

// CreateBook persists a validated book record.
func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	book := &model.Book{
		Title:         req.Title,
		Author:        req.Author,
		PublishedDate: req.PublishedDate.Time,
		Pages:         req.Pages,
		Genre:         req.Genre,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, repository.ErrConstraint) {
			return nil, ErrBookInvalid
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// GetBook looks up a book by primary key.
func (s *bookService) GetBook(ctx context.Context, id int) (*model.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// ListBooks returns one sorted page plus the pagination envelope.
func (s *bookService) ListBooks(ctx context.Context, params model.ListBooksParams) (*model.BookPage, error) {
	books, err := s.bookRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	total, err := s.bookRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	return &model.BookPage{
		Books:      books,
		Pagination: paginate(params.Page, params.Limit, total),
	}, nil
}

// SearchBooks returns one page of substring matches plus the envelope.
func (s *bookService) SearchBooks(ctx context.Context, params model.SearchBooksParams) (*model.BookPage, error) {
	books, err := s.bookRepo.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	total, err := s.bookRepo.CountSearch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to count matching books: %w", err)
	}

	return &model.BookPage{
		Books:      books,
		Pagination: paginate(params.Page, params.Limit, total),
	}, nil
}

// UpdateBook merges the provided fields into an existing record.
// An empty patch returns the record unchanged.
func (s *bookService) UpdateBook(ctx context.Context, id int, patch model.UpdateBookRequest) (*model.Book, error) {
	if patch.IsEmpty() {
		return s.GetBook(ctx, id)
	}

	book, err := s.bookRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		if errors.Is(err, repository.ErrConstraint) {
			return nil, ErrBookInvalid
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

// DeleteBook removes a record and returns its prior field values.
func (s *bookService) DeleteBook(ctx context.Context, id int) (*model.Book, error) {
	book, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}
	return book, nil
}

// paginate computes the envelope for a page of total records.
func paginate(page, limit, total int) model.Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return model.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalBooks:   total,
		BooksPerPage: limit,
	}
}
