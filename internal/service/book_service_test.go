package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"book_catalog/internal/model"
	"book_catalog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookRepo is an in-memory BookRepository. It honors pagination and
// substring filters but not sorting, which the repository tests cover.
type fakeBookRepo struct {
	books  []model.Book
	nextID int
}

func newFakeBookRepo(seed ...model.Book) *fakeBookRepo {
	f := &fakeBookRepo{nextID: 1}
	for _, b := range seed {
		b.ID = f.nextID
		f.nextID++
		f.books = append(f.books, b)
	}
	return f
}

func (f *fakeBookRepo) Create(_ context.Context, b *model.Book) error {
	if b.Pages < 1 {
		return repository.ErrConstraint
	}
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.nextID++
	f.books = append(f.books, *b)
	return nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id int) (*model.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			copied := b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookRepo) List(_ context.Context, params model.ListBooksParams) ([]model.Book, error) {
	return pageOf(f.books, params.Page, params.Limit), nil
}

func (f *fakeBookRepo) Count(_ context.Context) (int, error) {
	return len(f.books), nil
}

func (f *fakeBookRepo) Search(_ context.Context, params model.SearchBooksParams) ([]model.Book, error) {
	return pageOf(f.matching(params), params.Page, params.Limit), nil
}

func (f *fakeBookRepo) CountSearch(_ context.Context, params model.SearchBooksParams) (int, error) {
	return len(f.matching(params)), nil
}

func (f *fakeBookRepo) Update(_ context.Context, id int, patch model.UpdateBookRequest) (*model.Book, error) {
	for i := range f.books {
		if f.books[i].ID != id {
			continue
		}
		if patch.Pages != nil && *patch.Pages < 1 {
			return nil, repository.ErrConstraint
		}
		b := &f.books[i]
		if patch.Title != nil {
			b.Title = *patch.Title
		}
		if patch.Author != nil {
			b.Author = *patch.Author
		}
		if patch.PublishedDate != nil {
			b.PublishedDate = patch.PublishedDate.Time
		}
		if patch.Pages != nil {
			b.Pages = *patch.Pages
		}
		if patch.Genre != nil {
			b.Genre = *patch.Genre
		}
		b.UpdatedAt = time.Now()
		copied := *b
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookRepo) Delete(_ context.Context, id int) (*model.Book, error) {
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookRepo) matching(params model.SearchBooksParams) []model.Book {
	matched := make([]model.Book, 0)
	for _, b := range f.books {
		if params.Title != "" && !contains(b.Title, params.Title) {
			continue
		}
		if params.Author != "" && !contains(b.Author, params.Author) {
			continue
		}
		if params.Genre != "" && !contains(b.Genre, params.Genre) {
			continue
		}
		matched = append(matched, b)
	}
	return matched
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

func pageOf(books []model.Book, page, limit int) []model.Book {
	start := (page - 1) * limit
	if start >= len(books) {
		return []model.Book{}
	}
	end := start + limit
	if end > len(books) {
		end = len(books)
	}
	return books[start:end]
}

func seedBooks(n int) []model.Book {
	books := make([]model.Book, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, model.Book{
			Title:         "Book",
			Author:        "Author",
			PublishedDate: time.Date(2000+i, 1, 1, 0, 0, 0, 0, time.UTC),
			Pages:         100 + i,
			Genre:         "Drama",
		})
	}
	return books
}

func TestBookService_CreateBook(t *testing.T) {
	svc := NewBookService(newFakeBookRepo())

	book, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:         "Dune",
		Author:        "Frank Herbert",
		PublishedDate: model.Date{Time: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)},
		Pages:         412,
		Genre:         "Science Fiction",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.False(t, book.CreatedAt.IsZero())
}

func TestBookService_GetBook_NotFound(t *testing.T) {
	svc := NewBookService(newFakeBookRepo())

	_, err := svc.GetBook(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_ListBooks_Pagination(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(seedBooks(12)...))

	page, err := svc.ListBooks(context.Background(), model.ListBooksParams{
		Page: 2, Limit: 5, SortBy: "createdAt", Order: "ASC",
	})

	require.NoError(t, err)
	assert.Len(t, page.Books, 5)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 12, page.Pagination.TotalBooks)
	assert.Equal(t, 5, page.Pagination.BooksPerPage)
}

func TestBookService_ListBooks_EmptyCatalog(t *testing.T) {
	svc := NewBookService(newFakeBookRepo())

	page, err := svc.ListBooks(context.Background(), model.ListBooksParams{
		Page: 1, Limit: 10, SortBy: "createdAt", Order: "ASC",
	})

	require.NoError(t, err)
	assert.NotNil(t, page.Books) // marshals as [], not null
	assert.Empty(t, page.Books)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestBookService_SearchBooks_SubstringFilter(t *testing.T) {
	repo := newFakeBookRepo(
		model.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Pages: 412},
		model.Book{Title: "Neuromancer", Author: "William Gibson", Genre: "Sci-Fi", Pages: 271},
		model.Book{Title: "Hamlet", Author: "Shakespeare", Genre: "Drama", Pages: 160},
	)
	svc := NewBookService(repo)

	page, err := svc.SearchBooks(context.Background(), model.SearchBooksParams{
		Genre: "Sci", Page: 1, Limit: 10,
	})

	require.NoError(t, err)
	assert.Len(t, page.Books, 2) // "Science Fiction" and "Sci-Fi", not "Drama"
	assert.Equal(t, 2, page.Pagination.TotalBooks)
}

func TestBookService_SearchBooks_NoFiltersReturnsAll(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(seedBooks(3)...))

	page, err := svc.SearchBooks(context.Background(), model.SearchBooksParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, page.Books, 3)
}

func TestBookService_UpdateBook(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(seedBooks(1)...))

	title := "Renamed"
	book, err := svc.UpdateBook(context.Background(), 1, model.UpdateBookRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", book.Title)
	assert.Equal(t, "Author", book.Author) // untouched field survives
}

func TestBookService_UpdateBook_EmptyPatch(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(seedBooks(1)...))

	book, err := svc.UpdateBook(context.Background(), 1, model.UpdateBookRequest{})

	require.NoError(t, err)
	assert.Equal(t, "Book", book.Title)
}

func TestBookService_UpdateBook_NotFound(t *testing.T) {
	svc := NewBookService(newFakeBookRepo())

	title := "Renamed"
	_, err := svc.UpdateBook(context.Background(), 42, model.UpdateBookRequest{Title: &title})

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_UpdateBook_ConstraintViolation(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(seedBooks(1)...))

	pages := 0
	_, err := svc.UpdateBook(context.Background(), 1, model.UpdateBookRequest{Pages: &pages})

	assert.ErrorIs(t, err, ErrBookInvalid)
}

func TestBookService_DeleteBook(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(seedBooks(1)...))

	book, err := svc.DeleteBook(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, book.ID) // prior field values come back

	// Deleting the same id again must miss.
	_, err = svc.DeleteBook(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
