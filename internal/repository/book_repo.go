package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"book_catalog/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var bookColumns = []string{"id", "title", "author", "published_date", "pages", "genre", "created_at", "updated_at"}

// sortColumns maps the JSON field names clients may sort by to the
// underlying columns. Anything outside this map is rejected upstream.
var sortColumns = map[string]string{
	"id":            "id",
	"title":         "title",
	"author":        "author",
	"publishedDate": "published_date",
	"pages":         "pages",
	"genre":         "genre",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

// SortColumn resolves a client-facing sort field to its column name.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}

// BookRepository defines operations for book data
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id int) (*model.Book, error)
	List(ctx context.Context, params model.ListBooksParams) ([]model.Book, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, params model.SearchBooksParams) ([]model.Book, error)
	CountSearch(ctx context.Context, params model.SearchBooksParams) (int, error)
	Update(ctx context.Context, id int, patch model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int) (*model.Book, error)
}

type bookRepository struct {
	db DB
}

// NewBookRepository creates a new BookRepository
func NewBookRepository(db DB) BookRepository {
	return &bookRepository{db: db}
}

// Create inserts a new book and fills in the generated fields.
func (r *bookRepository) Create(ctx context.Context, b *model.Book) error {
	sql, args, err := psql.Insert("books").
		Columns("title", "author", "published_date", "pages", "genre").
		Values(b.Title, b.Author, b.PublishedDate, b.Pages, b.Genre).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isConstraintViolation(err) {
			return ErrConstraint
		}
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// FindByID retrieves a book by its primary key. Returns (nil, nil) when the
// id does not exist.
func (r *bookRepository) FindByID(ctx context.Context, id int) (*model.Book, error) {
	sql, args, err := psql.Select(bookColumns...).From("books").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	b := &model.Book{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.Title, &b.Author, &b.PublishedDate, &b.Pages, &b.Genre, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find book by ID: %w", err)
	}
	return b, nil
}

// List returns one page of books ordered by the requested column.
func (r *bookRepository) List(ctx context.Context, params model.ListBooksParams) ([]model.Book, error) {
	col, ok := SortColumn(params.SortBy)
	if !ok {
		return nil, fmt.Errorf("unknown sort column %q", params.SortBy)
	}
	order := "ASC"
	if strings.EqualFold(params.Order, "DESC") {
		order = "DESC"
	}

	sql, args, err := psql.Select(bookColumns...).From("books").
		OrderBy(col + " " + order).
		Limit(uint64(params.Limit)).
		Offset(uint64((params.Page - 1) * params.Limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	return r.queryBooks(ctx, sql, args)
}

// Count returns the total number of books.
func (r *bookRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := psql.Select("COUNT(*)").From("books").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}

// searchFilters turns the provided non-empty fields into conjunctive
// substring conditions. An absent field matches everything.
func searchFilters(params model.SearchBooksParams) sq.And {
	var conds sq.And
	if params.Title != "" {
		conds = append(conds, sq.Like{"title": "%" + params.Title + "%"})
	}
	if params.Author != "" {
		conds = append(conds, sq.Like{"author": "%" + params.Author + "%"})
	}
	if params.Genre != "" {
		conds = append(conds, sq.Like{"genre": "%" + params.Genre + "%"})
	}
	return conds
}

// Search returns one page of books matching the substring filters.
func (r *bookRepository) Search(ctx context.Context, params model.SearchBooksParams) ([]model.Book, error) {
	qb := psql.Select(bookColumns...).From("books")
	if conds := searchFilters(params); len(conds) > 0 {
		qb = qb.Where(conds)
	}
	sql, args, err := qb.
		Limit(uint64(params.Limit)).
		Offset(uint64((params.Page - 1) * params.Limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	return r.queryBooks(ctx, sql, args)
}

// CountSearch returns the number of books matching the substring filters.
func (r *bookRepository) CountSearch(ctx context.Context, params model.SearchBooksParams) (int, error) {
	qb := psql.Select("COUNT(*)").From("books")
	if conds := searchFilters(params); len(conds) > 0 {
		qb = qb.Where(conds)
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build search count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count matching books: %w", err)
	}
	return total, nil
}

// Update applies a partial update and returns the updated record.
// ErrNotFound when the id does not exist, ErrConstraint when the patch
// violates a table constraint.
func (r *bookRepository) Update(ctx context.Context, id int, patch model.UpdateBookRequest) (*model.Book, error) {
	qb := psql.Update("books")
	if patch.Title != nil {
		qb = qb.Set("title", *patch.Title)
	}
	if patch.Author != nil {
		qb = qb.Set("author", *patch.Author)
	}
	if patch.PublishedDate != nil {
		qb = qb.Set("published_date", patch.PublishedDate.Time)
	}
	if patch.Pages != nil {
		qb = qb.Set("pages", *patch.Pages)
	}
	if patch.Genre != nil {
		qb = qb.Set("genre", *patch.Genre)
	}
	sql, args, err := qb.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	b := &model.Book{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.Title, &b.Author, &b.PublishedDate, &b.Pages, &b.Genre, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isConstraintViolation(err) {
			return nil, ErrConstraint
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return b, nil
}

// Delete removes a book and returns its prior field values in one round
// trip via DELETE ... RETURNING.
func (r *bookRepository) Delete(ctx context.Context, id int) (*model.Book, error) {
	sql := `DELETE FROM books WHERE id = $1
            RETURNING id, title, author, published_date, pages, genre, created_at, updated_at`

	b := &model.Book{}
	if err := r.db.QueryRow(ctx, sql, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.PublishedDate, &b.Pages, &b.Genre, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}
	return b, nil
}

func (r *bookRepository) queryBooks(ctx context.Context, sql string, args []any) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.PublishedDate, &b.Pages, &b.Genre, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}

// isConstraintViolation reports whether err is a PostgreSQL integrity
// constraint violation (class 23).
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgerrcode.IntegrityConstraintViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.CheckViolation,
		pgerrcode.UniqueViolation,
		pgerrcode.ForeignKeyViolation:
		return true
	}
	return false
}
