package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"book_catalog/internal/model"
	"book_catalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookService struct {
	book *model.Book
	page *model.BookPage
	err  error

	gotList   model.ListBooksParams
	gotSearch model.SearchBooksParams
	gotPatch  model.UpdateBookRequest
	gotID     int
}

func (f *fakeBookService) CreateBook(_ context.Context, _ model.CreateBookRequest) (*model.Book, error) {
	return f.book, f.err
}

func (f *fakeBookService) GetBook(_ context.Context, id int) (*model.Book, error) {
	f.gotID = id
	return f.book, f.err
}

func (f *fakeBookService) ListBooks(_ context.Context, params model.ListBooksParams) (*model.BookPage, error) {
	f.gotList = params
	return f.page, f.err
}

func (f *fakeBookService) SearchBooks(_ context.Context, params model.SearchBooksParams) (*model.BookPage, error) {
	f.gotSearch = params
	return f.page, f.err
}

func (f *fakeBookService) UpdateBook(_ context.Context, id int, patch model.UpdateBookRequest) (*model.Book, error) {
	f.gotID = id
	f.gotPatch = patch
	return f.book, f.err
}

func (f *fakeBookService) DeleteBook(_ context.Context, id int) (*model.Book, error) {
	f.gotID = id
	return f.book, f.err
}

// passthrough stands in for the auth middlewares in handler-level tests.
func passthrough(c *gin.Context) { c.Next() }

func newBookRouter(svc service.BookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBookHandler(svc).RegisterBookRoutes(router.Group("/api"), passthrough, passthrough)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleBook() *model.Book {
	return &model.Book{
		ID:            1,
		Title:         "Dune",
		Author:        "Frank Herbert",
		PublishedDate: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC),
		Pages:         412,
		Genre:         "Science Fiction",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestCreateBook_CollectsAllFieldErrors(t *testing.T) {
	router := newBookRouter(&fakeBookService{})

	// Missing title AND zero pages: both messages must come back.
	w := doRequest(router, http.MethodPost, "/api/books",
		`{"author":"Frank Herbert","publishedDate":"1965-08-01","pages":0,"genre":"Science Fiction"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "Title is required")
	assert.Contains(t, resp.Errors, "Pages should be a positive integer")
	assert.Len(t, resp.Errors, 2)
}

func TestCreateBook_InvalidDate(t *testing.T) {
	router := newBookRouter(&fakeBookService{})

	w := doRequest(router, http.MethodPost, "/api/books",
		`{"title":"Dune","author":"Frank Herbert","publishedDate":"not-a-date","pages":412,"genre":"Science Fiction"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Published Date is required and should be a valid date")
}

func TestCreateBook_Success(t *testing.T) {
	router := newBookRouter(&fakeBookService{book: sampleBook()})

	w := doRequest(router, http.MethodPost, "/api/books",
		`{"title":"Dune","author":"Frank Herbert","publishedDate":"1965-08-01","pages":412,"genre":"Science Fiction"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp model.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Dune", resp.Title)
	assert.Equal(t, 412, resp.Pages)
}

func TestListBooks_Defaults(t *testing.T) {
	svc := &fakeBookService{page: &model.BookPage{
		Books:      []model.Book{},
		Pagination: model.Pagination{CurrentPage: 1, TotalPages: 0, TotalBooks: 0, BooksPerPage: 10},
	}}
	router := newBookRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/books", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ListBooksParams{Page: 1, Limit: 10, SortBy: "createdAt", Order: "ASC"}, svc.gotList)
	assert.Contains(t, w.Body.String(), `"books":[]`)
}

func TestListBooks_ExplicitParams(t *testing.T) {
	svc := &fakeBookService{page: &model.BookPage{Books: []model.Book{*sampleBook()}}}
	router := newBookRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/books?page=2&limit=5&sortBy=pages&order=DESC", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ListBooksParams{Page: 2, Limit: 5, SortBy: "pages", Order: "DESC"}, svc.gotList)
}

func TestListBooks_InvalidParams(t *testing.T) {
	router := newBookRouter(&fakeBookService{})

	for _, path := range []string{
		"/api/books?page=0",
		"/api/books?limit=0",
		"/api/books?order=sideways",
		"/api/books?sortBy=password",
	} {
		w := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "errors", path)
	}
}

func TestGetBook_NotFoundHasEmptyBody(t *testing.T) {
	router := newBookRouter(&fakeBookService{err: service.ErrBookNotFound})

	w := doRequest(router, http.MethodGet, "/api/books/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGetBook_InvalidID(t *testing.T) {
	router := newBookRouter(&fakeBookService{})

	w := doRequest(router, http.MethodGet, "/api/books/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBook_Success(t *testing.T) {
	svc := &fakeBookService{book: sampleBook()}
	router := newBookRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/books/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.gotID)
	assert.Contains(t, w.Body.String(), `"title":"Dune"`)
}

func TestUpdateBook_PartialPatch(t *testing.T) {
	svc := &fakeBookService{book: sampleBook()}
	router := newBookRouter(svc)

	w := doRequest(router, http.MethodPatch, "/api/books/1", `{"pages":500}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotPatch.Pages)
	assert.Equal(t, 500, *svc.gotPatch.Pages)
	assert.Nil(t, svc.gotPatch.Title)
}

func TestUpdateBook_NotFound(t *testing.T) {
	router := newBookRouter(&fakeBookService{err: service.ErrBookNotFound})

	w := doRequest(router, http.MethodPatch, "/api/books/99", `{"pages":500}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestUpdateBook_ValidationError(t *testing.T) {
	router := newBookRouter(&fakeBookService{})

	w := doRequest(router, http.MethodPatch, "/api/books/1", `{"pages":0}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Pages should be a positive integer")
}

func TestDeleteBook_ReturnsPriorRecord(t *testing.T) {
	svc := &fakeBookService{book: sampleBook()}
	router := newBookRouter(svc)

	w := doRequest(router, http.MethodDelete, "/api/books/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.gotID)
	assert.Contains(t, w.Body.String(), `"title":"Dune"`)
}

func TestDeleteBook_NotFound(t *testing.T) {
	router := newBookRouter(&fakeBookService{err: service.ErrBookNotFound})

	w := doRequest(router, http.MethodDelete, "/api/books/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSearchBooks_TrimsFilters(t *testing.T) {
	svc := &fakeBookService{page: &model.BookPage{Books: []model.Book{}}}
	router := newBookRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/books-search?title=%20Dune%20&genre=Sci", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dune", svc.gotSearch.Title)
	assert.Equal(t, "Sci", svc.gotSearch.Genre)
	assert.Equal(t, "", svc.gotSearch.Author)
	assert.Equal(t, 1, svc.gotSearch.Page)
	assert.Equal(t, 10, svc.gotSearch.Limit)
}
