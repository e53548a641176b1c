package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"book_catalog/internal/logger"
	"book_catalog/internal/model"
	"book_catalog/internal/repository"
	"book_catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// BookHandler handles the book catalog routes
type BookHandler struct {
	service service.BookService
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(s service.BookService) *BookHandler {
	return &BookHandler{service: s}
}

type listQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1"`
	SortBy string `form:"sortBy,default=createdAt"`
	Order  string `form:"order,default=ASC" binding:"oneof=ASC DESC"`
}

type searchQuery struct {
	Title  string `form:"title"`
	Author string `form:"author"`
	Genre  string `form:"genre"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1"`
}

// CreateBook handles POST /api/books (admin only). All field errors are
// collected and returned together.
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrBookInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book data"})
			return
		}
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("book creation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create book"})
		return
	}
	c.JSON(http.StatusCreated, book)
}

// ListBooks handles GET /api/books with pagination and sorting.
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
		return
	}
	if _, ok := repository.SortColumn(q.SortBy); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"sortBy must be a book field"}})
		return
	}

	page, err := h.service.ListBooks(c.Request.Context(), model.ListBooksParams{
		Page:   q.Page,
		Limit:  q.Limit,
		SortBy: q.SortBy,
		Order:  q.Order,
	})
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("book listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve books"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetBook handles GET /api/books/:id. A missing record is a bare 404.
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("book lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve book"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// UpdateBook handles PATCH /api/books/:id, merging only provided fields.
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	var patch model.UpdateBookRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, service.ErrBookInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book data"})
		default:
			logger.FromContext(c.Request.Context()).Error().Err(err).Msg("book update failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update book"})
		}
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/:id and echoes the deleted record.
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	book, err := h.service.DeleteBook(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("book deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// SearchBooks handles GET /api/books-search with substring filters.
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationMessages(err)})
		return
	}

	page, err := h.service.SearchBooks(c.Request.Context(), model.SearchBooksParams{
		Title:  strings.TrimSpace(q.Title),
		Author: strings.TrimSpace(q.Author),
		Genre:  strings.TrimSpace(q.Genre),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("book search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search books"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// RegisterBookRoutes wires the book routes. Reads are public, creation is
// admin-gated, update and delete need only a valid token.
func (h *BookHandler) RegisterBookRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/books", h.ListBooks)
	rg.GET("/books/:id", h.GetBook)
	rg.GET("/books-search", h.SearchBooks)

	rg.POST("/books", authMW, adminMW, h.CreateBook)
	rg.PATCH("/books/:id", authMW, h.UpdateBook)
	rg.DELETE("/books/:id", authMW, h.DeleteBook)
}
