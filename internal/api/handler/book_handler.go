package handler

import (
	"net/http"

	"liblend/internal/api/dto"
	"liblend/internal/api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes registers book-related routes
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.POST("", h.Create)
		books.GET("", h.List)
		books.GET("/:bookId", h.Get)
		books.PUT("/:bookId", h.Update)
		books.DELETE("/:bookId", h.Delete)
	}
}

// Create adds a new book
// POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required and must be at least 3 characters long"})
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromBookModel(book))
}

// List returns books, filtered, sorted and paged
// GET /books?name=&sortBy=&order=&page=&limit=
func (h *BookHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid query parameters"})
		return
	}

	books, err := h.bookService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// Get returns a single book with its average score
// GET /books/:bookId
func (h *BookHandler) Get(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	book, err := h.bookService.Get(c.Request.Context(), bookID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update renames a book
// PUT /books/:bookId
func (h *BookHandler) Update(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required and must be at least 3 characters long"})
		return
	}

	if err := h.bookService.Rename(c.Request.Context(), bookID, req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book updated successfully"})
}

// Delete removes a book that is not out on loan
// DELETE /books/:bookId
func (h *BookHandler) Delete(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	if err := h.bookService.Delete(c.Request.Context(), bookID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
