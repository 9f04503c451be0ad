package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/librarysvc/domain"
	"github.com/you/librarysvc/internal/http/respond"
)

// BookHandlers handles the /books endpoints
type BookHandlers struct {
	bookSvc domain.BookService
	logger  logrus.FieldLogger
}

// NewBookHandlers creates new book handlers
func NewBookHandlers(bookSvc domain.BookService, logger logrus.FieldLogger) *BookHandlers {
	return &BookHandlers{bookSvc: bookSvc, logger: logger}
}

func (h *BookHandlers) bookError(c *gin.Context, id uint, err error) {
	if errors.Is(err, domain.ErrBookNotFound) {
		respond.Error(c, http.StatusNotFound, fmt.Sprintf("Book with id %d not found", id), nil)
		return
	}
	writeError(c, h.logger, err)
}

// List returns a page of books, optionally filtered by name
func (h *BookHandlers) List(c *gin.Context) {
	req, ok := parsePageRequest(c)
	if !ok {
		return
	}

	page, err := h.bookSvc.List(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond.Success(c, "Books fetched successfully", gin.H{"books": page.Items, "meta": page.Meta})
}

// Get returns a single book
func (h *BookHandlers) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	book, err := h.bookSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.bookError(c, id, err)
		return
	}

	respond.Success(c, "Book fetched successfully", gin.H{"book": book})
}

// Create adds a book to the catalog
func (h *BookHandlers) Create(c *gin.Context) {
	var req CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.bookSvc.Create(c.Request.Context(), principal(c).ID, req.book())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond.Created(c, "Book created successfully", gin.H{"book": book})
}

// Update applies a partial update
func (h *BookHandlers) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.bookSvc.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		h.bookError(c, id, err)
		return
	}

	respond.Success(c, "Book updated successfully", gin.H{"book": book})
}

// Delete removes a book together with its bookings
func (h *BookHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.bookSvc.Delete(c.Request.Context(), id); err != nil {
		h.bookError(c, id, err)
		return
	}

	respond.Success(c, "Book deleted successfully", nil)
}
