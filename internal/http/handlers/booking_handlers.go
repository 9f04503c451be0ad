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

// BookingHandlers handles the /bookings endpoints. All routes require authentication.
type BookingHandlers struct {
	bookingSvc domain.BookingService
	logger     logrus.FieldLogger
}

// NewBookingHandlers creates new booking handlers
func NewBookingHandlers(bookingSvc domain.BookingService, logger logrus.FieldLogger) *BookingHandlers {
	return &BookingHandlers{bookingSvc: bookingSvc, logger: logger}
}

func (h *BookingHandlers) bookingError(c *gin.Context, id string, err error) {
	if errors.Is(err, domain.ErrBookingNotFound) {
		respond.Error(c, http.StatusNotFound, fmt.Sprintf("Booking with id %s not found", id), nil)
		return
	}
	writeError(c, h.logger, err)
}

// Create books a book for the caller
func (h *BookingHandlers) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	endDate, _ := parseDate(req.EndDate)

	booking, err := h.bookingSvc.Create(c.Request.Context(), principal(c), req.BookID, endDate, *req.Price)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			respond.Error(c, http.StatusNotFound, fmt.Sprintf("Book with id %d not found", req.BookID), nil)
			return
		}
		writeError(c, h.logger, err)
		return
	}

	respond.Created(c, "Booking created successfully", gin.H{"booking": booking})
}

// List returns the caller's bookings, or all bookings for an admin
func (h *BookingHandlers) List(c *gin.Context) {
	req, ok := parsePageRequest(c)
	if !ok {
		return
	}

	page, err := h.bookingSvc.List(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond.Success(c, "Bookings fetched successfully", gin.H{"bookings": page.Items, "meta": page.Meta})
}

// Get returns a single booking
func (h *BookingHandlers) Get(c *gin.Context) {
	id := c.Param("id")

	booking, err := h.bookingSvc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		h.bookingError(c, id, err)
		return
	}

	respond.Success(c, "Booking fetched successfully", gin.H{"booking": booking})
}

// Delete cancels a booking
func (h *BookingHandlers) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.bookingSvc.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.bookingError(c, id, err)
		return
	}

	respond.Success(c, "Booking deleted successfully", nil)
}
