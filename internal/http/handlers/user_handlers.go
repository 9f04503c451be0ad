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

// UserHandlers handles the /user endpoints
type UserHandlers struct {
	userSvc domain.UserService
	logger  logrus.FieldLogger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService, logger logrus.FieldLogger) *UserHandlers {
	return &UserHandlers{userSvc: userSvc, logger: logger}
}

func (h *UserHandlers) userError(c *gin.Context, notFound string, err error) {
	var conflict *domain.FieldConflictError
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, notFound, nil)
	case errors.As(err, &conflict):
		respond.Error(c, http.StatusBadRequest, "Email already in use", nil)
	default:
		writeError(c, h.logger, err)
	}
}

// Profile returns the caller's account
func (h *UserHandlers) Profile(c *gin.Context) {
	user, err := h.userSvc.Profile(c.Request.Context(), principal(c).ID)
	if err != nil {
		h.userError(c, "User not found", err)
		return
	}

	respond.Success(c, "Profile fetched successfully", gin.H{"user": user})
}

// UpdateProfile changes the caller's email or name
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), principal(c).ID, req.patch())
	if err != nil {
		h.userError(c, "User not found", err)
		return
	}

	respond.Success(c, "Profile updated successfully", gin.H{"user": user})
}

// List returns a page of users
func (h *UserHandlers) List(c *gin.Context) {
	req, ok := parsePageRequest(c)
	if !ok {
		return
	}

	page, err := h.userSvc.List(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	respond.Success(c, "Users fetched successfully", gin.H{"users": page.Items, "meta": page.Meta})
}

// Get returns any user
func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.userError(c, fmt.Sprintf("User with id %d not found", id), err)
		return
	}

	respond.Success(c, "User fetched successfully", gin.H{"user": user})
}

// Update changes any user, including role and status
func (h *UserHandlers) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req AdminUpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		h.userError(c, fmt.Sprintf("User with id %d not found", id), err)
		return
	}

	respond.Success(c, "User updated successfully", gin.H{"user": user})
}

// Delete removes a user
func (h *UserHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		h.userError(c, fmt.Sprintf("User with id %d not found", id), err)
		return
	}

	respond.Success(c, "User deleted successfully", nil)
}
