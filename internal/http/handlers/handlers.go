package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/sirupsen/logrus"

	"github.com/you/librarysvc/domain"
	"github.com/you/librarysvc/internal/http/middleware"
	"github.com/you/librarysvc/internal/http/respond"
)

const internalErrorMessage = "Internal server error"

// bindJSON decodes the body into req and runs its validation rules.
// On failure the 400 response has already been written.
func bindJSON(c *gin.Context, req validation.Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := req.Validate(); err != nil {
		writeValidationError(c, err)
		return false
	}
	return true
}

func writeValidationError(c *gin.Context, err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		respond.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		fields[field] = ferr.Error()
	}
	respond.Error(c, http.StatusBadRequest, verrs.Error(), gin.H{"errors": fields})
}

// parsePageRequest reads page, limit and searchKey from the query string
func parsePageRequest(c *gin.Context) (domain.PageRequest, bool) {
	req := domain.PageRequest{
		Page:      domain.DefaultPage,
		Limit:     domain.DefaultLimit,
		SearchKey: strings.TrimSpace(c.Query("searchKey")),
	}

	var err error
	if v := c.Query("page"); v != "" {
		if req.Page, err = strconv.Atoi(v); err != nil {
			respond.Error(c, http.StatusBadRequest, "Page must be an integer", nil)
			return req, false
		}
	}
	if v := c.Query("limit"); v != "" {
		if req.Limit, err = strconv.Atoi(v); err != nil {
			respond.Error(c, http.StatusBadRequest, "Limit must be an integer", nil)
			return req, false
		}
	}
	if err := req.Validate(); err != nil {
		writeError(c, nil, err)
		return req, false
	}
	return req, true
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respond.Error(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name), nil)
		return 0, false
	}
	return uint(id), true
}

func principal(c *gin.Context) domain.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

// writeError maps the errors shared by every resource to a response.
// Anything unrecognised is logged and reported as a 500 without its cause.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	var conflict *domain.FieldConflictError
	switch {
	case errors.As(err, &conflict):
		respond.Error(c, http.StatusBadRequest, conflict.Error(), nil)
	case errors.Is(err, domain.ErrInvalidPage):
		respond.Error(c, http.StatusBadRequest, "Page number must be > 0", nil)
	case errors.Is(err, domain.ErrInvalidLimit):
		respond.Error(c, http.StatusBadRequest, "Limit must be > 0", nil)
	case errors.Is(err, domain.ErrNoChanges):
		respond.Error(c, http.StatusBadRequest, "No data provided", nil)
	case errors.Is(err, domain.ErrOTPInvalid):
		respond.Error(c, http.StatusBadRequest, "Invalid or expired OTP", nil)
	case errors.Is(err, domain.ErrOTPResendLimit):
		respond.Error(c, http.StatusTooManyRequests, "Please wait before requesting another code", nil)
	case errors.Is(err, domain.ErrUnauthorized):
		respond.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
	case errors.Is(err, domain.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "Forbidden", nil)
	default:
		_ = c.Error(err)
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		respond.Error(c, http.StatusInternalServerError, internalErrorMessage, nil)
	}
}
