package controllers

import (
	"errors"
	"net/http"

	"cityreport-be/errs"

	"github.com/gin-gonic/gin"
)

// respondError is the single place internal failures become wire-level
// status codes. Every error body carries success=false and a short
// human-readable message so the presentation layer can branch without
// string-matching.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *errs.ValidationError
		authErr       *errs.AuthError
		forbiddenErr  *errs.ForbiddenError
		notFoundErr   *errs.NotFoundError
	)

	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Msg
	case errors.As(err, &authErr):
		status = http.StatusUnauthorized
		message = authErr.Msg
	case errors.As(err, &forbiddenErr):
		status = http.StatusForbidden
		message = forbiddenErr.Msg
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
		message = notFoundErr.Msg
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}
