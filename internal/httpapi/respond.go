package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gestionretard/internal/account"
	"gestionretard/internal/attendance"
	"gestionretard/internal/directory"
)

// fail maps service errors onto the API's single error shape {"message": ...}.
// Anything outside the known taxonomy becomes an opaque 500.
func fail(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, account.ErrMissingFields),
		errors.Is(err, directory.ErrMissingFields),
		errors.Is(err, attendance.ErrMissingFields),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, account.ErrBadPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, account.ErrUserNotFound),
		errors.Is(err, directory.ErrStudentNotFound),
		errors.Is(err, directory.ErrCourseNotFound):
		status = http.StatusNotFound
	case errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, directory.ErrAlreadyEnrolled):
		status = http.StatusConflict
	default:
		log.Printf("unhandled service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

// pathID parses a numeric path parameter. A non-numeric id is a 400, reported
// by the caller.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return id, true
}
