package api

import (
	"errors"
	"net/http"

	"alcyxob/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// statusForError maps service errors to HTTP status codes. Unknown errors are 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrNoValidSet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidExerciseID),
		errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrInvalidWeeklyTarget),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrEmptyWorkout):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrWorkoutDayNotFound),
		errors.Is(err, service.ErrExerciseNotInLog),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrExportNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrWriteConflict),
		errors.Is(err, service.ErrDayCompleted),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrExerciseAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError writes err as JSON. Internal errors are logged and
// replaced by fallback so storage details never reach the client.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.WithField("path", c.Request.URL.Path).Errorf("%s: %s", fallback, err)
		abortWithError(c, status, fallback)
		return
	}
	abortWithError(c, status, err.Error())
}
