package api

import (
	"errors"
	"net/http"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the per-day workout log.
type WorkoutHandler struct {
	workoutService  service.WorkoutService
	progressService service.ProgressService
}

func NewWorkoutHandler(workoutService service.WorkoutService, progressService service.ProgressService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService:  workoutService,
		progressService: progressService,
	}
}

// SaveSetsRequest carries the set patch of one exercise. Name and muscle group
// may be omitted once the exercise is logged for the day or is in the catalog.
type SaveSetsRequest struct {
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup"`
	Weight      []float64 `json:"weight"`
	Reps        []int     `json:"reps"`
	Done        []bool    `json:"done"`
}

type UpdateDayRequest struct {
	DurationMinutes *int `json:"durationMinutes"`
	RestSeconds     *int `json:"restSeconds"`
}

// GetDay godoc
// @Summary Get the workout log of a date
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} domain.WorkoutDay
// @Failure 404 {object} gin.H "Nothing logged on that date"
// @Router /workouts/{date} [get]
func (h *WorkoutHandler) GetDay(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	day, err := h.workoutService.GetDay(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve workout.")
		return
	}
	c.JSON(http.StatusOK, day)
}

// UpdateDay godoc
// @Summary Update duration and rest time of a day
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Param details body UpdateDayRequest true "Fields to change"
// @Success 200 {object} domain.WorkoutDay
// @Router /workouts/{date} [patch]
func (h *WorkoutHandler) UpdateDay(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req UpdateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.workoutService.UpdateDayDetails(c.Request.Context(), userID, c.Param("date"), service.DayDetails{
		DurationMinutes: req.DurationMinutes,
		RestSeconds:     req.RestSeconds,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to update workout.")
		return
	}
	c.JSON(http.StatusOK, day)
}

// SaveExerciseSets godoc
// @Summary Merge sets into an exercise of a day
// @Description Positive weight and reps replace stored values, zeros keep them. Done flags are never cleared.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Param exerciseId path string true "Exercise ID"
// @Param sets body SaveSetsRequest true "Set patch"
// @Success 200 {object} domain.ExerciseLog
// @Failure 409 {object} gin.H "Another write to the day is in progress"
// @Failure 422 {object} gin.H "No set has both weight and reps"
// @Router /workouts/{date}/exercises/{exerciseId} [put]
func (h *WorkoutHandler) SaveExerciseSets(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req SaveSetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	meta := domain.ExerciseMeta{
		ExerciseID:  c.Param("exerciseId"),
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
	}
	patch := domain.SetPatch{Weight: req.Weight, Reps: req.Reps, Done: req.Done}

	exerciseLog, err := h.workoutService.SaveExerciseSets(c.Request.Context(), userID, c.Param("date"), meta, patch)
	if err != nil {
		if errors.Is(err, service.ErrNoValidSet) {
			// the stored log is returned unchanged so the client can restore its form
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"error": service.ErrNoValidSet.Error(),
				"log":   exerciseLog,
			})
			return
		}
		respondWithServiceError(c, err, "Failed to save sets.")
		return
	}
	c.JSON(http.StatusOK, exerciseLog)
}

// DeleteExercise godoc
// @Summary Remove an exercise from a day
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} domain.WorkoutDay
// @Router /workouts/{date}/exercises/{exerciseId} [delete]
func (h *WorkoutHandler) DeleteExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	day, err := h.workoutService.DeleteExercise(c.Request.Context(), userID, c.Param("date"), c.Param("exerciseId"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to delete exercise.")
		return
	}
	c.JSON(http.StatusOK, day)
}

// CompleteWorkout godoc
// @Summary Mark a day's workout as completed
// @Description Updates daily and weekly streaks once per day. Repeated calls return the current progress.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} domain.UserProgressState
// @Failure 400 {object} gin.H "Nothing logged on that day"
// @Router /workouts/{date}/complete [post]
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	state, err := h.progressService.CompleteWorkout(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondWithServiceError(c, err, "Failed to complete workout.")
		return
	}
	c.JSON(http.StatusOK, state)
}
