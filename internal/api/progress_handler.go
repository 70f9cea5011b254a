package api

import (
	"net/http"
	"strconv"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// unknownDaysAgo is shown for groups without activity in the intensity window,
// instead of an unbounded number of days.
const unknownDaysAgo = 7

type ProgressHandler struct {
	progressService       service.ProgressService
	recommendationService service.RecommendationService
	defaultTopN           int
	now                   func() time.Time
}

func NewProgressHandler(progressService service.ProgressService, recommendationService service.RecommendationService, defaultTopN int) *ProgressHandler {
	return &ProgressHandler{
		progressService:       progressService,
		recommendationService: recommendationService,
		defaultTopN:           defaultTopN,
		now:                   time.Now,
	}
}

type WeeklyTargetRequest struct {
	Target int `json:"target" binding:"required"`
}

type ActivityResponse struct {
	MuscleGroup string           `json:"muscleGroup"`
	LastTrained *string          `json:"lastTrained"`
	DaysAgo     int              `json:"daysAgo"`
	TotalVolume float64          `json:"totalVolume"`
	Intensity   domain.Intensity `json:"intensity"`
}

type RecommendationResponse struct {
	Date     string                        `json:"date"`
	Groups   []string                      `json:"groups"`
	Statuses []domain.MuscleRecoveryStatus `json:"statuses"`
	Activity []ActivityResponse            `json:"activity"`
}

func MapRecommendationToResponse(rec *service.Recommendation) RecommendationResponse {
	resp := RecommendationResponse{
		Date:     rec.Date,
		Groups:   rec.Groups,
		Statuses: rec.Statuses,
		Activity: make([]ActivityResponse, len(rec.Activity)),
	}
	if resp.Groups == nil {
		resp.Groups = []string{}
	}
	for i, act := range rec.Activity {
		item := ActivityResponse{
			MuscleGroup: act.MuscleGroup,
			DaysAgo:     unknownDaysAgo,
			TotalVolume: act.TotalVolume,
			Intensity:   act.Intensity,
		}
		if act.DaysAgo != nil {
			item.DaysAgo = *act.DaysAgo
		}
		if act.LastTrained != nil {
			date := domain.FormatDate(*act.LastTrained)
			item.LastTrained = &date
		}
		resp.Activity[i] = item
	}
	return resp
}

// GetProgress godoc
// @Summary Get streaks of the authenticated user
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserProgressState
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	state, err := h.progressService.GetProgress(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve progress.")
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetWeeklyTarget godoc
// @Summary Set the number of sessions per week
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param target body WeeklyTargetRequest true "Sessions per week, 1 to 14"
// @Success 200 {object} domain.UserProgressState
// @Router /progress/weekly-target [put]
func (h *ProgressHandler) SetWeeklyTarget(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req WeeklyTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	state, err := h.progressService.SetWeeklyTarget(c.Request.Context(), userID, req.Target)
	if err != nil {
		respondWithServiceError(c, err, "Failed to update weekly target.")
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetRecommendations godoc
// @Summary Muscle groups to train
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD, defaults to today (UTC)"
// @Param top query int false "Number of groups, 0 for all"
// @Success 200 {object} RecommendationResponse
// @Router /recommendations [get]
func (h *ProgressHandler) GetRecommendations(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	today := h.now().UTC()
	if raw := c.Query("date"); raw != "" {
		if today, err = domain.ParseDate(raw); err != nil {
			abortWithError(c, http.StatusBadRequest, service.ErrInvalidDate.Error())
			return
		}
	}

	topN := h.defaultTopN
	if raw := c.Query("top"); raw != "" {
		if topN, err = strconv.Atoi(raw); err != nil || topN < 0 {
			abortWithError(c, http.StatusBadRequest, "top must be a non-negative integer")
			return
		}
	}

	rec, err := h.recommendationService.Recommend(c.Request.Context(), userID, today, topN)
	if err != nil {
		respondWithServiceError(c, err, "Failed to compute recommendations.")
		return
	}
	c.JSON(http.StatusOK, MapRecommendationToResponse(rec))
}
