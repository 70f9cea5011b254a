package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/progress"
	"alcyxob/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultLookbackDays = 90

// Recommendation is what to train on Date, with the data behind the choice.
type Recommendation struct {
	Date     string                        `json:"date"`
	Groups   []string                      `json:"groups"`
	Statuses []domain.MuscleRecoveryStatus `json:"statuses"`
	Activity []domain.MuscleActivity       `json:"activity"`
}

// RecommendationCache is satisfied by cache.UserCache[Recommendation].
type RecommendationCache interface {
	CacheInvalidator
	Get(userID, variant string) (Recommendation, bool)
	Set(userID, variant string, value Recommendation)
}

type RecommendationService interface {
	// Recommend ranks muscle groups for today. topN <= 0 returns every group.
	Recommend(ctx context.Context, userID primitive.ObjectID, today time.Time, topN int) (*Recommendation, error)
}

type RecommendationConfig struct {
	Recovery     progress.RecoveryConfig
	Classifier   progress.ClassifierConfig
	LookbackDays int
}

type recommendationService struct {
	dayRepo repository.WorkoutDayRepository
	cache   RecommendationCache
	metrics *metrics.Manager
	cfg     RecommendationConfig
}

func NewRecommendationService(
	dayRepo repository.WorkoutDayRepository,
	cache RecommendationCache,
	metricsManager *metrics.Manager,
	cfg RecommendationConfig,
) RecommendationService {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = DefaultLookbackDays
	}
	return &recommendationService{
		dayRepo: dayRepo,
		cache:   cache,
		metrics: metricsManager,
		cfg:     cfg,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userID primitive.ObjectID, today time.Time, topN int) (*Recommendation, error) {
	today = domain.TruncateDay(today)
	date := domain.FormatDate(today)
	if topN < 0 {
		topN = 0
	}

	variant := fmt.Sprintf("%s|%d", date, topN)
	if cached, ok := s.cache.Get(userID.Hex(), variant); ok {
		s.metrics.CounterCacheHits.Inc()
		return &cached, nil
	}
	s.metrics.CounterCacheMisses.Inc()

	from := domain.FormatDate(today.AddDate(0, 0, -s.cfg.LookbackDays))
	days, err := s.dayRepo.ListByUserInRange(ctx, userID, from, date)
	if err != nil {
		return nil, fmt.Errorf("load workout history: %w", err)
	}

	var history []domain.TrainingEntry
	for i := range days {
		history = append(history, days[i].TrainingEntries()...)
	}

	groups, lastTrained := trackedGroups(history)
	ranked := progress.RankRecovery(groups, lastTrained, s.cfg.Recovery, today)
	activity := progress.ClassifyIntensity(history, today, s.cfg.Classifier)

	rec := Recommendation{
		Date:     date,
		Groups:   progress.SelectRecommendations(ranked, history, topN),
		Statuses: ranked,
		Activity: make([]domain.MuscleActivity, 0, len(activity)),
	}
	for _, group := range progress.CanonicalMuscleGroups {
		rec.Activity = append(rec.Activity, activity[group])
	}

	s.cache.Set(userID.Hex(), variant, rec)
	s.metrics.CounterRecommendations.Inc()
	return &rec, nil
}

// trackedGroups is every canonical group plus any other label found in history,
// with the latest training date per normalized group.
func trackedGroups(history []domain.TrainingEntry) ([]string, map[string]time.Time) {
	lastTrained := make(map[string]time.Time)
	for _, entry := range history {
		group := progress.NormalizeMuscleGroup(entry.MuscleGroup)
		if group == "" {
			continue
		}
		if last, ok := lastTrained[group]; !ok || entry.Date.After(last) {
			lastTrained[group] = entry.Date
		}
	}

	groups := append([]string{}, progress.CanonicalMuscleGroups...)
	var extra []string
	for group := range lastTrained {
		if _, ok := progress.CanonicalMuscleGroup(group); !ok {
			extra = append(extra, group)
		}
	}
	sort.Strings(extra)
	return append(groups, extra...), lastTrained
}
