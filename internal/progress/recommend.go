package progress

import (
	"sort"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
)

// SelectRecommendations picks up to topN muscle groups to train today from the
// ranked statuses. topN <= 0 returns every candidate.
//
// Groups trained in the most recent session are left out, unless that would
// leave nothing to recommend. Never-trained groups come first, then groups are
// ordered Priority, Ready, Recovering and within a status by the longest rest.
func SelectRecommendations(ranked []domain.MuscleRecoveryStatus, recent []domain.TrainingEntry, topN int) []string {
	excluded := lastSessionGroups(recent)

	pool := make([]domain.MuscleRecoveryStatus, 0, len(ranked))
	for _, status := range ranked {
		if excluded[NormalizeMuscleGroup(status.MuscleGroup)] {
			continue
		}
		pool = append(pool, status)
	}
	if len(pool) == 0 {
		pool = append(pool, ranked...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return recommendedBefore(pool[i], pool[j])
	})

	if topN > 0 && len(pool) > topN {
		pool = pool[:topN]
	}

	groups := make([]string, 0, len(pool))
	for _, status := range pool {
		groups = append(groups, status.MuscleGroup)
	}
	return groups
}

func recommendedBefore(a, b domain.MuscleRecoveryStatus) bool {
	if a.NeverTrained() != b.NeverTrained() {
		return a.NeverTrained()
	}
	if a.Status.Rank() != b.Status.Rank() {
		return a.Status.Rank() < b.Status.Rank()
	}
	return a.DaysAgo > b.DaysAgo
}

// lastSessionGroups returns the normalized groups trained on the latest date in history.
func lastSessionGroups(history []domain.TrainingEntry) map[string]bool {
	groups := make(map[string]bool)
	if len(history) == 0 {
		return groups
	}

	var latest time.Time
	for _, entry := range history {
		if day := domain.TruncateDay(entry.Date); day.After(latest) {
			latest = day
		}
	}
	for _, entry := range history {
		if domain.TruncateDay(entry.Date).Equal(latest) {
			groups[NormalizeMuscleGroup(entry.MuscleGroup)] = true
		}
	}
	return groups
}
