package progress

import (
	"sort"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
)

// NeverTrainedDaysAgo is the DaysAgo reported for groups without any training.
const NeverTrainedDaysAgo = 9999

// RecoveryConfig parameterizes the recovery model.
type RecoveryConfig struct {
	// DefaultRecoveryDays applies to groups missing from Table.
	DefaultRecoveryDays int
	// PriorityExtraDays is how far past its recovery window a group has to be
	// before it is flagged Priority.
	PriorityExtraDays int
	// Table maps a muscle group to its required rest days.
	Table map[string]int
}

func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		DefaultRecoveryDays: DefaultRecoveryDays,
		PriorityExtraDays:   DefaultPriorityExtraDays,
		Table:               DefaultRecoveryTable(),
	}
}

func (c RecoveryConfig) requiredDays(group string) int {
	if days, ok := c.Table[group]; ok && days > 0 {
		return days
	}
	if days, ok := c.Table[NormalizeMuscleGroup(group)]; ok && days > 0 {
		return days
	}
	if c.DefaultRecoveryDays > 0 {
		return c.DefaultRecoveryDays
	}
	return DefaultRecoveryDays
}

func (c RecoveryConfig) priorityExtraDays() int {
	if c.PriorityExtraDays < 0 {
		return 0
	}
	return c.PriorityExtraDays
}

// RankRecovery classifies each tracked group and orders the result most urgent
// first: Priority, then Ready, then Recovering by ascending progress. Ties keep
// the order of groups.
func RankRecovery(groups []string, lastTrained map[string]time.Time, cfg RecoveryConfig, today time.Time) []domain.MuscleRecoveryStatus {
	statuses := make([]domain.MuscleRecoveryStatus, 0, len(groups))
	for _, group := range groups {
		status := domain.MuscleRecoveryStatus{
			MuscleGroup:          group,
			DaysAgo:              NeverTrainedDaysAgo,
			RecoveryDaysRequired: cfg.requiredDays(group),
		}
		if trained, ok := lastTrained[group]; ok {
			day := domain.TruncateDay(trained)
			status.LastTrainedDate = &day
			status.DaysAgo = domain.DaysBetween(day, today)
			if status.DaysAgo < 0 {
				status.DaysAgo = 0
			}
		}
		classifyRecovery(&status, cfg.priorityExtraDays())
		statuses = append(statuses, status)
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		a, b := statuses[i], statuses[j]
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() < b.Status.Rank()
		}
		if a.Status == domain.StatusRecovering {
			return a.ProgressPercent < b.ProgressPercent
		}
		return false
	})

	for i := range statuses {
		statuses[i].RankOrder = i + 1
	}
	return statuses
}

// classifyRecovery: Ready has a closed lower bound, daysAgo == required is Ready.
func classifyRecovery(s *domain.MuscleRecoveryStatus, priorityExtraDays int) {
	required := s.RecoveryDaysRequired
	switch {
	case s.DaysAgo >= required+priorityExtraDays:
		s.Status = domain.StatusPriority
		s.ProgressPercent = 100
	case s.DaysAgo >= required:
		s.Status = domain.StatusReady
		s.ProgressPercent = 100
	default:
		s.Status = domain.StatusRecovering
		s.ProgressPercent = s.DaysAgo * 100 / required
		s.DaysLeft = required - s.DaysAgo
	}
}
