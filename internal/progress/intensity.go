package progress

import (
	"time"

	"alcyxob/fitness-tracker/internal/domain"
)

// ClassifierConfig parameterizes ClassifyIntensity.
type ClassifierConfig struct {
	WindowDays int
	Thresholds map[string]IntensityThresholds
	Fallback   IntensityThresholds
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		WindowDays: DefaultWindowDays,
		Thresholds: DefaultIntensityTable(),
		Fallback:   DefaultFallbackThresholds,
	}
}

func (c ClassifierConfig) thresholdsFor(group string) IntensityThresholds {
	if th, ok := c.Thresholds[group]; ok {
		return th
	}
	return c.Fallback
}

func (c ClassifierConfig) windowDays() int {
	if c.WindowDays <= 0 {
		return DefaultWindowDays
	}
	return c.WindowDays
}

// ClassifyIntensity sums weight*reps per canonical muscle group over the last
// WindowDays days and labels each group low, medium or high.
//
// Labels outside the canonical set are skipped. Every canonical group is
// present in the result; a group without activity in the window has nil
// DaysAgo and LastTrained and low intensity.
func ClassifyIntensity(history []domain.TrainingEntry, today time.Time, cfg ClassifierConfig) map[string]domain.MuscleActivity {
	window := cfg.windowDays()

	activity := make(map[string]domain.MuscleActivity, len(CanonicalMuscleGroups))
	for _, group := range CanonicalMuscleGroups {
		activity[group] = domain.MuscleActivity{MuscleGroup: group, Intensity: domain.IntensityLow}
	}

	for _, entry := range history {
		group, ok := CanonicalMuscleGroup(entry.MuscleGroup)
		if !ok {
			continue
		}
		daysAgo := domain.DaysBetween(entry.Date, today)
		if daysAgo < 0 || daysAgo > window {
			continue
		}

		act := activity[group]
		act.TotalVolume += entryVolume(entry)
		day := domain.TruncateDay(entry.Date)
		if act.LastTrained == nil || day.After(*act.LastTrained) {
			act.LastTrained = &day
			act.DaysAgo = &daysAgo
		}
		activity[group] = act
	}

	for group, act := range activity {
		if act.LastTrained != nil {
			act.Intensity = classifyVolume(act.TotalVolume, cfg.thresholdsFor(group))
		}
		activity[group] = act
	}
	return activity
}

// classifyVolume uses inclusive lower bounds, same as the recovery boundaries.
func classifyVolume(volume float64, th IntensityThresholds) domain.Intensity {
	switch {
	case volume >= th.High:
		return domain.IntensityHigh
	case volume >= th.Medium:
		return domain.IntensityMedium
	default:
		return domain.IntensityLow
	}
}

func entryVolume(entry domain.TrainingEntry) float64 {
	var total float64
	for i := 0; i < len(entry.Weight) && i < len(entry.Reps); i++ {
		total += entry.Weight[i] * float64(entry.Reps[i])
	}
	return total
}
