// Package progress holds the workout ledger rules: merging client set updates
// into a day's exercise log, streak transitions, muscle recovery ranking,
// recommendation selection and volume/intensity classification.
//
// Everything in this package is a pure function over explicit inputs. Reading
// and writing the document store is the caller's job.
package progress

import "strings"

// Canonical muscle groups, in the order they are tracked and reported.
const (
	Chest     = "Chest"
	Back      = "Back"
	Shoulders = "Shoulders"
	Biceps    = "Biceps"
	Triceps   = "Triceps"
	Legs      = "Legs"
	Glutes    = "Glutes"
	Calves    = "Calves"
	Abs       = "Abs"
	Forearms  = "Forearms"
)

// CanonicalMuscleGroups lists every canonical group in tracking order.
var CanonicalMuscleGroups = []string{
	Chest, Back, Shoulders, Biceps, Triceps, Legs, Glutes, Calves, Abs, Forearms,
}

// muscleGroupSynonyms maps lowercased free-text labels to canonical groups.
var muscleGroupSynonyms = map[string]string{
	"chest":      Chest,
	"pecs":       Chest,
	"pectorals":  Chest,
	"back":       Back,
	"lats":       Back,
	"upper back": Back,
	"lower back": Back,
	"traps":      Back,
	"shoulders":  Shoulders,
	"shoulder":   Shoulders,
	"delts":      Shoulders,
	"deltoids":   Shoulders,
	"biceps":     Biceps,
	"bicep":      Biceps,
	"triceps":    Triceps,
	"tricep":     Triceps,
	"legs":       Legs,
	"leg":        Legs,
	"quads":      Legs,
	"quadriceps": Legs,
	"hamstrings": Legs,
	"glutes":     Glutes,
	"glute":      Glutes,
	"calves":     Calves,
	"calf":       Calves,
	"abs":        Abs,
	"core":       Abs,
	"abdominals": Abs,
	"obliques":   Abs,
	"forearms":   Forearms,
	"forearm":    Forearms,
	"grip":       Forearms,
}

// CanonicalMuscleGroup resolves a free-text label through the synonym table.
// ok is false for labels outside the canonical set.
func CanonicalMuscleGroup(label string) (canonical string, ok bool) {
	key := strings.ToLower(strings.Join(strings.Fields(label), " "))
	canonical, ok = muscleGroupSynonyms[key]
	return canonical, ok
}

// NormalizeMuscleGroup returns the canonical name for label, or the trimmed
// label verbatim when it is not a known synonym.
func NormalizeMuscleGroup(label string) string {
	if canonical, ok := CanonicalMuscleGroup(label); ok {
		return canonical
	}
	return strings.TrimSpace(label)
}

// Defaults for the recovery model.
const (
	DefaultRecoveryDays      = 3
	DefaultPriorityExtraDays = 14
	DefaultWindowDays        = 30
)

// DefaultRecoveryTable is the number of rest days each canonical group needs.
func DefaultRecoveryTable() map[string]int {
	return map[string]int{
		Chest:     2,
		Back:      3,
		Shoulders: 2,
		Biceps:    2,
		Triceps:   2,
		Legs:      3,
		Glutes:    3,
		Calves:    1,
		Abs:       1,
		Forearms:  1,
	}
}

// IntensityThresholds are the volume cutoffs (sum of weight*reps) for one group.
// Both bounds are inclusive.
type IntensityThresholds struct {
	Medium float64 `mapstructure:"medium" json:"medium"`
	High   float64 `mapstructure:"high" json:"high"`
}

// DefaultFallbackThresholds apply to groups missing from the threshold table.
var DefaultFallbackThresholds = IntensityThresholds{Medium: 2000, High: 5000}

// DefaultIntensityTable holds per-group cutoffs over a 30-day window.
func DefaultIntensityTable() map[string]IntensityThresholds {
	return map[string]IntensityThresholds{
		Chest:     {Medium: 5000, High: 10000},
		Back:      {Medium: 6000, High: 12000},
		Shoulders: {Medium: 3000, High: 6000},
		Biceps:    {Medium: 1500, High: 3000},
		Triceps:   {Medium: 1500, High: 3000},
		Legs:      {Medium: 8000, High: 16000},
		Glutes:    {Medium: 4000, High: 8000},
		Calves:    {Medium: 1500, High: 3000},
		Abs:       {Medium: 1000, High: 2000},
		Forearms:  {Medium: 800, High: 1600},
	}
}
