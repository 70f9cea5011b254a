package progress

import (
	"errors"
	"fmt"

	"alcyxob/fitness-tracker/internal/domain"
)

// ErrNoValidSet is the cause of every ValidationError from MergeSets.
var ErrNoValidSet = errors.New("complete at least one set with weight and reps")

// ValidationError is returned when no set of the merged log has both a positive
// weight and a positive rep count. Nothing should be persisted.
type ValidationError struct {
	ExerciseID string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("exercise %q: %s", e.ExerciseID, ErrNoValidSet)
}

func (e *ValidationError) Unwrap() error {
	return ErrNoValidSet
}

// MergeResult is the outcome of a successful merge.
type MergeResult struct {
	Log domain.ExerciseLog
	// Corrupted is set when the stored log had per-set arrays of different
	// lengths. Missing slots were read as zero/false; the host should report it.
	Corrupted bool
}

// MergeSets merges a client patch into the stored log of the same day and exercise.
//
// For every slot a positive patch weight (or rep count) replaces the stored one,
// otherwise the stored value is kept. Done flags are OR'ed, so a set marked done
// stays done. Trailing slots past the last set with both weight and reps are
// dropped. existing may be nil for the first save of the exercise on that day.
//
// Merging the same patch twice yields the same log.
func MergeSets(existing *domain.ExerciseLog, patch domain.SetPatch, meta domain.ExerciseMeta) (*MergeResult, error) {
	var (
		baseWeight []float64
		baseReps   []int
		baseDone   []bool
		corrupted  bool
	)
	if existing != nil {
		baseWeight, baseReps, baseDone = existing.Weight, existing.RepsPerSet, existing.DoneFlags
		corrupted = !existing.HasConsistentSets()
	}

	n := maxLen(len(baseWeight), len(baseReps), len(baseDone), len(patch.Weight), len(patch.Reps), len(patch.Done))
	weight := make([]float64, n)
	reps := make([]int, n)
	done := make([]bool, n)
	for i := 0; i < n; i++ {
		weight[i] = fillFloat(patch.Weight, baseWeight, i)
		reps[i] = fillInt(patch.Reps, baseReps, i)
		done[i] = boolAt(baseDone, i) || boolAt(patch.Done, i)
	}

	sets := trimmedLength(weight, reps)
	if sets == 0 {
		return nil, &ValidationError{ExerciseID: meta.ExerciseID}
	}

	merged := domain.ExerciseLog{
		ExerciseID:  meta.ExerciseID,
		Name:        meta.Name,
		MuscleGroup: meta.MuscleGroup,
		Sets:        sets,
		Weight:      weight[:sets:sets],
		RepsPerSet:  reps[:sets:sets],
		DoneFlags:   done[:sets:sets],
	}
	if existing != nil {
		if merged.ExerciseID == "" {
			merged.ExerciseID = existing.ExerciseID
		}
		if merged.Name == "" {
			merged.Name = existing.Name
		}
		if merged.MuscleGroup == "" {
			merged.MuscleGroup = existing.MuscleGroup
		}
	}

	return &MergeResult{Log: merged, Corrupted: corrupted}, nil
}

// trimmedLength is one past the last slot holding both a positive weight and positive reps.
func trimmedLength(weight []float64, reps []int) int {
	for i := len(weight) - 1; i >= 0; i-- {
		if weight[i] > 0 && reps[i] > 0 {
			return i + 1
		}
	}
	return 0
}

func fillFloat(patch, base []float64, i int) float64 {
	if i < len(patch) && patch[i] > 0 {
		return patch[i]
	}
	if i < len(base) {
		return base[i]
	}
	return 0
}

func fillInt(patch, base []int, i int) int {
	if i < len(patch) && patch[i] > 0 {
		return patch[i]
	}
	if i < len(base) {
		return base[i]
	}
	return 0
}

func boolAt(flags []bool, i int) bool {
	return i < len(flags) && flags[i]
}

func maxLen(lengths ...int) int {
	m := 0
	for _, l := range lengths {
		if l > m {
			m = l
		}
	}
	return m
}
