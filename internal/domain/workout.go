package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseLog is one exercise within one day's workout.
// After a successful merge len(Weight) == len(RepsPerSet) == len(DoneFlags) == Sets.
type ExerciseLog struct {
	ExerciseID  string    `bson:"exerciseId" json:"exerciseId"`
	Name        string    `bson:"name" json:"name"`
	MuscleGroup string    `bson:"muscleGroup" json:"muscleGroup"`
	Sets        int       `bson:"sets" json:"sets"`
	Weight      []float64 `bson:"weight" json:"weight"`         // per-set load
	RepsPerSet  []int     `bson:"repsPerSet" json:"repsPerSet"` // per-set repetitions
	DoneFlags   []bool    `bson:"doneFlags" json:"doneFlags"`   // per-set, explicitly completed
}

// HasConsistentSets reports whether the per-set arrays all match Sets.
func (l *ExerciseLog) HasConsistentSets() bool {
	return len(l.Weight) == l.Sets && len(l.RepsPerSet) == l.Sets && len(l.DoneFlags) == l.Sets
}

// SetPatch is a client-submitted partial update of an exercise's sets.
// Zero values mean "not provided" for weight and reps.
type SetPatch struct {
	Weight []float64 `json:"weight"`
	Reps   []int     `json:"reps"`
	Done   []bool    `json:"done"`
}

// ExerciseMeta identifies the exercise a patch applies to.
type ExerciseMeta struct {
	ExerciseID  string `json:"exerciseId"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
}

// WorkoutDay is one user's record for one calendar date.
// The document store keys it by (UserID, Date).
type WorkoutDay struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID     `bson:"userId" json:"userId"`
	Date            string                 `bson:"date" json:"date"` // "YYYY-MM-DD"
	DurationMinutes int                    `bson:"durationMinutes" json:"durationMinutes"`
	RestSeconds     int                    `bson:"restSeconds" json:"restSeconds"`
	Exercises       map[string]ExerciseLog `bson:"exercises" json:"exercises"` // exerciseId -> log
	CompletedAt     *time.Time             `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// IsCompleted reports whether the streak transition was already applied for this day.
func (d *WorkoutDay) IsCompleted() bool {
	return d.CompletedAt != nil
}

// TrainingEntry is a flattened history row: one exercise log on one date.
type TrainingEntry struct {
	Date        time.Time `json:"date"`
	MuscleGroup string    `json:"muscleGroup"`
	Weight      []float64 `json:"weight"`
	Reps        []int     `json:"reps"`
}

// TrainingEntries flattens the day's exercise logs into history rows.
// Days with an unparsable date yield no rows.
func (d *WorkoutDay) TrainingEntries() []TrainingEntry {
	date, err := ParseDate(d.Date)
	if err != nil {
		return nil
	}
	entries := make([]TrainingEntry, 0, len(d.Exercises))
	for _, ex := range d.Exercises {
		entries = append(entries, TrainingEntry{
			Date:        date,
			MuscleGroup: ex.MuscleGroup,
			Weight:      ex.Weight,
			Reps:        ex.RepsPerSet,
		})
	}
	return entries
}
