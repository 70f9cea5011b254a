package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProgressState holds daily and weekly-frequency streaks. One record per user,
// keyed by the user ID.
type UserProgressState struct {
	UserID          primitive.ObjectID `bson:"_id" json:"userId"`
	CurrentStreak   int                `bson:"currentStreak" json:"currentStreak"`
	LongestStreak   int                `bson:"longestStreak" json:"longestStreak"`
	LastWorkoutDate *time.Time         `bson:"lastWorkoutDate,omitempty" json:"lastWorkoutDate,omitempty"`

	WeeklyFrequencyTarget int        `bson:"weeklyFrequencyTarget" json:"weeklyFrequencyTarget"` // sessions per week
	WorkoutsThisWeek      int        `bson:"workoutsThisWeek" json:"workoutsThisWeek"`
	CurrentWeekStart      *time.Time `bson:"currentWeekStart,omitempty" json:"currentWeekStart,omitempty"` // Monday of the counted week
	WeeklyCurrentStreak   int        `bson:"weeklyCurrentStreak" json:"weeklyCurrentStreak"`
	WeeklyLongestStreak   int        `bson:"weeklyLongestStreak" json:"weeklyLongestStreak"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RecoveryStatus classifies a muscle group by how long it has rested.
type RecoveryStatus string

const (
	StatusPriority   RecoveryStatus = "priority"   // badly overdue
	StatusReady      RecoveryStatus = "ready"      // recovered
	StatusRecovering RecoveryStatus = "recovering" // still inside its recovery window
)

// Rank orders statuses from most to least urgent.
func (s RecoveryStatus) Rank() int {
	switch s {
	case StatusPriority:
		return 0
	case StatusReady:
		return 1
	default:
		return 2
	}
}

// MuscleRecoveryStatus is derived per muscle group and never persisted.
type MuscleRecoveryStatus struct {
	MuscleGroup          string         `json:"muscleGroup"`
	LastTrainedDate      *time.Time     `json:"lastTrainedDate,omitempty"` // nil when never trained
	DaysAgo              int            `json:"daysAgo"`
	RecoveryDaysRequired int            `json:"recoveryDaysRequired"`
	Status               RecoveryStatus `json:"status"`
	ProgressPercent      int            `json:"progressPercent"`
	DaysLeft             int            `json:"daysLeft"`
	RankOrder            int            `json:"rankOrder"`
}

// NeverTrained reports whether the group has no recorded training.
func (s *MuscleRecoveryStatus) NeverTrained() bool {
	return s.LastTrainedDate == nil
}

// Intensity is a coarse label of accumulated training volume.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// MuscleActivity aggregates a canonical muscle group's volume over a rolling window.
// DaysAgo and LastTrained are nil when the group has no activity in the window.
type MuscleActivity struct {
	MuscleGroup string     `json:"muscleGroup"`
	LastTrained *time.Time `json:"lastTrained,omitempty"`
	DaysAgo     *int       `json:"daysAgo,omitempty"`
	TotalVolume float64    `json:"totalVolume"`
	Intensity   Intensity  `json:"intensity"`
}
