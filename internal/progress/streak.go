package progress

import (
	"time"

	"alcyxob/fitness-tracker/internal/domain"
)

// WeekStart returns the Monday (UTC midnight) of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := domain.TruncateDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ApplyWorkoutCompleted is the streak state transition for one WorkoutCompleted(date) event.
//
// It does not check whether date was already applied: calling it twice for the
// same day double counts the weekly sessions. The caller guarantees at most one
// call per completed calendar day.
func ApplyWorkoutCompleted(prior domain.UserProgressState, date time.Time, weeklyTarget int) domain.UserProgressState {
	next := prior
	day := domain.TruncateDay(date)
	next.WeeklyFrequencyTarget = weeklyTarget

	applyDaily(&next, day)
	applyWeekly(&next, day, weeklyTarget)

	return next
}

func applyDaily(s *domain.UserProgressState, day time.Time) {
	if s.LastWorkoutDate == nil {
		s.CurrentStreak = 1
	} else {
		gap := domain.DaysBetween(*s.LastWorkoutDate, day)
		switch {
		case gap < 0:
			// backfilled day older than the last workout, daily streak is untouched
			return
		case gap == 0:
		case gap == 1:
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastWorkoutDate = &day
}

func applyWeekly(s *domain.UserProgressState, day time.Time, target int) {
	week := WeekStart(day)

	switch {
	case s.CurrentWeekStart != nil && s.CurrentWeekStart.Equal(week):
		s.WorkoutsThisWeek++
		// Only the session that reaches the target counts, later ones in the same week don't.
		if target > 0 && s.WorkoutsThisWeek == target {
			s.WeeklyCurrentStreak++
			if s.WeeklyCurrentStreak > s.WeeklyLongestStreak {
				s.WeeklyLongestStreak = s.WeeklyCurrentStreak
			}
		}
	case s.CurrentWeekStart != nil && week.Before(*s.CurrentWeekStart):
		// the session belongs to a week that is already closed
	default:
		// The opening session of a week never increments, even when the target is 1.
		if s.WorkoutsThisWeek < target {
			s.WeeklyCurrentStreak = 0
		}
		s.WorkoutsThisWeek = 1
		s.CurrentWeekStart = &week
	}
}
