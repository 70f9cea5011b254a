package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"alcyxob/fitness-tracker/internal/domain"
)

// ContentType of the rendered history.
const ContentType = "text/csv"

var header = []string{"Date", "Exercise", "Muscle Group", "Set", "Weight", "Reps", "Done"}

// WriteCSV renders one row per logged set. Days keep their order, exercises
// within a day are ordered by name. It returns the number of set rows written.
func WriteCSV(w io.Writer, days []domain.WorkoutDay) (int, error) {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	rows := 0
	for _, day := range days {
		for _, log := range sortedLogs(day.Exercises) {
			for i := 0; i < log.Sets; i++ {
				if err := writer.Write(formatRow(day.Date, log, i)); err != nil {
					return rows, fmt.Errorf("failed to write row: %w", err)
				}
				rows++
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, fmt.Errorf("failed to flush csv: %w", err)
	}
	return rows, nil
}

func sortedLogs(exercises map[string]domain.ExerciseLog) []domain.ExerciseLog {
	logs := make([]domain.ExerciseLog, 0, len(exercises))
	for _, l := range exercises {
		logs = append(logs, l)
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Name != logs[j].Name {
			return logs[i].Name < logs[j].Name
		}
		return logs[i].ExerciseID < logs[j].ExerciseID
	})
	return logs
}

// formatRow formats set i of the log; missing per-set values render blank.
func formatRow(date string, log domain.ExerciseLog, i int) []string {
	weightStr := ""
	if i < len(log.Weight) && log.Weight[i] > 0 {
		weightStr = strconv.FormatFloat(log.Weight[i], 'f', -1, 64)
	}
	repsStr := ""
	if i < len(log.RepsPerSet) && log.RepsPerSet[i] > 0 {
		repsStr = strconv.Itoa(log.RepsPerSet[i])
	}
	done := i < len(log.DoneFlags) && log.DoneFlags[i]

	return []string{
		date,
		log.Name,
		log.MuscleGroup,
		strconv.Itoa(i + 1),
		weightStr,
		repsStr,
		strconv.FormatBool(done),
	}
}
