package workouts

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"Date", "Time", "Muscle Group", "Exercise", "Set Number", "Reps", "Weight (kg)"}

const (
	ExportFilename    = "workouts.csv"
	ExportAllFilename = "all_workouts.csv"
)

// WriteCSV writes the export rows with a header line. With includeUser set, every
// line starts with the owner's username.
func WriteCSV(w io.Writer, rows []ExportRow, includeUser bool) error {
	cw := csv.NewWriter(w)

	header := csvHeader
	if includeUser {
		header = append([]string{"User"}, csvHeader...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))
		if includeUser {
			record = append(record, row.Username)
		}
		record = append(record,
			row.Date,
			row.Time,
			row.MuscleGroup,
			row.Exercise,
			optionalInt(row.SetNumber),
			optionalInt(row.Reps),
			optionalFloat(row.WeightKg),
		)
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
