package workouts

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Session is a timed gym visit. End fields are nil while the session is open.
type Session struct {
	ID              int      `json:"id"`
	UserID          int      `json:"userId"`
	StartDate       string   `json:"startDate"`
	StartTime       string   `json:"startTime"`
	EndDate         *string  `json:"endDate,omitempty"`
	EndTime         *string  `json:"endTime,omitempty"`
	DurationMinutes *float64 `json:"durationMinutes,omitempty"`
}

func (s *Session) IsOpen() bool {
	return s.EndDate == nil
}

// StartedAt interprets the stored start date and time in loc.
func (s *Session) StartedAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, s.StartDate+" "+s.StartTime, loc)
}

type WorkoutSet struct {
	ID        int     `json:"id"`
	WorkoutID int     `json:"workoutId"`
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weightKg"`
}

type Workout struct {
	ID          int          `json:"id"`
	UserID      int          `json:"userId"`
	SessionID   int          `json:"sessionId"`
	Date        string       `json:"date"`
	Time        string       `json:"time"`
	MuscleGroup string       `json:"muscleGroup"`
	Exercise    string       `json:"exercise"`
	Sets        []WorkoutSet `json:"sets"`
}

type MuscleGroupCount struct {
	MuscleGroup string `json:"muscleGroup"`
	Count       int    `json:"count"`
}

type Stats struct {
	TotalWorkouts         int     `json:"totalWorkouts"`
	TotalSets             int     `json:"totalSets"`
	CompletedSessions     int     `json:"completedSessions"`
	TotalVolumeKg         float64 `json:"totalVolumeKg"`
	TotalSessionMinutes   float64 `json:"totalSessionMinutes"`
	AverageSessionMinutes float64 `json:"averageSessionMinutes"`
}

// ExportRow is one CSV line: a single set, or a workout without sets (set fields nil).
type ExportRow struct {
	Username    string
	Date        string
	Time        string
	MuscleGroup string
	Exercise    string
	SetNumber   *int
	Reps        *int
	WeightKg    *float64
}

// DurationMinutes returns the minutes elapsed between the start instant and end,
// both taken at second granularity. A start after end yields 0.
func DurationMinutes(start, end time.Time) float64 {
	d := end.Truncate(time.Second).Sub(start.Truncate(time.Second))
	if d < 0 {
		return 0
	}
	return d.Seconds() / 60
}

func formatStamp(t time.Time) (date, clock string) {
	return t.Format(DateLayout), t.Format(TimeLayout)
}

func (s *Session) String() string {
	if s.IsOpen() {
		return fmt.Sprintf("session[%d] user[%d] open since %s %s", s.ID, s.UserID, s.StartDate, s.StartTime)
	}
	return fmt.Sprintf("session[%d] user[%d] %s %s - %s %s", s.ID, s.UserID, s.StartDate, s.StartTime, *s.EndDate, *s.EndTime)
}
