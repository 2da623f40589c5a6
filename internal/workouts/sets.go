package workouts

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// SetCandidate is one set row as submitted by the form, before zero-rep rows are dropped.
type SetCandidate struct {
	Position int
	Reps     int
	WeightKg float64
}

// ParseSetCandidates reads set_<n>_reps / set_<n>_weight for n = 1, 2, ...
// until the first position where neither key is present.
func ParseSetCandidates(form url.Values) ([]SetCandidate, error) {
	var candidates []SetCandidate
	for position := 1; ; position++ {
		repsKey := fmt.Sprintf("set_%d_reps", position)
		weightKey := fmt.Sprintf("set_%d_weight", position)
		_, hasReps := form[repsKey]
		_, hasWeight := form[weightKey]
		if !hasReps && !hasWeight {
			break
		}

		reps, err := parseReps(form.Get(repsKey))
		if err != nil {
			return nil, fmt.Errorf("%w: set %d reps: %w", ErrInvalidSet, position, err)
		}
		weight, err := parseWeight(form.Get(weightKey))
		if err != nil {
			return nil, fmt.Errorf("%w: set %d weight: %w", ErrInvalidSet, position, err)
		}

		candidates = append(candidates, SetCandidate{
			Position: position,
			Reps:     reps,
			WeightKg: weight,
		})
	}
	return candidates, nil
}

// BuildSets keeps candidates with reps > 0, numbering each by its form position.
func BuildSets(candidates []SetCandidate) []WorkoutSet {
	sets := make([]WorkoutSet, 0, len(candidates))
	for _, c := range candidates {
		if c.Reps <= 0 {
			continue
		}
		sets = append(sets, WorkoutSet{
			SetNumber: c.Position,
			Reps:      c.Reps,
			WeightKg:  c.WeightKg,
		})
	}
	return sets
}

func parseReps(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	// reps column is a 32-bit INTEGER
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not a 32-bit number: %q", raw)
	}
	reps := int(parsed)
	if reps < 0 {
		return 0, fmt.Errorf("negative: %d", reps)
	}
	return reps, nil
}

func parseWeight(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, fmt.Errorf("invalid: %q", raw)
	}
	return weight, nil
}
