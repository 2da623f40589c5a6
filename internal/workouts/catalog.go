package workouts

// MuscleGroups lists the catalog groups in display order.
var MuscleGroups = []string{"Chest", "Back", "Shoulders", "Arms", "Legs", "Core"}

// Catalog maps a muscle group to its suggested exercises. Read-only.
var Catalog = map[string][]string{
	"Chest":     {"Bench Press", "Incline Bench Press", "Decline Bench Press", "Dumbbell Flyes", "Push-ups", "Cable Crossover"},
	"Back":      {"Deadlift", "Pull-ups", "Barbell Row", "Lat Pulldown", "T-Bar Row", "Cable Row"},
	"Shoulders": {"Overhead Press", "Lateral Raises", "Front Raises", "Rear Delt Flyes", "Shrugs", "Arnold Press"},
	"Arms":      {"Bicep Curls", "Tricep Dips", "Hammer Curls", "Tricep Extensions", "Preacher Curls", "Close Grip Bench Press"},
	"Legs":      {"Squats", "Leg Press", "Lunges", "Leg Curls", "Leg Extensions", "Calf Raises"},
	"Core":      {"Plank", "Crunches", "Russian Twists", "Leg Raises", "Mountain Climbers", "Bicycle Crunches"},
}

// ExercisesFor returns a copy of the exercises for muscleGroup, empty for unknown groups.
func ExercisesFor(muscleGroup string) []string {
	exercises, ok := Catalog[muscleGroup]
	if !ok {
		return []string{}
	}
	return append([]string(nil), exercises...)
}
