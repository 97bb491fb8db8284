package workouts

// TotalWeight sums weight*reps over every completed set of the whole
// workout. A set with missing weight or reps contributes 0.
func TotalWeight(exercises []WorkoutExercise) float64 {
	var total float64
	for _, ex := range exercises {
		for _, set := range ex.Sets {
			if !set.Completed {
				continue
			}
			if set.Weight == nil || set.Reps == nil {
				continue
			}
			total += *set.Weight * float64(*set.Reps)
		}
	}
	return total
}

// TotalCompletedSets counts completed sets across all exercises of the workout.
func TotalCompletedSets(exercises []WorkoutExercise) int {
	var total int
	for _, ex := range exercises {
		total += CompletedSets(ex.Sets)
	}
	return total
}

func CompletedSets(sets []WorkoutSet) int {
	var count int
	for _, set := range sets {
		if set.Completed {
			count++
		}
	}
	return count
}
