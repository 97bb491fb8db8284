package workouts

// bestSetStrategy picks the standout set of one exercise, or nil.
// Strategies must be stable: ties keep the earliest-seen set.
type bestSetStrategy func(estimator OneRepMaxEstimator, sets []WorkoutSet) *WorkoutSet

var bestSetStrategies = map[string]bestSetStrategy{
	CategoryStrength: bestStrengthSet,
	CategoryCardio:   bestCardioSet,
}

// BestSet selects the most noteworthy set of an exercise based on its
// category. Categories without a strategy get no best set.
func BestSet(estimator OneRepMaxEstimator, category string, sets []WorkoutSet) *WorkoutSet {
	strategy, ok := bestSetStrategies[category]
	if !ok {
		return nil
	}
	return strategy(estimator, sets)
}

// bestStrengthSet scores sets by estimated one-rep max.
// Missing weight or reps is scored as 0, never an error.
func bestStrengthSet(estimator OneRepMaxEstimator, sets []WorkoutSet) *WorkoutSet {
	var best *WorkoutSet
	var bestScore float64
	for i := range sets {
		set := &sets[i]
		var weight float64
		if set.Weight != nil {
			weight = *set.Weight
		}
		var reps int
		if set.Reps != nil {
			reps = *set.Reps
		}
		score := estimator.Estimate(weight, reps)
		if best == nil || score > bestScore {
			best = set
			bestScore = score
		}
	}
	return best
}

func bestCardioSet(_ OneRepMaxEstimator, sets []WorkoutSet) *WorkoutSet {
	var best *WorkoutSet
	var bestDuration int
	for i := range sets {
		set := &sets[i]
		var duration int
		if set.Duration != nil {
			duration = *set.Duration
		}
		if best == nil || duration > bestDuration {
			best = set
			bestDuration = duration
		}
	}
	return best
}
