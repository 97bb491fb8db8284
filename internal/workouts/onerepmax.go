package workouts

// DefaultEpleyDivisor is the rep scaling constant of the Epley formula:
// 1RM = weight * (1 + reps/30).
const DefaultEpleyDivisor = 30.0

// OneRepMaxEstimator projects the maximal single-rep lift from a
// (weight, reps) set. The estimate grows with both weight and reps,
// and equals the weight itself for a single-rep set.
type OneRepMaxEstimator struct {
	divisor float64
}

func NewOneRepMaxEstimator(divisor float64) OneRepMaxEstimator {
	if divisor <= 0 {
		divisor = DefaultEpleyDivisor
	}
	return OneRepMaxEstimator{divisor: divisor}
}

func (e OneRepMaxEstimator) Estimate(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	return weight * (1 + float64(reps)/e.divisor)
}
