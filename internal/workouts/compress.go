package workouts

// Compressor turns the full exercise/set tree of one workout into
// compact per-exercise summaries. It does not filter anything out,
// the feed drops zero-completed-set summaries itself.
type Compressor struct {
	oneRepMax OneRepMaxEstimator
}

func NewCompressor(oneRepMax OneRepMaxEstimator) Compressor {
	return Compressor{oneRepMax: oneRepMax}
}

func (c Compressor) Compress(exercises []WorkoutExercise) []CompressedExercise {
	compressed := make([]CompressedExercise, 0, len(exercises))
	for _, ex := range exercises {
		summary := CompressedExercise{
			ExerciseName:  ex.Exercise.Name,
			CompletedSets: CompletedSets(ex.Sets),
		}
		if len(ex.Sets) > 0 {
			summary.BestSet = BestSet(c.oneRepMax, ex.Exercise.Category, ex.Sets)
		}
		compressed = append(compressed, summary)
	}
	return compressed
}
