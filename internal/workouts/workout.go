package workouts

import "time"

const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

const (
	CategoryStrength = "strength"
	CategoryCardio   = "cardio"
)

type Workout struct {
	ID             int               `json:"id"`
	UserID         int               `json:"userId"`
	Status         string            `json:"status"`
	StartedAt      time.Time         `json:"startedAt"`
	ActiveDuration int               `json:"activeDuration"` // seconds
	Exercises      []WorkoutExercise `json:"exercises"`
}

type WorkoutExercise struct {
	ID       int          `json:"id"`
	Order    int          `json:"order"`
	Exercise Exercise     `json:"exercise"`
	Sets     []WorkoutSet `json:"sets"`
}

type Exercise struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type WorkoutSet struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"` // normal / warmup / dropset / failure
	Weight    *float64  `json:"weight"`
	Reps      *int      `json:"reps"`
	Duration  *int      `json:"duration"` // seconds
	Completed bool      `json:"completed"`
	SetNumber int       `json:"setNumber"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompressedExercise is the compact per-exercise summary shown in the workout feed.
type CompressedExercise struct {
	ExerciseName  string      `json:"exerciseName"`
	CompletedSets int         `json:"completedSets"`
	BestSet       *WorkoutSet `json:"bestSet,omitempty"`
}

type WorkoutSummary struct {
	ID                 int                  `json:"id"`
	StartedAt          time.Time            `json:"startedAt"`
	ActiveDuration     int                  `json:"activeDuration"`
	TotalWeight        float64              `json:"totalWeight"`
	TotalCompletedSets int                  `json:"totalCompletedSets"`
	Exercises          []CompressedExercise `json:"exercises"`
}

type PageMeta struct {
	HasNextPage bool `json:"hasNextPage"`
	NextCursor  *int `json:"nextCursor"`
}

type WorkoutPage struct {
	Success bool             `json:"success"`
	Meta    PageMeta         `json:"meta"`
	Data    []WorkoutSummary `json:"data"`
}

type Stats struct {
	TotalWorkouts     int     `json:"totalWorkouts"`
	TotalHours        float64 `json:"totalHours"`
	TotalWeightLifted float64 `json:"totalWeightLifted"`
}

type Calendar struct {
	WorkoutDates  []time.Time `json:"workoutDates"`
	TotalWorkouts int         `json:"totalWorkouts"`
}

type PeriodBucket struct {
	Period      string  `json:"period"`
	Workouts    int     `json:"workouts"`
	TotalVolume float64 `json:"totalVolume"`
}

type ChartData struct {
	Daily   []PeriodBucket `json:"daily"`
	Weekly  []PeriodBucket `json:"weekly"`
	Monthly []PeriodBucket `json:"monthly"`
}
