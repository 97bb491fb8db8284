package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/fitfolio/backend/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllWorkouts(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM workout_set")
	require.NoError(s.T(), err)
	_, err = s.dbPool.Exec(ctx, "DELETE FROM workout_exercise")
	require.NoError(s.T(), err)
	_, err = s.dbPool.Exec(ctx, "DELETE FROM workout")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) insertWorkout(ctx context.Context, startedAt time.Time, activeDuration int) int {
	var id int
	require.NoError(s.T(), s.dbPool.
		QueryRow(ctx, `
			INSERT INTO workout (user_id, status, started_at, active_duration)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			s.testUserID, workouts.StatusCompleted, startedAt, activeDuration,
		).
		Scan(&id))
	return id
}

func (s *IntegrationTestSuite) insertWorkoutExercise(ctx context.Context, workoutID, exerciseID, displayOrder int) int {
	var id int
	require.NoError(s.T(), s.dbPool.
		QueryRow(ctx, `
			INSERT INTO workout_exercise (workout_id, exercise_id, display_order)
			VALUES ($1, $2, $3) RETURNING id`,
			workoutID, exerciseID, displayOrder,
		).
		Scan(&id))
	return id
}

func (s *IntegrationTestSuite) insertCompletedSet(
	ctx context.Context,
	workoutExerciseID int,
	weight float64, reps, setNumber int,
) {
	_, err := s.dbPool.Exec(ctx, `
		INSERT INTO workout_set (workout_exercise_id, type, weight, reps, completed, set_number)
		VALUES ($1, 'normal', $2, $3, TRUE, $4)`,
		workoutExerciseID, weight, reps, setNumber,
	)
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) getJSON(ctx context.Context, token, path string, dest any) int {
	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if token != "" {
		req.Header.Set("X-FITFOLIO-TOKEN", token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	if dest != nil && resp.StatusCode == http.StatusOK {
		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(s.T(), err)
		require.NoError(s.T(), json.Unmarshal(respBytes, dest))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) TestWorkouts() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(s.T(), s.redisDataCleanup(ctx))
	token := doLogin(ctx, s.T())

	// seed 12 completed workouts, one per day, each with a single
	// bench press exercise of 3 completed sets 100x5 (volume 1500)
	s.deleteAllWorkouts(ctx)
	total := 12
	base := time.Now().UTC().Truncate(time.Hour).AddDate(0, 0, -total)
	workoutIDs := make([]int, 0, total)
	totalDurationSeconds := 0
	for i := 0; i < total; i++ {
		activeDuration := gofakeit.Number(1800, 7200)
		totalDurationSeconds += activeDuration

		workoutID := s.insertWorkout(ctx, base.AddDate(0, 0, i), activeDuration)
		workoutExerciseID := s.insertWorkoutExercise(ctx, workoutID, s.benchPressID, 0)
		for setNumber := 1; setNumber <= 3; setNumber++ {
			s.insertCompletedSet(ctx, workoutExerciseID, 100, 5, setNumber)
		}
		workoutIDs = append(workoutIDs, workoutID)
	}

	s.T().Run("authorization missing", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, s.getJSON(ctx, "", "/workouts", nil))
		assert.Equal(t, http.StatusUnauthorized, s.getJSON(ctx, "invalid-token", "/workouts/stats", nil))
	})

	s.T().Run("feed pagination", func(t *testing.T) {
		var page workouts.WorkoutPage
		require.Equal(t, http.StatusOK, s.getJSON(ctx, token, "/workouts", &page))

		assert.True(t, page.Success)
		require.Len(t, page.Data, 10)
		assert.True(t, page.Meta.HasNextPage)
		require.NotNil(t, page.Meta.NextCursor)
		// most recent first
		for i, summary := range page.Data {
			assert.Equal(t, workoutIDs[total-1-i], summary.ID)
			assert.Equal(t, float64(1500), summary.TotalWeight)
			assert.Equal(t, 3, summary.TotalCompletedSets)
			require.Len(t, summary.Exercises, 1)
			assert.Equal(t, "Bench Press", summary.Exercises[0].ExerciseName)
			assert.Equal(t, 3, summary.Exercises[0].CompletedSets)
			require.NotNil(t, summary.Exercises[0].BestSet)
		}
		assert.Equal(t, workoutIDs[2], *page.Meta.NextCursor)

		var secondPage workouts.WorkoutPage
		require.Equal(t, http.StatusOK, s.getJSON(
			ctx, token,
			fmt.Sprintf("/workouts?cursor=%d", *page.Meta.NextCursor),
			&secondPage,
		))
		require.Len(t, secondPage.Data, 2)
		assert.False(t, secondPage.Meta.HasNextPage)
		assert.Nil(t, secondPage.Meta.NextCursor)
		assert.Equal(t, workoutIDs[1], secondPage.Data[0].ID)
		assert.Equal(t, workoutIDs[0], secondPage.Data[1].ID)
	})

	s.T().Run("deleted cursor workout gives empty page", func(t *testing.T) {
		deletedID := s.insertWorkout(ctx, time.Now().UTC(), 1000)
		_, err := s.dbPool.Exec(ctx, "DELETE FROM workout WHERE id = $1", deletedID)
		require.NoError(t, err)

		var page workouts.WorkoutPage
		require.Equal(t, http.StatusOK, s.getJSON(
			ctx, token,
			fmt.Sprintf("/workouts?cursor=%d", deletedID),
			&page,
		))
		assert.True(t, page.Success)
		assert.Empty(t, page.Data)
		assert.False(t, page.Meta.HasNextPage)
	})

	s.T().Run("stats", func(t *testing.T) {
		var stats workouts.Stats
		require.Equal(t, http.StatusOK, s.getJSON(ctx, token, "/workouts/stats", &stats))

		assert.Equal(t, total, stats.TotalWorkouts)
		expectedHours := math.Round(float64(totalDurationSeconds)/3600*100) / 100
		assert.InDelta(t, expectedHours, stats.TotalHours, 0.011)
		assert.Equal(t, float64(total*1500), stats.TotalWeightLifted)
	})

	s.T().Run("count", func(t *testing.T) {
		var countResp workouts.CountResponse
		require.Equal(t, http.StatusOK, s.getJSON(ctx, token, "/workouts/count", &countResp))
		assert.Equal(t, total, countResp.Total)
	})

	s.T().Run("calendar", func(t *testing.T) {
		// both range bounds are required
		assert.Equal(t, http.StatusBadRequest, s.getJSON(ctx, token, "/workouts/calendar", nil))

		from := base.AddDate(0, 0, -1).Format("2006-01-02")
		to := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
		var calendar workouts.Calendar
		require.Equal(t, http.StatusOK, s.getJSON(
			ctx, token,
			fmt.Sprintf("/workouts/calendar?from=%s&to=%s", from, to),
			&calendar,
		))

		assert.Equal(t, total, calendar.TotalWorkouts)
		require.Len(t, calendar.WorkoutDates, total)
		for i := 1; i < len(calendar.WorkoutDates); i++ {
			assert.True(t, calendar.WorkoutDates[i].After(calendar.WorkoutDates[i-1]))
		}
	})

	s.T().Run("charts", func(t *testing.T) {
		var chartData workouts.ChartData
		require.Equal(t, http.StatusOK, s.getJSON(ctx, token, "/workouts/charts", &chartData))

		// 12 daily buckets truncated to the latest 6
		require.Len(t, chartData.Daily, 6)
		for i, bucket := range chartData.Daily {
			assert.Equal(t, 1, bucket.Workouts)
			assert.Equal(t, float64(1500), bucket.TotalVolume)
			if i > 0 {
				assert.Greater(t, bucket.Period, chartData.Daily[i-1].Period)
			}
		}

		monthlyWorkouts := 0
		monthlyVolume := 0.0
		for _, bucket := range chartData.Monthly {
			monthlyWorkouts += bucket.Workouts
			monthlyVolume += bucket.TotalVolume
		}
		assert.Equal(t, total, monthlyWorkouts)
		assert.Equal(t, float64(total*1500), monthlyVolume)
	})

	s.T().Run("get workout", func(t *testing.T) {
		var workout workouts.Workout
		require.Equal(t, http.StatusOK, s.getJSON(
			ctx, token,
			fmt.Sprintf("/workouts/%d", workoutIDs[0]),
			&workout,
		))

		assert.Equal(t, workoutIDs[0], workout.ID)
		assert.Equal(t, workouts.StatusCompleted, workout.Status)
		require.Len(t, workout.Exercises, 1)
		assert.Equal(t, "Bench Press", workout.Exercises[0].Exercise.Name)
		assert.Equal(t, "strength", workout.Exercises[0].Exercise.Category)
		require.Len(t, workout.Exercises[0].Sets, 3)
		for i, set := range workout.Exercises[0].Sets {
			assert.Equal(t, i+1, set.SetNumber)
			assert.True(t, set.Completed)
			require.NotNil(t, set.Weight)
			assert.Equal(t, float64(100), *set.Weight)
		}

		// unknown workout
		assert.Equal(t, http.StatusNotFound, s.getJSON(ctx, token, "/workouts/999999", nil))
	})

	s.T().Run("exercises catalog", func(t *testing.T) {
		// catalog is public, no token needed
		var catalog []workouts.Exercise
		require.Equal(t, http.StatusOK, s.getJSON(ctx, "", "/exercises/catalog", &catalog))
		require.Len(t, catalog, 3)
		// sorted by name
		assert.Equal(t, "Bench Press", catalog[0].Name)
		assert.Equal(t, "Running", catalog[1].Name)
		assert.Equal(t, "Squat", catalog[2].Name)

		var strengthOnly []workouts.Exercise
		require.Equal(t, http.StatusOK, s.getJSON(ctx, "", "/exercises/catalog/strength", &strengthOnly))
		require.Len(t, strengthOnly, 2)
		for _, ex := range strengthOnly {
			assert.Equal(t, "strength", ex.Category)
		}
	})
}
