package workouts

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fitfolio/backend/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// PageSize is the fixed workout feed page size.
const PageSize = 10

const (
	chartWindowMonths = 6
	chartMaxBuckets   = 6
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workouts_test

type workoutsRepo interface {
	ListPage(ctx context.Context, params PageParams) ([]Workout, error)
	ListAll(ctx context.Context, params WorkoutParams) ([]Workout, error)
	Get(ctx context.Context, userID, id int) (*Workout, error)
	Count(ctx context.Context, params WorkoutParams) (int, error)
	SumActiveHours(ctx context.Context, params WorkoutParams) (float64, error)
	SumCompletedVolume(ctx context.Context, params WorkoutParams) (float64, error)
	ListWorkoutDates(ctx context.Context, params WorkoutParams) ([]time.Time, error)
}

// QueryService turns raw workout records into feed pages, statistics,
// calendars and chart buckets. It holds no state between calls.
type QueryService struct {
	repo       workoutsRepo
	compressor Compressor

	// NowFunc is replaceable in tests to pin the chart trailing window.
	NowFunc func() time.Time
}

func NewQueryService(repo workoutsRepo, oneRepMax OneRepMaxEstimator) *QueryService {
	return &QueryService{
		repo:       repo,
		compressor: NewCompressor(oneRepMax),
		NowFunc:    time.Now,
	}
}

// CompletedWorkouts returns one feed page of completed workouts, most
// recent first. The cursor is the id of the last workout of the
// previous page; a nil cursor starts from the top.
func (s *QueryService) CompletedWorkouts(
	ctx context.Context,
	userID int,
	cursor *int,
	from, to *time.Time,
) (_ *WorkoutPage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.query.completedWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	// one row of lookahead decides hasNextPage
	listed, err := s.repo.ListPage(ctx, PageParams{
		WorkoutParams: WorkoutParams{
			UserID: userID,
			Status: StatusCompleted,
			From:   from,
			To:     to,
		},
		Cursor: cursor,
		Limit:  PageSize + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("list workouts page: %w", err)
	}

	hasNextPage := len(listed) > PageSize
	if hasNextPage {
		listed = listed[:PageSize]
	}

	var nextCursor *int
	if hasNextPage {
		nextCursor = &listed[len(listed)-1].ID
	}

	data := make([]WorkoutSummary, 0, len(listed))
	for _, w := range listed {
		summary := WorkoutSummary{
			ID:                 w.ID,
			StartedAt:          w.StartedAt,
			ActiveDuration:     w.ActiveDuration,
			TotalWeight:        TotalWeight(w.Exercises),
			TotalCompletedSets: TotalCompletedSets(w.Exercises),
			Exercises:          make([]CompressedExercise, 0, len(w.Exercises)),
		}
		for _, compressed := range s.compressor.Compress(w.Exercises) {
			if compressed.CompletedSets == 0 {
				continue
			}
			summary.Exercises = append(summary.Exercises, compressed)
		}
		data = append(data, summary)
	}

	return &WorkoutPage{
		Success: true,
		Meta: PageMeta{
			HasNextPage: hasNextPage,
			NextCursor:  nextCursor,
		},
		Data: data,
	}, nil
}

// Stats computes count, hours and lifted weight over the date-bounded
// workout set. The three aggregates are independent and fetched
// concurrently; any failure fails the whole request.
func (s *QueryService) Stats(
	ctx context.Context,
	userID int,
	from, to *time.Time,
) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.query.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	params := WorkoutParams{
		UserID: userID,
		Status: StatusCompleted,
		From:   from,
		To:     to,
	}

	var stats Stats
	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		count, err := s.repo.Count(ctx, params)
		if err != nil {
			return fmt.Errorf("count workouts: %w", err)
		}
		stats.TotalWorkouts = count
		return nil
	})
	errGroup.Go(func() error {
		hours, err := s.repo.SumActiveHours(ctx, params)
		if err != nil {
			return fmt.Errorf("sum active hours: %w", err)
		}
		stats.TotalHours = round2(hours)
		return nil
	})
	errGroup.Go(func() error {
		volume, err := s.repo.SumCompletedVolume(ctx, params)
		if err != nil {
			return fmt.Errorf("sum completed volume: %w", err)
		}
		stats.TotalWeightLifted = round2(volume)
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Calendar returns the ascending start timestamps of every completed
// workout in the required [from, to] range.
func (s *QueryService) Calendar(
	ctx context.Context,
	userID int,
	from, to time.Time,
) (_ *Calendar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.query.calendar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	dates, err := s.repo.ListWorkoutDates(ctx, WorkoutParams{
		UserID: userID,
		Status: StatusCompleted,
		From:   &from,
		To:     &to,
	})
	if err != nil {
		return nil, fmt.Errorf("list workout dates: %w", err)
	}

	return &Calendar{
		WorkoutDates:  dates,
		TotalWorkouts: len(dates),
	}, nil
}

// ChartData buckets the last 6 months of completed workouts by day,
// ISO week and month, each granularity truncated independently to the
// latest 6 buckets, in chronological order.
func (s *QueryService) ChartData(ctx context.Context, userID int) (_ *ChartData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.query.chartData")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	windowStart := s.NowFunc().AddDate(0, -chartWindowMonths, 0)
	listed, err := s.repo.ListAll(ctx, WorkoutParams{
		UserID: userID,
		Status: StatusCompleted,
		From:   &windowStart,
	})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	daily := make(map[string]PeriodBucket)
	weekly := make(map[string]PeriodBucket)
	monthly := make(map[string]PeriodBucket)
	for _, w := range listed {
		volume := TotalWeight(w.Exercises)
		accumulate(daily, dayKey(w.StartedAt), volume)
		accumulate(weekly, weekKey(w.StartedAt), volume)
		accumulate(monthly, monthKey(w.StartedAt), volume)
	}

	return &ChartData{
		Daily:   latestBuckets(daily, chartMaxBuckets),
		Weekly:  latestBuckets(weekly, chartMaxBuckets),
		Monthly: latestBuckets(monthly, chartMaxBuckets),
	}, nil
}

func accumulate(buckets map[string]PeriodBucket, period string, volume float64) {
	bucket := buckets[period]
	bucket.Period = period
	bucket.Workouts++
	bucket.TotalVolume += volume
	buckets[period] = bucket
}

// latestBuckets returns the max latest buckets in chronological order.
// Period keys are zero-padded and fixed-width, so lexicographic order
// is chronological order.
func latestBuckets(buckets map[string]PeriodBucket, max int) []PeriodBucket {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if len(keys) > max {
		keys = keys[:max]
	}

	result := make([]PeriodBucket, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		result = append(result, buckets[keys[i]])
	}
	return result
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// round2 rounds to 2 decimals, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
