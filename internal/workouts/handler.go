package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitfolio/backend/internal/auth"
	"github.com/fitfolio/backend/internal/telemetry/metrics"
	"github.com/fitfolio/backend/internal/telemetry/tracing"
	"github.com/fitfolio/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type queryService interface {
	CompletedWorkouts(ctx context.Context, userID int, cursor *int, from, to *time.Time) (*WorkoutPage, error)
	Stats(ctx context.Context, userID int, from, to *time.Time) (*Stats, error)
	Calendar(ctx context.Context, userID int, from, to time.Time) (*Calendar, error)
	ChartData(ctx context.Context, userID int) (*ChartData, error)
}

type workoutsReader interface {
	Get(ctx context.Context, userID, id int) (*Workout, error)
	Count(ctx context.Context, params WorkoutParams) (int, error)
}

type exercisesCatalog interface {
	Exercises(ctx context.Context, category string) ([]Exercise, error)
}

type CountResponse struct {
	Total int `json:"total"`
}

type Handler struct {
	service queryService
	repo    workoutsReader
	catalog exercisesCatalog
	metrics *metrics.Manager
}

func NewHandler(
	service queryService,
	repo workoutsReader,
	catalog exercisesCatalog,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		catalog: catalog,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var cursor *int
	if cursorStr := r.URL.Query().Get("cursor"); cursorStr != "" {
		cursorVal, err := strconv.Atoi(cursorStr)
		if err != nil {
			http.Error(w, "error, cursor NaN", http.StatusBadRequest)
			return
		}
		cursor = &cursorVal
	}

	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "error, invalid <from> param", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "error, invalid <to> param", http.StatusBadRequest)
		return
	}

	page, err := handler.service.CompletedWorkouts(ctx, userID, cursor, from, to)
	if err != nil {
		log.Errorf("failed to get workouts page for user %d: %s", userID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutPages.Inc()

	pageJson, err := json.Marshal(page)
	if err != nil {
		log.Errorf("failed to marshal workouts page: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, pageJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "error, invalid <from> param", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "error, invalid <to> param", http.StatusBadRequest)
		return
	}

	stats, err := handler.service.Stats(ctx, userID, from, to)
	if err != nil {
		log.Errorf("failed to get workout stats for user %d: %s", userID, err)
		http.Error(w, "failed to get workout stats", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutStats.Inc()

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal workout stats: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.calendar")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil || from == nil {
		http.Error(w, "error, invalid or missing <from> param", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil || to == nil {
		http.Error(w, "error, invalid or missing <to> param", http.StatusBadRequest)
		return
	}

	calendar, err := handler.service.Calendar(ctx, userID, *from, *to)
	if err != nil {
		log.Errorf("failed to get workout calendar for user %d: %s", userID, err)
		http.Error(w, "failed to get workout calendar", http.StatusInternalServerError)
		return
	}

	calendarJson, err := json.Marshal(calendar)
	if err != nil {
		log.Errorf("failed to marshal workout calendar: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, calendarJson, http.StatusOK)
}

func (handler *Handler) HandleCharts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.charts")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	chartData, err := handler.service.ChartData(ctx, userID)
	if err != nil {
		log.Errorf("failed to get workout chart data for user %d: %s", userID, err)
		http.Error(w, "failed to get workout chart data", http.StatusInternalServerError)
		return
	}

	chartDataJson, err := json.Marshal(chartData)
	if err != nil {
		log.Errorf("failed to marshal workout chart data: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, chartDataJson, http.StatusOK)
}

func (handler *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.count")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "error, invalid <from> param", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "error, invalid <to> param", http.StatusBadRequest)
		return
	}

	count, err := handler.repo.Count(ctx, WorkoutParams{
		UserID: userID,
		Status: StatusCompleted,
		From:   from,
		To:     to,
	})
	if err != nil {
		log.Errorf("failed to count workouts for user %d: %s", userID, err)
		http.Error(w, "failed to count workouts", http.StatusInternalServerError)
		return
	}

	countJson, err := json.Marshal(CountResponse{Total: count})
	if err != nil {
		log.Errorf("failed to marshal workouts count: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, countJson, http.StatusOK)
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.catalog")
	defer span.End()

	category := mux.Vars(r)["category"]

	exercises, err := handler.catalog.Exercises(ctx, category)
	if err != nil {
		log.Errorf("failed to get exercise catalog [%s]: %s", category, err)
		http.Error(w, "failed to get exercise catalog", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("failed to marshal exercise catalog: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

// parseDateParam accepts RFC3339 timestamps and plain dates.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
