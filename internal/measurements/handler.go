package measurements

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

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=measurements_test

type measurementsRepo interface {
	Add(ctx context.Context, m Measurement) (*Measurement, error)
	Get(ctx context.Context, userID, id int) (*Measurement, error)
	List(ctx context.Context, params ListParams) ([]Measurement, error)
	Update(ctx context.Context, m *Measurement) error
	Delete(ctx context.Context, userID, id int) error
}

type DeleteMeasurementResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateMeasurementResponse struct {
	UpdatedID int `json:"updatedId"`
}

type ListResponse struct {
	Measurements []Measurement `json:"measurements"`
	Total        int           `json:"total"`
}

type Handler struct {
	repo    measurementsRepo
	metrics *metrics.Manager
}

func NewHandler(repo measurementsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.new")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var measurement Measurement
	if err := json.NewDecoder(r.Body).Decode(&measurement); err != nil {
		log.Tracef("new measurement, unmarshal json params: %s", err)
		http.Error(w, "add measurement failed", http.StatusBadRequest)
		return
	}

	if measurement.Weight <= 0 {
		http.Error(w, "error, weight must be positive", http.StatusBadRequest)
		return
	}
	measurement.UserID = userID
	if measurement.MeasuredAt.IsZero() {
		measurement.MeasuredAt = time.Now()
	}

	addedMeasurement, err := handler.repo.Add(ctx, measurement)
	if err != nil {
		log.Errorf("failed to add new measurement for user %d: %s", userID, err)
		http.Error(w, "error, failed to add new measurement", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterMeasurements.Inc()

	addedJson, err := json.Marshal(addedMeasurement)
	if err != nil {
		log.Errorf("failed to marshal new measurement: %s", err)
		http.Error(w, "error, failed to add new measurement", http.StatusInternalServerError)
		return
	}

	log.Debugf("new measurement added: %d", addedMeasurement.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	measurement, err := handler.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			http.Error(w, "measurement not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get measurement %d: %s", id, err)
		http.Error(w, "failed to get measurement", http.StatusInternalServerError)
		return
	}

	measurementJson, err := json.Marshal(measurement)
	if err != nil {
		log.Errorf("failed to marshal measurement: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, measurementJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.list")
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

	measurements, err := handler.repo.List(ctx, ListParams{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		log.Errorf("list measurements error for user %d: %s", userID, err)
		http.Error(w, "failed to get measurements", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Measurements: measurements,
		Total:        len(measurements),
	})
	if err != nil {
		log.Errorf("marshal measurements error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var measurement Measurement
	if err := json.NewDecoder(r.Body).Decode(&measurement); err != nil {
		log.Errorf("update measurement, unmarshal json params: %s", err)
		http.Error(w, "update measurement failed", http.StatusBadRequest)
		return
	}

	if measurement.Weight <= 0 {
		http.Error(w, "error, weight must be positive", http.StatusBadRequest)
		return
	}
	measurement.ID = id
	measurement.UserID = userID

	if err := handler.repo.Update(ctx, &measurement); err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			http.Error(w, "measurement not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update measurement %d: %s", id, err)
		http.Error(w, "error, failed to update measurement", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateMeasurementResponse{
		UpdatedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrMeasurementNotFound) {
			http.Error(w, "measurement not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete measurement %d: %s", id, err)
		http.Error(w, "measurement not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteMeasurementResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

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
