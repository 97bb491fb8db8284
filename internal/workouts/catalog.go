package workouts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fitfolio/backend/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	oneHour            = 60 * 60
	catalogCacheExpire = oneHour * 12 // catalog is reference data, changes rarely
)

// Catalog serves the exercise reference data (names and categories),
// cached in memory in front of postgres.
type Catalog struct {
	db    *pgxpool.Pool
	cache *freecache.Cache
}

func NewCatalog(db *pgxpool.Pool) *Catalog {
	megabyte := 1024 * 1024
	return &Catalog{
		db:    db,
		cache: freecache.NewCache(1 * megabyte),
	}
}

// Exercises lists the catalog, optionally restricted to one category.
func (c *Catalog) Exercises(ctx context.Context, category string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.catalog.exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category", category))

	cacheKey := []byte(fmt.Sprintf("catalog::%s", category))
	if cachedBytes, err := c.cache.Get(cacheKey); err == nil {
		var exercises []Exercise
		if err = json.Unmarshal(cachedBytes, &exercises); err == nil {
			return exercises, nil
		}
		log.Errorf("failed to unmarshal cached exercise catalog [%s]: %s", category, err)
	}

	rows, err := c.db.Query(
		ctx,
		`
			SELECT id, name, category
			FROM exercise
				WHERE ($1::text = '' OR category = $1)
			ORDER BY name ASC;`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	if err := c.cache.Set(cacheKey, exercisesJson, catalogCacheExpire); err != nil {
		log.Errorf("failed to cache exercise catalog [%s]: %s", category, err)
	}

	return exercises, nil
}
