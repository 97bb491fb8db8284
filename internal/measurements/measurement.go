package measurements

import "time"

// Measurement is one body measurement log entry. Weight is the only
// required metric, the rest are optional.
type Measurement struct {
	ID         int       `json:"id"`
	UserID     int       `json:"-"`
	Weight     float64   `json:"weight"` // kilos
	BodyFat    *float64  `json:"bodyFat,omitempty"`
	Chest      *float64  `json:"chest,omitempty"`
	Waist      *float64  `json:"waist,omitempty"`
	Hips       *float64  `json:"hips,omitempty"`
	Biceps     *float64  `json:"biceps,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	MeasuredAt time.Time `json:"measuredAt"`
}
