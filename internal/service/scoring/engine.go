// Package scoring ranks available couriers for an order.
package scoring

import (
	"fmt"
	"sort"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/geo"
)

const maxRating = 5.0

// Config stores ranking settings. Weights are not required to sum to 1.
type Config struct {
	MaxDistanceKM       float64
	MaxActiveDeliveries int
	RatingWeight        float64
	DistanceWeight      float64
	LoadWeight          float64
}

// DefaultConfig returns the stock weights and limits.
func DefaultConfig() Config {
	return Config{
		MaxDistanceKM:       10,
		MaxActiveDeliveries: 3,
		RatingWeight:        0.4,
		DistanceWeight:      0.3,
		LoadWeight:          0.3,
	}
}

// Candidate is a scored courier that passed the distance cutoff.
type Candidate struct {
	CourierID        int64
	DistanceKM       float64
	Score            float64
	Rating           float64
	ActiveDeliveries int
	TransportType    domain.TransportType
}

// Engine scores couriers. It has no side effects.
type Engine struct {
	cfg    Config
	metric geo.Metric
}

// NewEngine returns an Engine. A nil metric means geo.Planar, and
// non-positive limits fall back to the defaults.
func NewEngine(cfg Config, metric geo.Metric) *Engine {
	def := DefaultConfig()
	if cfg.MaxDistanceKM <= 0 {
		cfg.MaxDistanceKM = def.MaxDistanceKM
	}
	if cfg.MaxActiveDeliveries <= 0 {
		cfg.MaxActiveDeliveries = def.MaxActiveDeliveries
	}
	if metric == nil {
		metric = geo.Planar{}
	}
	return &Engine{cfg: cfg, metric: metric}
}

// Metric returns the distance metric the engine ranks with.
func (e *Engine) Metric() geo.Metric { return e.metric }

// Score computes the weighted score of c at distanceKM from the restaurant.
func (e *Engine) Score(c domain.Courier, distanceKM float64) float64 {
	rating := c.Rating / maxRating
	distance := 1 - distanceKM/e.cfg.MaxDistanceKM
	load := 1 - float64(c.ActiveDeliveries)/float64(e.cfg.MaxActiveDeliveries)

	return rating*e.cfg.RatingWeight + distance*e.cfg.DistanceWeight + load*e.cfg.LoadWeight
}

// Rank scores every available courier with a known location, drops those
// farther than MaxDistanceKM and orders the rest best first. Equal scores
// are broken by smaller distance, then smaller courier id.
func (e *Engine) Rank(order domain.Order, pool []domain.Courier) ([]Candidate, error) {
	if order.RestaurantLocation == nil || !order.RestaurantLocation.Valid() {
		return nil, fmt.Errorf("%w: order %d has no valid restaurant location", apperr.ErrInvalid, order.ID)
	}
	origin := *order.RestaurantLocation

	out := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if !c.Available || c.Location == nil || !c.Location.Valid() {
			continue
		}
		d := e.metric.Distance(*c.Location, origin)
		score := e.Score(c, d)
		if d > e.cfg.MaxDistanceKM {
			continue
		}
		out = append(out, Candidate{
			CourierID:        c.ID,
			DistanceKM:       d,
			Score:            score,
			Rating:           c.Rating,
			ActiveDeliveries: c.ActiveDeliveries,
			TransportType:    c.TransportType,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.DistanceKM != b.DistanceKM {
			return a.DistanceKM < b.DistanceKM
		}
		return a.CourierID < b.CourierID
	})
	return out, nil
}

// FindBestCourier returns the top ranked courier. found is false when no
// courier is eligible; that is not an error.
func (e *Engine) FindBestCourier(order domain.Order, pool []domain.Courier) (courierID int64, found bool, err error) {
	ranked, err := e.Rank(order, pool)
	if err != nil {
		return 0, false, err
	}
	if len(ranked) == 0 {
		return 0, false, nil
	}
	return ranked[0].CourierID, true, nil
}
