package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/vi-snake/engine"
)

// Crash outcomes for snake_games_total
const (
	OutcomeWall = "wall"
	OutcomeSelf = "self"
)

// Collector bundles Prometheus metrics for game sessions and exports them
// to a node_exporter textfile on shutdown
type Collector struct {
	gatherer prometheus.Gatherer

	Ticks       prometheus.Counter
	FoodEaten   prometheus.Counter
	Games       *prometheus.CounterVec
	RunDuration prometheus.Histogram

	Score     prometheus.Gauge
	HighScore prometheus.Gauge
	Length    prometheus.Gauge
}

// NewCollector registers game metrics against reg, defaulting to the global
// registry when nil
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snake_ticks_total",
		Help: "Total number of simulation steps that advanced the snake.",
	}), "snake_ticks_total")
	if err != nil {
		return nil, err
	}
	food, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "snake_food_eaten_total",
		Help: "Total number of food items eaten.",
	}), "snake_food_eaten_total")
	if err != nil {
		return nil, err
	}
	games, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_games_total",
		Help: "Finished runs, labeled by what ended them.",
	}, []string{"outcome"}), "snake_games_total")
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "snake_run_duration_seconds",
		Help:    "Play time of finished runs in seconds, pauses excluded.",
		Buckets: []float64{5, 15, 30, 60, 120, 300, 600},
	}), "snake_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	score, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snake_score",
		Help: "Score of the current run.",
	}), "snake_score")
	if err != nil {
		return nil, err
	}
	high, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snake_high_score",
		Help: "Best score seen, including persisted runs.",
	}), "snake_high_score")
	if err != nil {
		return nil, err
	}
	length, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "snake_length",
		Help: "Segments of the current snake.",
	}), "snake_length")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:    gatherer,
		Ticks:       ticks,
		FoodEaten:   food,
		Games:       games,
		RunDuration: duration,
		Score:       score,
		HighScore:   high,
		Length:      length,
	}, nil
}

// HandleEvent satisfies engine.EventSink
func (c *Collector) HandleEvent(ev engine.Event) {
	if c == nil {
		return
	}
	switch ev.Type {
	case engine.EventTick:
		c.Ticks.Inc()
	case engine.EventAte:
		c.FoodEaten.Inc()
	case engine.EventCrash:
		c.Games.WithLabelValues(CrashOutcome(ev.Snapshot)).Inc()
		c.RunDuration.Observe(ev.Snapshot.Elapsed.Seconds())
	}
	c.Observe(ev.Snapshot)
}

// Observe drives the gauges from a snapshot
func (c *Collector) Observe(snap engine.Snapshot) {
	if c == nil {
		return
	}
	c.Score.Set(float64(snap.Score))
	c.HighScore.Set(float64(snap.HighScore))
	c.Length.Set(float64(snap.Length()))
}

// WriteTextfile exports every gathered metric to path in text format
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// CrashOutcome classifies a finished run by its crash point
func CrashOutcome(snap engine.Snapshot) string {
	if snap.CrashPoint != nil && !snap.Field.Contains(*snap.CrashPoint) {
		return OutcomeWall
	}
	return OutcomeSelf
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
