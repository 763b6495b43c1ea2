// Package race - Prometheus gauges and counters of a race.
package race

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/armlift/search"
)

const namespace = "armlift"

// metrics are the race gauges; a nil *metrics records nothing.
type metrics struct {
	frontier   *prometheus.GaugeVec
	cumLoss    *prometheus.GaugeVec
	jumpLoss   *prometheus.GaugeVec
	iterations *prometheus.GaugeVec
	solved     *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}
	labels := []string{"label", "instance"}
	var (
		m   metrics
		err error
	)
	if m.frontier, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "race", Name: "frontier",
		Help: "Best tour position reached by each engine",
	}, labels)); err != nil {
		return nil, err
	}
	if m.cumLoss, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "race", Name: "cumulative_loss",
		Help: "Cumulative loss of each engine's best path",
	}, labels)); err != nil {
		return nil, err
	}
	if m.jumpLoss, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "race", Name: "jump_loss",
		Help: "Smallest jump loss seen at each engine's frontier",
	}, labels)); err != nil {
		return nil, err
	}
	if m.iterations, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "race", Name: "iterations",
		Help: "Search iterations performed by each engine",
	}, labels)); err != nil {
		return nil, err
	}
	if m.solved, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "race", Name: "solved_total",
		Help: "Engines that lifted the whole tour",
	}, []string{"label"})); err != nil {
		return nil, err
	}
	return &m, nil
}

// register adds c to reg, reusing an identical collector registered by an
// earlier race.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	var zero C
	return zero, err
}

func (m *metrics) observe(label string, i int, st search.Stats) {
	if m == nil {
		return
	}
	inst := strconv.Itoa(i)
	m.frontier.WithLabelValues(label, inst).Set(float64(st.BestPos))
	m.cumLoss.WithLabelValues(label, inst).Set(st.CumLoss)
	m.jumpLoss.WithLabelValues(label, inst).Set(st.JumpLoss)
	m.iterations.WithLabelValues(label, inst).Set(float64(st.Iterations))
}

func (m *metrics) solvedOne(label string) {
	if m == nil {
		return
	}
	m.solved.WithLabelValues(label).Inc()
}
