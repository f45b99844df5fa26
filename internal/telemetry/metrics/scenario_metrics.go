// Package metrics exposes scenario/barrier diagnostics as Prometheus
// metrics, following the collector-plus-Observe pattern the coordination
// server's ancestor uses for cluster diagnostics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sample is the barrier/registry state a caller reports on each collection
// tick; it decouples this package from the scenario package's internals.
type Sample struct {
	Phase             string
	TickID            int32
	NumRegistered     int32
	NumCars           int32
	NodeCount         int32
	NumReplied        int32
	NumCompleted      int32
	LastBarrierWaitMs int64 // in nanoseconds; Observe converts it to ms
}

// ScenarioCollector exposes barrier progress as Prometheus gauges.
type ScenarioCollector struct {
	phase             *prometheus.GaugeVec
	tickID            prometheus.Gauge
	numRegistered     prometheus.Gauge
	numCars           prometheus.Gauge
	nodeCount         prometheus.Gauge
	numReplied        prometheus.Gauge
	numCompleted      prometheus.Gauge
	lastBarrierWaitMs prometheus.Gauge
}

// NewScenarioCollector creates a collector registered on reg (the default
// registry if nil).
func NewScenarioCollector(reg prometheus.Registerer, namespace string) *ScenarioCollector {
	if namespace == "" {
		namespace = "ticksync"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	builder := promauto.With(reg)
	return &ScenarioCollector{
		phase: builder.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scenario_phase",
			Help:      "1 for the currently active scenario phase, 0 for the others.",
		}, []string{"phase"}),
		tickID: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "barrier_tick_id",
			Help:      "Current tick id.",
		}),
		numRegistered: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_num_registered",
			Help:      "Number of vehicles registered in the active scenario.",
		}),
		numCars: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scenario_num_cars",
			Help:      "Configured car count for the active scenario.",
		}),
		nodeCount: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_node_count",
			Help:      "Number of distinct vehicle host addresses.",
		}),
		numReplied: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "barrier_num_replied",
			Help:      "Vehicles that have replied for the current tick.",
		}),
		numCompleted: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "barrier_num_completed",
			Help:      "Vehicles that have sent a terminal reply this scenario.",
		}),
		lastBarrierWaitMs: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "barrier_last_close_wait_ms",
			Help:      "Reported duration_ns (in ms) of the reply that closed the last barrier.",
		}),
	}
}

var knownPhases = []string{"IDLE", "REGISTERING", "RUNNING", "ENDED"}

// Observe updates gauges from a fresh sample.
func (c *ScenarioCollector) Observe(s Sample) {
	for _, p := range knownPhases {
		if p == s.Phase {
			c.phase.WithLabelValues(p).Set(1)
		} else {
			c.phase.WithLabelValues(p).Set(0)
		}
	}
	c.tickID.Set(float64(s.TickID))
	c.numRegistered.Set(float64(s.NumRegistered))
	c.numCars.Set(float64(s.NumCars))
	c.nodeCount.Set(float64(s.NodeCount))
	c.numReplied.Set(float64(s.NumReplied))
	c.numCompleted.Set(float64(s.NumCompleted))
	c.lastBarrierWaitMs.Set(float64(s.LastBarrierWaitMs) / 1e6)
}

// StartServer serves /metrics on addr until ctx is canceled.
func StartServer(ctx context.Context, addr string) error {
	if addr == "" {
		return fmt.Errorf("metrics: address is empty")
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("metrics server error: %v\n", err)
		}
	}()
	return nil
}
