// Command ticksync-server runs the tick-synchronization coordination
// server: it registers vehicles, fans ticks out, collects replies, and
// notifies the simulation API host when each tick's barrier closes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ticksync/internal/config"
	"ticksync/internal/logging"
	"ticksync/internal/pushclient"
	grpcserver "ticksync/internal/server/grpc"
	"ticksync/internal/scenario"
	"ticksync/internal/telemetry/metrics"
)

// metricsSampleInterval is how often the running scenario's counters are
// copied into the Prometheus gauges (§10).
const metricsSampleInterval = 2 * time.Second

func main() {
	cfg := config.ParseOrExit(os.Args[1:])

	log, err := logging.New(cfg.MinLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ticksync-server: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	upstream, err := pushclient.Dial(log, "localhost", cfg.EcloudPushAPIPort)
	if err != nil {
		log.Fatal("dial api host push service", zap.Error(err))
	}
	defer upstream.Close()

	factory := func(host string, port int32) (scenario.PushTicker, error) {
		return pushclient.Dial(log, host, port)
	}

	sc := scenario.New(log, upstream, factory, cfg.VehicleUpdateBatchSz)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := metrics.NewScenarioCollector(nil, "")
	go sampleScenarioMetrics(ctx, sc, collector)

	if err := metrics.StartServer(ctx, ":9090"); err != nil {
		log.Warn("metrics server not started", zap.Error(err))
	}

	grpcSrv := grpcserver.New(grpcserver.Config{Address: fmt.Sprintf(":%d", cfg.Port)}, sc, log)
	if err := grpcSrv.Start(ctx); err != nil {
		log.Error("failed to start grpc server", zap.Error(err))
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	cancel()
	grpcSrv.Stop()
	log.Info("ticksync-server stopped")
}

// sampleScenarioMetrics copies sc's counters into collector on a fixed tick
// until ctx is canceled, since Scenario has no push-based observer hook.
func sampleScenarioMetrics(ctx context.Context, sc *scenario.Scenario, collector *metrics.ScenarioCollector) {
	ticker := time.NewTicker(metricsSampleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			collector.Observe(metrics.Sample{
				Phase:             sc.Phase().String(),
				TickID:            sc.TickID(),
				NumRegistered:     sc.NumRegistered(),
				NumCars:           sc.NumCars(),
				NodeCount:         sc.NodeCount(),
				NumReplied:        sc.NumReplied(),
				NumCompleted:      sc.NumCompleted(),
				LastBarrierWaitMs: sc.LastBarrierWaitNS(),
			})
		}
	}
}
