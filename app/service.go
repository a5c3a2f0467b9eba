// Package app wires the rental core to its adapters from the configuration.
package app

import (
	"context"
	"fmt"

	"github.com/fleetrent/rentd/config"
	"github.com/fleetrent/rentd/core/fleet"
	coremetrics "github.com/fleetrent/rentd/core/metrics"
	"github.com/fleetrent/rentd/core/model"
	"github.com/fleetrent/rentd/core/pricing"
	"github.com/fleetrent/rentd/core/rental"
	"github.com/fleetrent/rentd/core/vehicletype"
	"github.com/fleetrent/rentd/infra/auditlog"
	"github.com/fleetrent/rentd/infra/logger"
	"github.com/fleetrent/rentd/infra/metrics"
	"github.com/fleetrent/rentd/infra/relay"
	"github.com/fleetrent/rentd/internal/eventbus"
)

// Service holds the wired rental core and its adapters.
type Service struct {
	Rentals *rental.Service
	Store   *rental.MemoryStore
	Catalog *fleet.MemoryCatalog
	Types   *vehicletype.Registry

	bus      *eventbus.Bus[model.RentalEvent]
	relay    *relay.Relay
	relayCh  <-chan model.RentalEvent
	audit    *auditlog.JSONLStore
	auditCh  <-chan model.RentalEvent
	log      logger.Logger
	promAddr string
}

// New builds a Service from the configuration. The configured vehicle types
// go through the registry's validating reload, so a bad formula fails the
// whole startup instead of surfacing at the first return.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	types := vehicletype.NewRegistry(pricing.ProbeVars())
	if err := types.Reload(cfg.Fleet.Types()); err != nil {
		return nil, fmt.Errorf("vehicle types: %w", err)
	}
	catalog, err := fleet.NewMemoryCatalog(cfg.Fleet.VehicleModels()...)
	if err != nil {
		return nil, fmt.Errorf("vehicle catalog: %w", err)
	}
	store := rental.NewMemoryStore()

	var sinks []coremetrics.Sink
	promAddr := ""
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
		promAddr = cfg.Metrics.PrometheusAddr
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New[model.RentalEvent]()
	svc := &Service{
		Rentals:  rental.NewService(store, catalog, types, log, sink, bus, cfg.Location),
		Store:    store,
		Catalog:  catalog,
		Types:    types,
		bus:      bus,
		log:      log,
		promAddr: promAddr,
	}

	// Subscribe here rather than in Run so events published before Run
	// starts sit in the subscriber buffers instead of being lost.
	if cfg.Audit.Enabled {
		audit, err := auditlog.NewJSONLStore(cfg.Audit.Path)
		if err != nil {
			return nil, fmt.Errorf("audit log: %w", err)
		}
		svc.audit = audit
		svc.auditCh = bus.Subscribe()
	}
	if cfg.Relay.Enabled {
		r, err := relay.New(cfg.Relay)
		if err != nil {
			return nil, fmt.Errorf("relay: %w", err)
		}
		svc.relay = r
		svc.relayCh = bus.Subscribe()
	}
	return svc, nil
}

// Run starts the subscribers and blocks until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.audit != nil {
		go s.audit.Run(ctx, s.auditCh)
	}
	if s.relay != nil {
		go s.relay.Run(ctx, s.relayCh)
	}
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases the adapters.
func (s *Service) Close() error {
	s.bus.Close()
	if s.relay != nil {
		s.relay.Close()
	}
	return nil
}
