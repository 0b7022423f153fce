// Package orders serves the market order book for configured station and
// structure markets, backed by the expiring slot caches. A single upstream
// fetch repopulates every cache entry derivable from its payload: a region
// fetch fills all configured stations in the region, a structure fetch fills
// every (type, side) group of the structure.
package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wevetools/weve-market/cache"
	"github.com/wevetools/weve-market/config"
	"github.com/wevetools/weve-market/esi"
	"github.com/wevetools/weve-market/interfaces"
	"github.com/wevetools/weve-market/metrics"
	"github.com/wevetools/weve-market/scheduler"
)

// metricsReportInterval is how often cache size gauges are refreshed.
const metricsReportInterval = time.Minute

// API is the upstream surface the service fetches through.
type API interface {
	StationOrders(ctx context.Context, regionID, typeID int32, buy bool) (esi.Expirable[[]esi.StationOrder], error)
	StructureOrders(ctx context.Context, locationID int64, refreshToken string) (esi.Expirable[[]esi.StructureOrder], error)
}

// Service implements interfaces.OrdersService on top of per-region shards and
// per-structure buckets. All cache containers are created at startup from the
// configured market tables; only station (type, side) slots materialize
// lazily.
type Service struct {
	api     API
	markets config.Markets

	// station location -> market name, split per region so a region fetch
	// only derives entries for its own stations
	stationNames map[int32]map[int64]string

	stationCaches   map[int32]*cache.Shard[interfaces.MarketOrdersResponse]
	structureCaches map[int64]*cache.Bucket[interfaces.MarketOrdersResponse]

	stationMetrics   *metrics.MetricsWriter
	structureMetrics *metrics.MetricsWriter

	reporter *scheduler.Scheduler
}

// NewService builds the order book service for the configured markets.
func NewService(cfg *config.Config, api API) *Service {
	markets := cfg.Markets()

	stationNames := make(map[int32]map[int64]string)
	for _, market := range markets {
		if market.Kind != config.KindStation {
			continue
		}
		names := stationNames[market.RegionID]
		if names == nil {
			names = make(map[int64]string)
			stationNames[market.RegionID] = names
		}
		names[market.LocationID] = market.Name
	}

	stationCaches := make(map[int32]*cache.Shard[interfaces.MarketOrdersResponse])
	for _, regionID := range markets.RegionIDs() {
		stationCaches[regionID] = cache.NewShard[interfaces.MarketOrdersResponse](cfg.MinCache.StationTTL())
	}

	structureCaches := make(map[int64]*cache.Bucket[interfaces.MarketOrdersResponse])
	for _, locationID := range markets.StructureLocationIDs() {
		structureCaches[locationID] = cache.NewBucket[interfaces.MarketOrdersResponse](cfg.MinCache.StructureTTL())
	}

	return &Service{
		api:              api,
		markets:          markets,
		stationNames:     stationNames,
		stationCaches:    stationCaches,
		structureCaches:  structureCaches,
		stationMetrics:   metrics.NewMetricsWriter(metrics.FamilyStationOrders),
		structureMetrics: metrics.NewMetricsWriter(metrics.FamilyStructureOrders),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	log.Printf("Orders: serving %d station regions and %d structures",
		len(s.stationCaches), len(s.structureCaches))

	s.reporter = scheduler.New(metricsReportInterval, func(ctx context.Context) {
		stationEntries := 0
		for _, shard := range s.stationCaches {
			stationEntries += shard.Entries()
		}
		s.stationMetrics.RecordCacheSize(stationEntries)

		structureEntries := 0
		for _, bucket := range s.structureCaches {
			structureEntries += bucket.Len()
		}
		s.structureMetrics.RecordCacheSize(structureEntries)
	})
	s.reporter.Start(ctx, false)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.reporter != nil {
		s.reporter.Stop()
	}
}

// MarketOrders returns one side of the order book for a type at a named
// market. An unconfigured market name yields an empty reply, not an error.
func (s *Service) MarketOrders(ctx context.Context, req interfaces.MarketOrdersRequest) (interfaces.MarketOrdersResponse, error) {
	market, ok := s.markets[req.Market]
	if !ok {
		log.Printf("Orders: request for unknown market %q", req.Market)
		return interfaces.MarketOrdersResponse{}, nil
	}

	if market.Kind == config.KindStation {
		return s.stationOrders(ctx, market, req)
	}
	return s.structureOrders(ctx, market, req)
}

func (s *Service) stationOrders(ctx context.Context, market config.Market, req interfaces.MarketOrdersRequest) (interfaces.MarketOrdersResponse, error) {
	slot := s.stationCaches[market.RegionID].Slot(cache.SlotKey{TypeID: req.TypeID, Buy: req.Buy})

	if reply, found, fresh := slot.Lookup(req.Market); fresh {
		s.stationMetrics.RecordCacheLookup(true)
		if !found {
			return interfaces.MarketOrdersResponse{}, nil
		}
		return reply, nil
	}
	s.stationMetrics.RecordCacheLookup(false)

	reply, found, err := slot.GetOrFill(ctx, req.Market, s.fillStation(market, req.TypeID, req.Buy))
	if err != nil {
		return interfaces.MarketOrdersResponse{}, err
	}
	if !found {
		return interfaces.MarketOrdersResponse{}, nil
	}
	return reply, nil
}

// fillStation fetches the region-wide order list for one (type, side) and
// partitions it by station: every configured station in the region gets its
// own entry, keyed by market name. The requesting market always gets an
// entry, even when it has no orders, so a later hit can answer "empty"
// without refetching. Orders at unconfigured locations are dropped.
func (s *Service) fillStation(market config.Market, typeID int32, buy bool) cache.FillFunc[interfaces.MarketOrdersResponse] {
	return func(ctx context.Context) (map[string]interfaces.MarketOrdersResponse, time.Time, error) {
		start := time.Now()
		res, err := s.api.StationOrders(ctx, market.RegionID, typeID, buy)
		if err != nil {
			s.stationMetrics.RecordUpstreamRequest("error")
			return nil, time.Time{}, err
		}
		s.stationMetrics.RecordUpstreamRequest("success")
		s.stationMetrics.RecordFetch(start)

		names := s.stationNames[market.RegionID]
		entries := make(map[string]interfaces.MarketOrdersResponse)
		for _, order := range res.Data {
			name, ok := names[order.LocationID]
			if !ok {
				continue
			}
			reply := entries[name]
			reply.MarketOrders = append(reply.MarketOrders, interfaces.MarketOrder{
				Quantity: order.VolumeRemain,
				Price:    order.Price,
			})
			entries[name] = reply
		}
		if _, ok := entries[market.Name]; !ok {
			entries[market.Name] = interfaces.MarketOrdersResponse{}
		}
		return entries, res.Expires, nil
	}
}

func (s *Service) structureOrders(ctx context.Context, market config.Market, req interfaces.MarketOrdersRequest) (interfaces.MarketOrdersResponse, error) {
	bucket := s.structureCaches[market.LocationID]
	key := structureKey(market.Name, req.TypeID, req.Buy)

	if reply, found, fresh := bucket.Lookup(key); fresh {
		s.structureMetrics.RecordCacheLookup(true)
		if !found {
			return interfaces.MarketOrdersResponse{}, nil
		}
		return reply, nil
	}
	s.structureMetrics.RecordCacheLookup(false)

	reply, found, err := bucket.GetOrFill(ctx, key, s.fillStructure(market, req.TypeID, req.Buy))
	if err != nil {
		return interfaces.MarketOrdersResponse{}, err
	}
	if !found {
		return interfaces.MarketOrdersResponse{}, nil
	}
	return reply, nil
}

// fillStructure fetches the structure's complete order book and groups it by
// (type, side), keyed under the requesting market's name. The requested group
// always gets an entry, even when empty. A second name configured at the same
// location keeps its own entries and answers empty until a request through it
// triggers a fill after expiry.
func (s *Service) fillStructure(market config.Market, typeID int32, buy bool) cache.FillFunc[interfaces.MarketOrdersResponse] {
	return func(ctx context.Context) (map[string]interfaces.MarketOrdersResponse, time.Time, error) {
		start := time.Now()
		res, err := s.api.StructureOrders(ctx, market.LocationID, market.RefreshToken)
		if err != nil {
			s.structureMetrics.RecordUpstreamRequest("error")
			return nil, time.Time{}, err
		}
		s.structureMetrics.RecordUpstreamRequest("success")
		s.structureMetrics.RecordFetch(start)

		entries := make(map[string]interfaces.MarketOrdersResponse)
		for _, order := range res.Data {
			key := structureKey(market.Name, order.TypeID, order.IsBuyOrder)
			reply := entries[key]
			reply.MarketOrders = append(reply.MarketOrders, interfaces.MarketOrder{
				Quantity: order.VolumeRemain,
				Price:    order.Price,
			})
			entries[key] = reply
		}
		requested := structureKey(market.Name, typeID, buy)
		if _, ok := entries[requested]; !ok {
			entries[requested] = interfaces.MarketOrdersResponse{}
		}
		return entries, res.Expires, nil
	}
}

func structureKey(market string, typeID int32, buy bool) string {
	return fmt.Sprintf("%s|%d|%t", market, typeID, buy)
}
