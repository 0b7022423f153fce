// Package prices serves the CCP-computed adjusted price table. The whole
// table arrives in one fetch and is cached as a flat bucket keyed by type ID.
package prices

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/wevetools/weve-market/cache"
	"github.com/wevetools/weve-market/config"
	"github.com/wevetools/weve-market/esi"
	"github.com/wevetools/weve-market/interfaces"
	"github.com/wevetools/weve-market/metrics"
	"github.com/wevetools/weve-market/scheduler"
)

const metricsReportInterval = time.Minute

// API is the upstream surface the service fetches through.
type API interface {
	AdjustedPrices(ctx context.Context) (esi.Expirable[[]esi.AdjustedPrice], error)
}

// Service implements interfaces.PricesService.
type Service struct {
	api           API
	prices        *cache.Bucket[interfaces.AdjustedPriceResponse]
	metricsWriter *metrics.MetricsWriter
	reporter      *scheduler.Scheduler
}

func NewService(cfg *config.Config, api API) *Service {
	return &Service{
		api:           api,
		prices:        cache.NewBucket[interfaces.AdjustedPriceResponse](cfg.MinCache.AdjustedPriceTTL()),
		metricsWriter: metrics.NewMetricsWriter(metrics.FamilyAdjustedPrice),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	log.Printf("Prices: adjusted price service started")

	s.reporter = scheduler.New(metricsReportInterval, func(ctx context.Context) {
		s.metricsWriter.RecordCacheSize(s.prices.Len())
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

// AdjustedPrice returns the adjusted price of one type. Types absent from the
// upstream table get a zero price.
func (s *Service) AdjustedPrice(ctx context.Context, req interfaces.AdjustedPriceRequest) (interfaces.AdjustedPriceResponse, error) {
	key := priceKey(req.TypeID)

	if reply, found, fresh := s.prices.Lookup(key); fresh {
		s.metricsWriter.RecordCacheLookup(true)
		if !found {
			return interfaces.AdjustedPriceResponse{}, nil
		}
		return reply, nil
	}
	s.metricsWriter.RecordCacheLookup(false)

	reply, found, err := s.prices.GetOrFill(ctx, key, s.fill)
	if err != nil {
		return interfaces.AdjustedPriceResponse{}, err
	}
	if !found {
		return interfaces.AdjustedPriceResponse{}, nil
	}
	return reply, nil
}

// fill fetches the global table and caches one entry per type.
func (s *Service) fill(ctx context.Context) (map[string]interfaces.AdjustedPriceResponse, time.Time, error) {
	start := time.Now()
	res, err := s.api.AdjustedPrices(ctx)
	if err != nil {
		s.metricsWriter.RecordUpstreamRequest("error")
		return nil, time.Time{}, err
	}
	s.metricsWriter.RecordUpstreamRequest("success")
	s.metricsWriter.RecordFetch(start)

	entries := make(map[string]interfaces.AdjustedPriceResponse, len(res.Data))
	for _, price := range res.Data {
		entries[priceKey(price.TypeID)] = interfaces.AdjustedPriceResponse{
			AdjustedPrice: price.AdjustedPrice,
		}
	}
	s.metricsWriter.RecordCacheSize(len(entries))
	return entries, res.Expires, nil
}

func priceKey(typeID int32) string {
	return strconv.FormatInt(int64(typeID), 10)
}
