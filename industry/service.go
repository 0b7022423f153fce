// Package industry serves the per-system industry cost indices. The whole
// table arrives in one fetch and is cached as a flat bucket keyed by solar
// system ID.
package industry

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

// Upstream activity labels.
const (
	activityManufacturing = "manufacturing"
	activityResearchTE    = "researching_time_efficiency"
	activityResearchME    = "researching_material_efficiency"
	activityCopying       = "copying"
	activityInvention     = "invention"
	activityReaction      = "reaction"
)

// API is the upstream surface the service fetches through.
type API interface {
	SystemIndices(ctx context.Context) (esi.Expirable[[]esi.SystemIndex], error)
}

// Service implements interfaces.IndustryService.
type Service struct {
	api           API
	indices       *cache.Bucket[interfaces.SystemIndexResponse]
	metricsWriter *metrics.MetricsWriter
	reporter      *scheduler.Scheduler
}

func NewService(cfg *config.Config, api API) *Service {
	return &Service{
		api:           api,
		indices:       cache.NewBucket[interfaces.SystemIndexResponse](cfg.MinCache.SystemIndexTTL()),
		metricsWriter: metrics.NewMetricsWriter(metrics.FamilySystemIndex),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	log.Printf("Industry: system index service started")

	s.reporter = scheduler.New(metricsReportInterval, func(ctx context.Context) {
		s.metricsWriter.RecordCacheSize(s.indices.Len())
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

// SystemIndex returns the cost indices of one solar system. Systems absent
// from the upstream table get all-zero indices.
func (s *Service) SystemIndex(ctx context.Context, req interfaces.SystemIndexRequest) (interfaces.SystemIndexResponse, error) {
	key := systemKey(req.SystemID)

	if reply, found, fresh := s.indices.Lookup(key); fresh {
		s.metricsWriter.RecordCacheLookup(true)
		if !found {
			return interfaces.SystemIndexResponse{}, nil
		}
		return reply, nil
	}
	s.metricsWriter.RecordCacheLookup(false)

	reply, found, err := s.indices.GetOrFill(ctx, key, s.fill)
	if err != nil {
		return interfaces.SystemIndexResponse{}, err
	}
	if !found {
		return interfaces.SystemIndexResponse{}, nil
	}
	return reply, nil
}

// fill fetches the full table and caches one entry per solar system, with
// the activity list folded into named fields. Unrecognized activity labels
// are dropped.
func (s *Service) fill(ctx context.Context) (map[string]interfaces.SystemIndexResponse, time.Time, error) {
	start := time.Now()
	res, err := s.api.SystemIndices(ctx)
	if err != nil {
		s.metricsWriter.RecordUpstreamRequest("error")
		return nil, time.Time{}, err
	}
	s.metricsWriter.RecordUpstreamRequest("success")
	s.metricsWriter.RecordFetch(start)

	entries := make(map[string]interfaces.SystemIndexResponse, len(res.Data))
	for _, system := range res.Data {
		var reply interfaces.SystemIndexResponse
		for _, index := range system.CostIndices {
			switch index.Activity {
			case activityManufacturing:
				reply.Manufacturing = index.CostIndex
			case activityResearchTE:
				reply.ResearchTE = index.CostIndex
			case activityResearchME:
				reply.ResearchME = index.CostIndex
			case activityCopying:
				reply.Copying = index.CostIndex
			case activityInvention:
				reply.Invention = index.CostIndex
			case activityReaction:
				reply.Reactions = index.CostIndex
			default:
				log.Printf("Industry: unknown activity %q for system %d", index.Activity, system.SolarSystemID)
			}
		}
		entries[systemKey(system.SolarSystemID)] = reply
	}
	s.metricsWriter.RecordCacheSize(len(entries))
	return entries, res.Expires, nil
}

func systemKey(systemID int32) string {
	return strconv.FormatInt(int64(systemID), 10)
}
