package core

import (
	"context"

	"github.com/wevetools/weve-market/api"
	"github.com/wevetools/weve-market/config"
	"github.com/wevetools/weve-market/esi"
	"github.com/wevetools/weve-market/industry"
	"github.com/wevetools/weve-market/orders"
	"github.com/wevetools/weve-market/prices"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// One ESI client is shared by every service: it owns the request
	// limiter and the OAuth token table.
	client := esi.NewClient(cfg)

	ordersService := orders.NewService(cfg, client)
	registry.Register(ordersService)

	pricesService := prices.NewService(cfg, client)
	registry.Register(pricesService)

	industryService := industry.NewService(cfg, client)
	registry.Register(industryService)

	// Create HTTP server and register it last so it starts after the
	// services it dispatches to.
	server := api.New(cfg.ServiceAddress, ordersService, pricesService, industryService)
	registry.Register(server)

	return registry, nil
}
