package interfaces

import "context"

//go:generate mockgen -destination=mocks/market_orders.go . OrdersService

// MarketOrdersRequest asks for one side of the order book for a single item
// type at a named market.
type MarketOrdersRequest struct {
	// TypeID is the EVE item type to look up
	TypeID int32 `json:"type_id"`

	// Market is the configured market name (e.g., "jita", "1DQ")
	Market string `json:"market"`

	// Buy selects buy orders; false selects sell orders
	Buy bool `json:"buy"`
}

// MarketOrder is a single open order, reduced to what price calculations need
type MarketOrder struct {
	Quantity int32   `json:"quantity"`
	Price    float64 `json:"price"`
}

// MarketOrdersResponse carries the matching orders; it is empty when the
// market has none or the market name is not configured
type MarketOrdersResponse struct {
	MarketOrders []MarketOrder `json:"market_orders"`
}

// OrdersService serves market order lookups from cache, fetching from ESI
// when the cached book has expired
type OrdersService interface {
	MarketOrders(ctx context.Context, req MarketOrdersRequest) (MarketOrdersResponse, error)
}
