package interfaces

import "context"

//go:generate mockgen -destination=mocks/adjusted_price.go . PricesService

// AdjustedPriceRequest asks for the global reference price of one item type
type AdjustedPriceRequest struct {
	TypeID int32 `json:"type_id"`
}

// AdjustedPriceResponse carries the CCP-computed adjusted price. The price is
// zero for types absent from the upstream table.
type AdjustedPriceResponse struct {
	AdjustedPrice float64 `json:"adjusted_price"`
}

// PricesService serves adjusted price lookups from the cached global table
type PricesService interface {
	AdjustedPrice(ctx context.Context, req AdjustedPriceRequest) (AdjustedPriceResponse, error)
}
