package esi

import "time"

// Expirable pairs an upstream payload with the absolute expiry advertised in
// the response's Expires header. For multi-page fetches the expiry is the
// maximum across pages.
type Expirable[T any] struct {
	Data    T
	Expires time.Time
}

// StationOrder is one order from GET /markets/{region_id}/orders/.
type StationOrder struct {
	LocationID   int64   `json:"location_id"`
	Price        float64 `json:"price"`
	VolumeRemain int32   `json:"volume_remain"`
}

// StructureOrder is one order from GET /markets/structures/{location_id}/.
type StructureOrder struct {
	IsBuyOrder   bool    `json:"is_buy_order"`
	Price        float64 `json:"price"`
	TypeID       int32   `json:"type_id"`
	VolumeRemain int32   `json:"volume_remain"`
}

// AdjustedPrice is one entry from GET /markets/prices/.
type AdjustedPrice struct {
	AdjustedPrice float64 `json:"adjusted_price"`
	TypeID        int32   `json:"type_id"`
}

// SystemIndex is one entry from GET /industry/systems/.
type SystemIndex struct {
	SolarSystemID int32       `json:"solar_system_id"`
	CostIndices   []CostIndex `json:"cost_indices"`
}

// CostIndex is one activity coefficient inside a SystemIndex.
type CostIndex struct {
	Activity  string  `json:"activity"`
	CostIndex float64 `json:"cost_index"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
