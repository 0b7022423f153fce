package config

// MarketKind tags a Market as either a public station or a player structure.
type MarketKind int

const (
	KindStation MarketKind = iota
	KindStructure
)

// Market is one configured trading venue. RegionID is meaningful only for
// stations; RefreshToken only for structures, and may be empty there.
type Market struct {
	Name         string
	LocationID   int64
	Kind         MarketKind
	RegionID     int32
	RefreshToken string
}

// Markets indexes every configured venue by market name.
type Markets map[string]Market

// Station identifies a configured station venue within its region.
type Station struct {
	RegionID   int32
	LocationID int64
}

// Markets flattens the station and structure tables into the tagged form the
// dispatcher works with.
func (c *Config) Markets() Markets {
	markets := make(Markets, len(c.StationMarkets)+len(c.StructureMarkets))
	for name, m := range c.StationMarkets {
		markets[name] = Market{
			Name:       name,
			LocationID: m.LocationID,
			Kind:       KindStation,
			RegionID:   m.RegionID,
		}
	}
	for name, m := range c.StructureMarkets {
		markets[name] = Market{
			Name:         name,
			LocationID:   m.LocationID,
			Kind:         KindStructure,
			RefreshToken: m.RefreshToken,
		}
	}
	return markets
}

// Stations returns the set of configured (region, location) station pairs.
func (m Markets) Stations() map[Station]struct{} {
	stations := make(map[Station]struct{})
	for _, market := range m {
		if market.Kind == KindStation {
			stations[Station{market.RegionID, market.LocationID}] = struct{}{}
		}
	}
	return stations
}

// StationMarkets maps a station location back to its market name. Used to
// derive cache keys for orders observed at sibling stations.
func (m Markets) StationMarkets() map[int64]string {
	names := make(map[int64]string)
	for name, market := range m {
		if market.Kind == KindStation {
			names[market.LocationID] = name
		}
	}
	return names
}

// RegionIDs returns the distinct regions covered by station markets.
func (m Markets) RegionIDs() []int32 {
	seen := make(map[int32]struct{})
	var regions []int32
	for _, market := range m {
		if market.Kind != KindStation {
			continue
		}
		if _, ok := seen[market.RegionID]; ok {
			continue
		}
		seen[market.RegionID] = struct{}{}
		regions = append(regions, market.RegionID)
	}
	return regions
}

// StructureLocationIDs returns the distinct structure locations.
func (m Markets) StructureLocationIDs() []int64 {
	seen := make(map[int64]struct{})
	var locations []int64
	for _, market := range m {
		if market.Kind != KindStructure {
			continue
		}
		if _, ok := seen[market.LocationID]; ok {
			continue
		}
		seen[market.LocationID] = struct{}{}
		locations = append(locations, market.LocationID)
	}
	return locations
}

// RefreshTokens returns the distinct refresh tokens across structure markets.
func (m Markets) RefreshTokens() []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, market := range m {
		if market.Kind != KindStructure || market.RefreshToken == "" {
			continue
		}
		if _, ok := seen[market.RefreshToken]; ok {
			continue
		}
		seen[market.RefreshToken] = struct{}{}
		tokens = append(tokens, market.RefreshToken)
	}
	return tokens
}
