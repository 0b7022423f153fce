package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() *Config {
	return &Config{
		StationMarkets: map[string]StationMarket{
			"JITA":      {LocationID: 60003760, RegionID: 10000002},
			"PERIMETER": {LocationID: 60003761, RegionID: 10000002},
			"AMARR":     {LocationID: 60008494, RegionID: 10000043},
		},
		StructureMarkets: map[string]StructureMarket{
			"1DQ":   {LocationID: 1023456789012, RefreshToken: "tok-1"},
			"1DQ-2": {LocationID: 1023456789012, RefreshToken: "tok-1"},
			"OPEN":  {LocationID: 1031111111111},
		},
	}
}

func TestMarkets_Tagging(t *testing.T) {
	markets := testConfig().Markets()

	jita := markets["JITA"]
	assert.Equal(t, KindStation, jita.Kind)
	assert.Equal(t, int64(60003760), jita.LocationID)
	assert.Equal(t, int32(10000002), jita.RegionID)

	dq := markets["1DQ"]
	assert.Equal(t, KindStructure, dq.Kind)
	assert.Equal(t, int64(1023456789012), dq.LocationID)
	assert.Equal(t, "tok-1", dq.RefreshToken)

	_, ok := markets["NOWHERE"]
	assert.False(t, ok)
}

func TestMarkets_Stations(t *testing.T) {
	stations := testConfig().Markets().Stations()

	assert.Len(t, stations, 3)
	assert.Contains(t, stations, Station{10000002, 60003760})
	assert.Contains(t, stations, Station{10000002, 60003761})
	assert.Contains(t, stations, Station{10000043, 60008494})
}

func TestMarkets_StationMarkets(t *testing.T) {
	names := testConfig().Markets().StationMarkets()

	assert.Equal(t, map[int64]string{
		60003760: "JITA",
		60003761: "PERIMETER",
		60008494: "AMARR",
	}, names)
}

func TestMarkets_RegionIDs(t *testing.T) {
	regions := testConfig().Markets().RegionIDs()
	assert.ElementsMatch(t, []int32{10000002, 10000043}, regions)
}

func TestMarkets_StructureLocationIDs(t *testing.T) {
	locations := testConfig().Markets().StructureLocationIDs()
	assert.ElementsMatch(t, []int64{1023456789012, 1031111111111}, locations)
}

func TestMarkets_RefreshTokens(t *testing.T) {
	tokens := testConfig().Markets().RefreshTokens()
	// Shared tokens are deduplicated and unauthenticated structures excluded.
	assert.Equal(t, []string{"tok-1"}, tokens)
}
