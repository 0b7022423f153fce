package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv(EnvServiceAddress, "127.0.0.1:8080")
	t.Setenv(EnvUserAgent, "weve-market/1.0 (test)")
	t.Setenv(EnvClientID, "client-id")
	t.Setenv(EnvClientSecret, "client-secret")
	t.Setenv(EnvStationTimeout, "60")
	t.Setenv(EnvStructureTimeout, "120")
	t.Setenv(EnvAdjustedTimeout, "3600")
	t.Setenv(EnvSystemTimeout, "1800")
	t.Setenv(EnvStationMarkets, `{"JITA":{"location_id":60003760,"region_id":10000002}}`)
	t.Setenv(EnvStructureMarkets, `{"1DQ":{"location_id":1023456789012,"refresh_token":"tok-1"}}`)
}

func TestLoad_FromEnv(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.ServiceAddress)
	assert.Equal(t, "weve-market/1.0 (test)", cfg.UserAgent)
	assert.Equal(t, "client-id", cfg.ClientID)
	assert.Equal(t, "client-secret", cfg.ClientSecret)
	assert.Equal(t, time.Duration(0), cfg.ClientTimeout())

	assert.Equal(t, 60*time.Second, cfg.MinCache.StationTTL())
	assert.Equal(t, 120*time.Second, cfg.MinCache.StructureTTL())
	assert.Equal(t, 3600*time.Second, cfg.MinCache.AdjustedPriceTTL())
	assert.Equal(t, 1800*time.Second, cfg.MinCache.SystemIndexTTL())

	assert.Equal(t, StationMarket{LocationID: 60003760, RegionID: 10000002}, cfg.StationMarkets["JITA"])
	assert.Equal(t, StructureMarket{LocationID: 1023456789012, RefreshToken: "tok-1"}, cfg.StructureMarkets["1DQ"])
}

func TestLoad_ClientTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvClientTimeout, "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.ClientTimeout())
}

func TestLoad_MissingRequiredVar(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv(EnvUserAgent)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvUserAgent)
}

func TestLoad_EveryMinCacheSettingRequired(t *testing.T) {
	for _, name := range []string{EnvStationTimeout, EnvStructureTimeout, EnvAdjustedTimeout, EnvSystemTimeout} {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			os.Unsetenv(name)

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_MarketTablesRequired(t *testing.T) {
	for _, name := range []string{EnvStationMarkets, EnvStructureMarkets} {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			os.Unsetenv(name)

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_EmptyMarketTableIsPresent(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvStructureMarkets, `{}`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.StructureMarkets)
}

func TestLoad_ZeroMinCacheIsPresent(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvStationTimeout, "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.MinCache.StationTTL())
}

func TestLoad_MinCacheFromFileOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
min_cache:
  station_market_orders: 10
  structure_market_orders: 20
  adjusted_price: 30
  system_index: 0
station_markets:
  JITA:
    location_id: 60003760
    region_id: 10000002
structure_markets: {}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(EnvServiceAddress, "127.0.0.1:8080")
	t.Setenv(EnvUserAgent, "weve-market/1.0 (test)")
	t.Setenv(EnvClientID, "client-id")
	t.Setenv(EnvClientSecret, "client-secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MinCache.StationMarketOrders)
	assert.Equal(t, 0, cfg.MinCache.SystemIndex)
}

func TestLoad_BadInteger(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvStationTimeout, "sixty")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvStationTimeout)
}

func TestLoad_NegativeDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvAdjustedTimeout, "-1")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_BadMarketJSON(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvStationMarkets, `{"JITA":`)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvStationMarkets)
}

func TestLoad_BadServiceAddress(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvServiceAddress, "not-an-address")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_MarketInBothTables(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvStructureMarkets, `{"JITA":{"location_id":1023456789012}}`)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JITA")
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
service_address: "0.0.0.0:9000"
user_agent: "weve-market/1.0 (file)"
client_id: "file-id"
client_secret: "file-secret"
client_timeout: 15
min_cache:
  station_market_orders: 10
  structure_market_orders: 20
  adjusted_price: 30
  system_index: 40
station_markets:
  JITA:
    location_id: 60003760
    region_id: 10000002
structure_markets:
  1DQ:
    location_id: 1023456789012
    refresh_token: "tok-file"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// Environment wins over the file where both are set.
	t.Setenv(EnvUserAgent, "weve-market/1.0 (env)")
	t.Setenv(EnvStationTimeout, "99")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.ServiceAddress)
	assert.Equal(t, "weve-market/1.0 (env)", cfg.UserAgent)
	assert.Equal(t, "file-id", cfg.ClientID)
	assert.Equal(t, 15*time.Second, cfg.ClientTimeout())
	assert.Equal(t, 99, cfg.MinCache.StationMarketOrders)
	assert.Equal(t, 20, cfg.MinCache.StructureMarketOrders)
	assert.Equal(t, "tok-file", cfg.StructureMarkets["1DQ"].RefreshToken)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestMarketConfig_JSONRoundTrip(t *testing.T) {
	stations := map[string]StationMarket{
		"JITA":      {LocationID: 60003760, RegionID: 10000002},
		"PERIMETER": {LocationID: 60003761, RegionID: 10000002},
	}
	structures := map[string]StructureMarket{
		"1DQ":  {LocationID: 1023456789012, RefreshToken: "tok-1"},
		"OPEN": {LocationID: 1031111111111},
	}

	stationBytes, err := json.Marshal(stations)
	require.NoError(t, err)
	structureBytes, err := json.Marshal(structures)
	require.NoError(t, err)

	var stationsBack map[string]StationMarket
	require.NoError(t, json.Unmarshal(stationBytes, &stationsBack))
	assert.Equal(t, stations, stationsBack)

	var structuresBack map[string]StructureMarket
	require.NoError(t, json.Unmarshal(structureBytes, &structuresBack))
	assert.Equal(t, structures, structuresBack)
}
