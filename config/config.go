package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables understood by Load. Every value can also come from
// the optional YAML config file; an environment variable always wins.
const (
	EnvServiceAddress   = "WM_SERVICE_ADDRESS"
	EnvUserAgent        = "WM_USER_AGENT"
	EnvClientID         = "WM_CLIENT_ID"
	EnvClientSecret     = "WM_CLIENT_SECRET"
	EnvClientTimeout    = "WM_CLIENT_TIMEOUT"
	EnvStationTimeout   = "WM_STATION_MARKET_ORDERS_TIMEOUT"
	EnvStructureTimeout = "WM_STRUCTURE_MARKET_ORDERS_TIMEOUT"
	EnvAdjustedTimeout  = "WM_ADJUSTED_PRICE_TIMEOUT"
	EnvSystemTimeout    = "WM_SYSTEM_INDEX_TIMEOUT"
	EnvStationMarkets   = "WM_STATION_MARKETS"
	EnvStructureMarkets = "WM_STRUCTURE_MARKETS"
)

// Config holds all service settings. Immutable after Load.
type Config struct {
	// ServiceAddress is the host:port the RPC server binds to
	ServiceAddress string `yaml:"service_address"`

	// UserAgent is sent on every upstream ESI request
	UserAgent string `yaml:"user_agent"`

	// OAuth client credentials used when refreshing access tokens
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// ClientTimeoutSeconds applies to every upstream HTTP call; 0 means no timeout
	ClientTimeoutSeconds int `yaml:"client_timeout"`

	// MinCache holds the per-family lower bounds on cache TTL
	MinCache MinCacheDurations `yaml:"min_cache"`

	StationMarkets   map[string]StationMarket   `yaml:"station_markets"`
	StructureMarkets map[string]StructureMarket `yaml:"structure_markets"`

	// Test/deployment overrides for the upstream endpoints
	OverrideEsiBaseURL string `yaml:"override_esi_base_url"`
	OverrideAuthURL    string `yaml:"override_auth_url"`
}

// MinCacheDurations are the minimum cache TTLs per resource family, in
// seconds. Every family must be set explicitly, from the environment or the
// config file; zero is a valid value but silence is not.
type MinCacheDurations struct {
	StationMarketOrders   int `yaml:"station_market_orders"`
	StructureMarketOrders int `yaml:"structure_market_orders"`
	AdjustedPrice         int `yaml:"adjusted_price"`
	SystemIndex           int `yaml:"system_index"`

	defined struct {
		station, structure, adjustedPrice, systemIndex bool
	}
}

// UnmarshalYAML tracks which families the config file actually set, so that
// validation can tell an explicit zero apart from a missing setting.
func (d *MinCacheDurations) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		StationMarketOrders   *int `yaml:"station_market_orders"`
		StructureMarketOrders *int `yaml:"structure_market_orders"`
		AdjustedPrice         *int `yaml:"adjusted_price"`
		SystemIndex           *int `yaml:"system_index"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.StationMarketOrders != nil {
		d.StationMarketOrders = *raw.StationMarketOrders
		d.defined.station = true
	}
	if raw.StructureMarketOrders != nil {
		d.StructureMarketOrders = *raw.StructureMarketOrders
		d.defined.structure = true
	}
	if raw.AdjustedPrice != nil {
		d.AdjustedPrice = *raw.AdjustedPrice
		d.defined.adjustedPrice = true
	}
	if raw.SystemIndex != nil {
		d.SystemIndex = *raw.SystemIndex
		d.defined.systemIndex = true
	}
	return nil
}

// StationMarket is a public market venue: orders live region-wide and are
// filtered down to the station's location.
type StationMarket struct {
	LocationID int64 `json:"location_id" yaml:"location_id"`
	RegionID   int32 `json:"region_id" yaml:"region_id"`
}

// StructureMarket is a player-owned market venue. RefreshToken is empty for
// structures readable without authentication.
type StructureMarket struct {
	LocationID   int64  `json:"location_id" yaml:"location_id"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
}

func (d MinCacheDurations) StationTTL() time.Duration {
	return time.Duration(d.StationMarketOrders) * time.Second
}

func (d MinCacheDurations) StructureTTL() time.Duration {
	return time.Duration(d.StructureMarketOrders) * time.Second
}

func (d MinCacheDurations) AdjustedPriceTTL() time.Duration {
	return time.Duration(d.AdjustedPrice) * time.Second
}

func (d MinCacheDurations) SystemIndexTTL() time.Duration {
	return time.Duration(d.SystemIndex) * time.Second
}

// ClientTimeout returns the upstream HTTP timeout; zero disables it.
func (c *Config) ClientTimeout() time.Duration {
	return time.Duration(c.ClientTimeoutSeconds) * time.Second
}

// Load builds the configuration from the optional YAML file at path and the
// WM_* environment variables. Environment values override file values. The
// result is validated; an error here is fatal to startup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvServiceAddress); ok {
		c.ServiceAddress = v
	}
	if v, ok := os.LookupEnv(EnvUserAgent); ok {
		c.UserAgent = v
	}
	if v, ok := os.LookupEnv(EnvClientID); ok {
		c.ClientID = v
	}
	if v, ok := os.LookupEnv(EnvClientSecret); ok {
		c.ClientSecret = v
	}

	var err error
	if c.ClientTimeoutSeconds, err = intEnv(EnvClientTimeout, c.ClientTimeoutSeconds, nil); err != nil {
		return err
	}
	if c.MinCache.StationMarketOrders, err = intEnv(EnvStationTimeout, c.MinCache.StationMarketOrders, &c.MinCache.defined.station); err != nil {
		return err
	}
	if c.MinCache.StructureMarketOrders, err = intEnv(EnvStructureTimeout, c.MinCache.StructureMarketOrders, &c.MinCache.defined.structure); err != nil {
		return err
	}
	if c.MinCache.AdjustedPrice, err = intEnv(EnvAdjustedTimeout, c.MinCache.AdjustedPrice, &c.MinCache.defined.adjustedPrice); err != nil {
		return err
	}
	if c.MinCache.SystemIndex, err = intEnv(EnvSystemTimeout, c.MinCache.SystemIndex, &c.MinCache.defined.systemIndex); err != nil {
		return err
	}

	if v, ok := os.LookupEnv(EnvStationMarkets); ok {
		markets := make(map[string]StationMarket)
		if err := json.Unmarshal([]byte(v), &markets); err != nil {
			return fmt.Errorf("parsing %s: %w", EnvStationMarkets, err)
		}
		c.StationMarkets = markets
	}
	if v, ok := os.LookupEnv(EnvStructureMarkets); ok {
		markets := make(map[string]StructureMarket)
		if err := json.Unmarshal([]byte(v), &markets); err != nil {
			return fmt.Errorf("parsing %s: %w", EnvStructureMarkets, err)
		}
		c.StructureMarkets = markets
	}
	return nil
}

func intEnv(name string, current int, defined *bool) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return current, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", name, n)
	}
	if defined != nil {
		*defined = true
	}
	return n, nil
}

func (c *Config) validate() error {
	if c.ServiceAddress == "" {
		return fmt.Errorf("%s is required", EnvServiceAddress)
	}
	if _, _, err := net.SplitHostPort(c.ServiceAddress); err != nil {
		return fmt.Errorf("invalid service address %q: %w", c.ServiceAddress, err)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("%s is required", EnvUserAgent)
	}
	if c.ClientID == "" {
		return fmt.Errorf("%s is required", EnvClientID)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%s is required", EnvClientSecret)
	}
	if !c.MinCache.defined.station {
		return fmt.Errorf("%s is required", EnvStationTimeout)
	}
	if !c.MinCache.defined.structure {
		return fmt.Errorf("%s is required", EnvStructureTimeout)
	}
	if !c.MinCache.defined.adjustedPrice {
		return fmt.Errorf("%s is required", EnvAdjustedTimeout)
	}
	if !c.MinCache.defined.systemIndex {
		return fmt.Errorf("%s is required", EnvSystemTimeout)
	}
	if c.StationMarkets == nil {
		return fmt.Errorf("%s is required", EnvStationMarkets)
	}
	if c.StructureMarkets == nil {
		return fmt.Errorf("%s is required", EnvStructureMarkets)
	}
	for name := range c.StationMarkets {
		if _, dup := c.StructureMarkets[name]; dup {
			return fmt.Errorf("market %q configured as both station and structure", name)
		}
	}
	return nil
}
