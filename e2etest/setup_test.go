package e2etest

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/wevetools/weve-market/config"
	"github.com/wevetools/weve-market/core"
)

const testAddress = "127.0.0.1:18099"

// TestEnv is a running service wired to a mock upstream.
type TestEnv struct {
	Registry   *core.Registry
	Mock       *MockESI
	BaseURL    string
	cancelFunc context.CancelFunc
}

// SetupTest boots the full service against a mock ESI and waits until the
// HTTP server answers.
func SetupTest(t *testing.T) *TestEnv {
	mock := NewMockESI()

	t.Setenv(config.EnvServiceAddress, testAddress)
	t.Setenv(config.EnvUserAgent, "weve-market-e2e/1.0")
	t.Setenv(config.EnvClientID, "e2e-client")
	t.Setenv(config.EnvClientSecret, "e2e-secret")
	t.Setenv(config.EnvClientTimeout, "10")
	t.Setenv(config.EnvStationTimeout, "300")
	t.Setenv(config.EnvStructureTimeout, "300")
	t.Setenv(config.EnvAdjustedTimeout, "600")
	t.Setenv(config.EnvSystemTimeout, "600")
	t.Setenv(config.EnvStationMarkets,
		`{"jita":{"location_id":60003760,"region_id":10000002},"perimeter":{"location_id":60003761,"region_id":10000002}}`)
	t.Setenv(config.EnvStructureMarkets,
		`{"1DQ":{"location_id":1023456789012,"refresh_token":"e2e-refresh"}}`)

	cfg, err := config.Load("")
	if err != nil {
		mock.Close()
		t.Fatalf("Failed to load test config: %v", err)
	}
	cfg.OverrideEsiBaseURL = mock.URL()
	cfg.OverrideAuthURL = mock.AuthURL()

	ctx, cancel := context.WithCancel(context.Background())

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		mock.Close()
		cancel()
		t.Fatalf("Failed to setup services: %v", err)
	}
	if err := registry.StartAll(ctx); err != nil {
		mock.Close()
		cancel()
		t.Fatalf("Failed to start services: %v", err)
	}

	env := &TestEnv{
		Registry:   registry,
		Mock:       mock,
		BaseURL:    fmt.Sprintf("http://%s", testAddress),
		cancelFunc: cancel,
	}

	// Wait for the server to answer.
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(env.BaseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			env.TearDown()
			t.Fatalf("Server not responding: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	return env
}

// TearDown releases test environment resources
func (env *TestEnv) TearDown() {
	if env.Registry != nil {
		env.Registry.StopAll()
	}
	if env.cancelFunc != nil {
		env.cancelFunc()
	}
	if env.Mock != nil {
		env.Mock.Close()
	}
}
