package e2etest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// MockESI is a stand-in for the ESI API and its OAuth token endpoint. It
// serves a fixed data set and counts upstream requests so tests can assert
// cache behavior.
type MockESI struct {
	server *httptest.Server

	StationRequests   atomic.Int32
	StructureRequests atomic.Int32
	PriceRequests     atomic.Int32
	SystemRequests    atomic.Int32
	AuthRequests      atomic.Int32

	// StructurePages is the page count advertised via X-Pages
	StructurePages int
}

// NewMockESI starts the mock upstream.
func NewMockESI() *MockESI {
	m := &MockESI{StructurePages: 2}

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/oauth/token", m.handleAuth)
	mux.HandleFunc("/markets/prices/", m.handlePrices)
	mux.HandleFunc("/industry/systems/", m.handleSystems)
	mux.HandleFunc("/markets/structures/", m.handleStructureOrders)
	mux.HandleFunc("/markets/", m.handleStationOrders)

	m.server = httptest.NewServer(mux)
	return m
}

// URL returns the mock's base URL.
func (m *MockESI) URL() string {
	return m.server.URL
}

// AuthURL returns the mock's token endpoint URL.
func (m *MockESI) AuthURL() string {
	return m.server.URL + "/v2/oauth/token"
}

// Close shuts the mock down.
func (m *MockESI) Close() {
	m.server.Close()
}

func (m *MockESI) setExpires(w http.ResponseWriter) {
	w.Header().Set("Expires", time.Now().Add(5*time.Minute).UTC().Format(http.TimeFormat))
}

func (m *MockESI) handleAuth(w http.ResponseWriter, r *http.Request) {
	m.AuthRequests.Add(1)
	fmt.Fprint(w, `{"access_token":"e2e-access-token","expires_in":1200}`)
}

// handleStationOrders serves /markets/{region_id}/orders/ with orders at two
// station locations.
func (m *MockESI) handleStationOrders(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/orders/") {
		http.NotFound(w, r)
		return
	}
	m.StationRequests.Add(1)
	m.setExpires(w)

	if r.URL.Query().Get("order_type") == "buy" {
		fmt.Fprint(w, `[{"location_id":60003760,"price":4.5,"volume_remain":30}]`)
		return
	}
	fmt.Fprint(w, `[
		{"location_id":60003760,"price":4.9,"volume_remain":100},
		{"location_id":60003760,"price":5.1,"volume_remain":50},
		{"location_id":60003761,"price":5.5,"volume_remain":20}
	]`)
}

// handleStructureOrders serves /markets/structures/{structure_id}/ with a
// paginated order book.
func (m *MockESI) handleStructureOrders(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer e2e-access-token" {
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}

	m.setExpires(w)
	if r.Method == http.MethodHead {
		m.StructureRequests.Add(1)
		w.Header().Set("X-Pages", strconv.Itoa(m.StructurePages))
		return
	}

	m.StructureRequests.Add(1)
	if r.URL.Query().Get("page") == "1" {
		fmt.Fprint(w, `[
			{"is_buy_order":false,"price":100.0,"type_id":34,"volume_remain":10},
			{"is_buy_order":true,"price":95.0,"type_id":34,"volume_remain":7}
		]`)
		return
	}
	fmt.Fprint(w, `[{"is_buy_order":false,"price":101.0,"type_id":35,"volume_remain":20}]`)
}

func (m *MockESI) handlePrices(w http.ResponseWriter, r *http.Request) {
	m.PriceRequests.Add(1)
	m.setExpires(w)
	fmt.Fprint(w, `[
		{"type_id":34,"adjusted_price":5.12},
		{"type_id":35,"adjusted_price":9.0}
	]`)
}

func (m *MockESI) handleSystems(w http.ResponseWriter, r *http.Request) {
	m.SystemRequests.Add(1)
	m.setExpires(w)
	fmt.Fprint(w, `[
		{"solar_system_id":30000142,"cost_indices":[
			{"activity":"manufacturing","cost_index":0.05},
			{"activity":"copying","cost_index":0.02},
			{"activity":"reaction","cost_index":0.01}
		]}
	]`)
}
