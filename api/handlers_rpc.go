package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/wevetools/weve-market/interfaces"
	"github.com/wevetools/weve-market/metrics"
)

// handleMarketOrders serves one side of a market's order book for one type
func (s *Server) handleMarketOrders(w http.ResponseWriter, r *http.Request) {
	metrics.RecordRPCRequest("market_orders")

	var req interfaces.MarketOrdersRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := s.ordersService.MarketOrders(r.Context(), req)
	if err != nil {
		log.Printf("API: market_orders for %q type %d failed: %v", req.Market, req.TypeID, err)
		http.Error(w, "upstream fetch failed", http.StatusInternalServerError)
		return
	}
	s.sendJSONResponse(w, resp)
}

// handleAdjustedPrice serves the global adjusted price of one type
func (s *Server) handleAdjustedPrice(w http.ResponseWriter, r *http.Request) {
	metrics.RecordRPCRequest("adjusted_price")

	var req interfaces.AdjustedPriceRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := s.pricesService.AdjustedPrice(r.Context(), req)
	if err != nil {
		log.Printf("API: adjusted_price for type %d failed: %v", req.TypeID, err)
		http.Error(w, "upstream fetch failed", http.StatusInternalServerError)
		return
	}
	s.sendJSONResponse(w, resp)
}

// handleSystemIndex serves the industry cost indices of one solar system
func (s *Server) handleSystemIndex(w http.ResponseWriter, r *http.Request) {
	metrics.RecordRPCRequest("system_index")

	var req interfaces.SystemIndexRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := s.industryService.SystemIndex(r.Context(), req)
	if err != nil {
		log.Printf("API: system_index for system %d failed: %v", req.SystemID, err)
		http.Error(w, "upstream fetch failed", http.StatusInternalServerError)
		return
	}
	s.sendJSONResponse(w, resp)
}

// decodeRequest decodes the JSON request body into dst, answering 400 on
// malformed input. It reports whether the handler should proceed.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
