package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wevetools/weve-market/interfaces"
	interface_mocks "github.com/wevetools/weve-market/interfaces/mocks"
)

func testServer(t *testing.T) (*Server, *interface_mocks.MockOrdersService, *interface_mocks.MockPricesService, *interface_mocks.MockIndustryService) {
	ctrl := gomock.NewController(t)
	orders := interface_mocks.NewMockOrdersService(ctrl)
	prices := interface_mocks.NewMockPricesService(ctrl)
	industry := interface_mocks.NewMockIndustryService(ctrl)
	return New("localhost:0", orders, prices, industry), orders, prices, industry
}

func TestHandleMarketOrders(t *testing.T) {
	server, orders, _, _ := testServer(t)

	orders.EXPECT().
		MarketOrders(gomock.Any(), interfaces.MarketOrdersRequest{TypeID: 34, Market: "jita", Buy: true}).
		Return(interfaces.MarketOrdersResponse{
			MarketOrders: []interfaces.MarketOrder{{Quantity: 100, Price: 4.9}},
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/rpc/market_orders",
		strings.NewReader(`{"type_id":34,"market":"jita","buy":true}`))
	w := httptest.NewRecorder()
	server.handleMarketOrders(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp interfaces.MarketOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []interfaces.MarketOrder{{Quantity: 100, Price: 4.9}}, resp.MarketOrders)
}

func TestHandleMarketOrders_UpstreamError(t *testing.T) {
	server, orders, _, _ := testServer(t)

	orders.EXPECT().
		MarketOrders(gomock.Any(), gomock.Any()).
		Return(interfaces.MarketOrdersResponse{}, errors.New("esi down"))

	req := httptest.NewRequest(http.MethodPost, "/rpc/market_orders",
		strings.NewReader(`{"type_id":34,"market":"jita"}`))
	w := httptest.NewRecorder()
	server.handleMarketOrders(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleMarketOrders_BadBody(t *testing.T) {
	server, _, _, _ := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/rpc/market_orders", strings.NewReader(`{"type_id":`))
	w := httptest.NewRecorder()
	server.handleMarketOrders(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAdjustedPrice(t *testing.T) {
	server, _, prices, _ := testServer(t)

	prices.EXPECT().
		AdjustedPrice(gomock.Any(), interfaces.AdjustedPriceRequest{TypeID: 34}).
		Return(interfaces.AdjustedPriceResponse{AdjustedPrice: 5.12}, nil)

	req := httptest.NewRequest(http.MethodPost, "/rpc/adjusted_price", strings.NewReader(`{"type_id":34}`))
	w := httptest.NewRecorder()
	server.handleAdjustedPrice(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp interfaces.AdjustedPriceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5.12, resp.AdjustedPrice)
}

func TestHandleSystemIndex(t *testing.T) {
	server, _, _, industry := testServer(t)

	industry.EXPECT().
		SystemIndex(gomock.Any(), interfaces.SystemIndexRequest{SystemID: 30000142}).
		Return(interfaces.SystemIndexResponse{Manufacturing: 0.05, Reactions: 0.01}, nil)

	req := httptest.NewRequest(http.MethodPost, "/rpc/system_index", strings.NewReader(`{"system_id":30000142}`))
	w := httptest.NewRecorder()
	server.handleSystemIndex(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp interfaces.SystemIndexResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.05, resp.Manufacturing)
	assert.Equal(t, 0.01, resp.Reactions)
}

func TestHandleHealth(t *testing.T) {
	server, _, _, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
