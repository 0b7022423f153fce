package api

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wevetools/weve-market/interfaces"
)

// Server exposes the three market RPC operations over HTTP plus health and
// metrics endpoints.
type Server struct {
	address         string
	ordersService   interfaces.OrdersService
	pricesService   interfaces.PricesService
	industryService interfaces.IndustryService
	server          *http.Server
}

func New(address string, ordersService interfaces.OrdersService, pricesService interfaces.PricesService, industryService interfaces.IndustryService) *Server {
	return &Server{
		address:         address,
		ordersService:   ordersService,
		pricesService:   pricesService,
		industryService: industryService,
	}
}

// Start binds the listener synchronously so a bad address fails startup,
// then serves in the background.
func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()

	router.HandleFunc("/rpc/market_orders", s.handleMarketOrders).Methods("POST")
	router.HandleFunc("/rpc/adjusted_price", s.handleAdjustedPrice).Methods("POST")
	router.HandleFunc("/rpc/system_index", s.handleSystemIndex).Methods("POST")

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler: router,
	}

	log.Printf("Server listening on %s", s.address)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
