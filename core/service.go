package core

import (
	"context"
)

// Interface is the lifecycle contract shared by the proxy's long-lived parts:
// the market services and the RPC server start and stop through it.
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// Registry holds the ordered set of services that make up the running proxy.
type Registry struct {
	services []Interface
}

// NewRegistry creates an empty service registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]Interface, 0),
	}
}

// Register appends a service; order matters, see StartAll and StopAll.
func (r *Registry) Register(service Interface) {
	r.services = append(r.services, service)
}

// StartAll starts services in registration order. The first failure aborts
// startup and is returned.
func (r *Registry) StartAll(ctx context.Context) error {
	for _, service := range r.services {
		if err := service.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops services in reverse registration order, so the RPC server
// goes down before the caches it answers from.
func (r *Registry) StopAll() {
	for i := len(r.services) - 1; i >= 0; i-- {
		r.services[i].Stop()
	}
}
