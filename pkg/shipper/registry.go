package shipper

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages registered shipping carriers.
type Registry struct {
	shippers map[string]Shipper
	mu       sync.RWMutex
}

// NewRegistry creates a new shipper registry.
func NewRegistry() *Registry {
	return &Registry{
		shippers: make(map[string]Shipper),
	}
}

// Register adds a shipper to the registry.
func (r *Registry) Register(s Shipper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shippers[s.Name()] = s
}

// Get returns a shipper by name.
func (r *Registry) Get(name string) (Shipper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.shippers[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCarrierNotFound, name)
}

// Names returns the names of all registered shippers, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.shippers))
	for name := range r.shippers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered shippers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shippers)
}

// CreateShipments submits independent requests to one carrier in parallel,
// at most limit at a time (no limit when limit <= 0). Results and errors are
// indexed like reqs; one failure does not stop the others.
func (r *Registry) CreateShipments(ctx context.Context, carrier string, reqs []*ShipmentRequest, limit int) ([]*ShipmentResult, []error) {
	results := make([]*ShipmentResult, len(reqs))
	errs := make([]error, len(reqs))

	s, err := r.Get(carrier)
	if err != nil {
		for i := range errs {
			errs[i] = err
		}
		return results, errs
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, req := range reqs {
		g.Go(func() error {
			res, err := s.CreateShipment(ctx, req)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", carrier, err)
				return nil // Don't fail the group, continue with other requests
			}
			results[i] = res
			return nil
		})
	}

	g.Wait()
	return results, errs
}
