package core

import (
	"fmt"
	"sync"
	"time"
)

// DefaultListSize is the admin list page size when a request gives none.
const DefaultListSize = 20

// MaxListSize caps the page size a list request may ask for.
const MaxListSize = 100

// Service provides the business logic behind the public site and the admin.
type Service struct {
	store  Store
	videos VideoLookup
	now    func() time.Time

	sendMu sync.Mutex // serializes broadcast sends
}

// Option configures a Service.
type Option func(*Service)

// WithVideoLookup enables title lookup for saved videos.
func WithVideoLookup(v VideoLookup) Option {
	return func(s *Service) { s.videos = v }
}

// WithClock replaces the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service instance.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListResources returns information about all registered resources.
func (s *Service) ListResources() []ResourceInfo {
	defs := All()
	infos := make([]ResourceInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListResourcesByGroup returns resources organized by group.
func (s *Service) ListResourcesByGroup() map[string][]ResourceInfo {
	result := make(map[string][]ResourceInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// Resource returns the definition for key.
func (s *Service) Resource(key string) (ResourceDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return ResourceDefinition{}, fmt.Errorf("%w: %s", ErrUnknownResource, key)
	}
	return def, nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}
