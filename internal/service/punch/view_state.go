package punch

import (
	"sync"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/location"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/pkg/generation"
	capturesvc "github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/service/capture"
)

// viewState is one device's open punch screen.
type viewState struct {
	mu           sync.Mutex
	locGen       generation.Counter
	coordinate   *location.Coordinate
	locationName string
	alert        string
	refs         location.ReferenceSet
	refsLoaded   bool
	pipeline     *capturesvc.Pipeline
	touched      time.Time
}

type viewRegistry struct {
	mu    sync.Mutex
	views map[string]*viewState
}

func newViewRegistry() *viewRegistry {
	return &viewRegistry{views: make(map[string]*viewState)}
}

// get returns the device's view, creating it with newState when absent.
func (r *viewRegistry) get(deviceID string, now time.Time, newState func() *viewState) *viewState {
	r.mu.Lock()
	defer r.mu.Unlock()

	vs, ok := r.views[deviceID]
	if !ok {
		vs = newState()
		r.views[deviceID] = vs
	}
	vs.mu.Lock()
	vs.touched = now
	vs.mu.Unlock()
	return vs
}

func (r *viewRegistry) remove(deviceID string) *viewState {
	r.mu.Lock()
	defer r.mu.Unlock()

	vs := r.views[deviceID]
	delete(r.views, deviceID)
	return vs
}

// removeIdle detaches every view untouched since cutoff.
func (r *viewRegistry) removeIdle(cutoff time.Time) []*viewState {
	r.mu.Lock()
	defer r.mu.Unlock()

	var idle []*viewState
	for id, vs := range r.views {
		vs.mu.Lock()
		stale := vs.touched.Before(cutoff)
		vs.mu.Unlock()
		if stale {
			idle = append(idle, vs)
			delete(r.views, id)
		}
	}
	return idle
}

func (vs *viewState) snapshot() (*location.Coordinate, string, location.ReferenceSet) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	var c *location.Coordinate
	if vs.coordinate != nil {
		copied := *vs.coordinate
		c = &copied
	}
	return c, vs.locationName, vs.refs
}
