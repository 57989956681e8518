package pipeline

import (
	"sync"

	"github.com/user/yuvenc/pkg/ports"
)

// Releaser tracks acquired resources and releases them in reverse
// acquisition order on every exit path. Release is idempotent: the
// second and later calls are no-ops, so scoped defer and explicit
// error-path release can coexist without double-closing anything.
type Releaser struct {
	mu        sync.Mutex
	logger    ports.Logger
	resources []resource
	released  bool
}

type resource struct {
	name  string
	close func() error
}

// NewReleaser creates a Releaser. Release failures are logged through
// logger rather than propagated; cleanup is best-effort.
func NewReleaser(logger ports.Logger) *Releaser {
	return &Releaser{logger: logger}
}

// Add registers a resource. Resources added later are released first.
func (r *Releaser) Add(name string, close func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources = append(r.resources, resource{name: name, close: close})
}

// Release closes every registered resource in reverse order, exactly
// once across all calls.
func (r *Releaser) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true

	for i := len(r.resources) - 1; i >= 0; i-- {
		res := r.resources[i]
		if err := res.close(); err != nil {
			r.logger.Warn("Failed to release %s: %s", res.name, err)
		}
	}
}
