// Package compositor holds the only state shared between the UI thread
// and the render thread: the externally rendered textures referenced by
// each frame's display list.
//
// The UI thread registers textures for epoch N while building frame N.
// The render thread looks them up while consuming frame N and calls
// Release once it is done, which reclaims every older epoch.
package compositor

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggdom/internal/logging"
	"github.com/gogpu/ggdom/resources"
)

// Epoch numbers frames. It increases by one per frame.
type Epoch uint64

// ActiveTexture is a texture registered for one epoch.
type ActiveTexture struct {
	Texture gpucontext.Texture
	Width   uint32
	Height  uint32
}

// Registry maps (epoch, external image id) to textures. It is safe for
// concurrent use.
type Registry struct {
	mu     sync.Mutex
	epochs map[Epoch]map[resources.ExternalImageID]ActiveTexture
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{epochs: make(map[Epoch]map[resources.ExternalImageID]ActiveTexture)}
}

// Register makes tex visible under (epoch, id). The texture must stay
// valid and unmodified until the epoch is released.
func (r *Registry) Register(epoch Epoch, id resources.ExternalImageID, tex ActiveTexture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.epochs[epoch]
	if !ok {
		m = make(map[resources.ExternalImageID]ActiveTexture)
		r.epochs[epoch] = m
	}
	m[id] = tex
}

// Get returns the texture registered under (epoch, id).
func (r *Registry) Get(epoch Epoch, id resources.ExternalImageID) (ActiveTexture, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tex, ok := r.epochs[epoch][id]
	return tex, ok
}

// Release drops every epoch older than epoch and returns how many
// textures were dropped. Call it once the renderer has consumed epoch.
func (r *Registry) Release(epoch Epoch) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for e, m := range r.epochs {
		if e < epoch {
			n += len(m)
			delete(r.epochs, e)
		}
	}
	if n > 0 {
		logging.Logger().Debug("compositor: released textures", "before", uint64(epoch), "count", n)
	}
	return n
}

// Epochs returns the number of epochs with live textures.
func (r *Registry) Epochs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.epochs)
}
