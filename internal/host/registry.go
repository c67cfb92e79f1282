package host

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry is a minimal in-process Host.
type Registry struct {
	mu         sync.Mutex
	extensions []Extension
	closed     bool
	log        logrus.FieldLogger
}

// NewRegistry returns an empty Registry.
func NewRegistry(log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{log: log}
}

// AddExtension registers ext and runs its Setup hook.
func (r *Registry) AddExtension(ext Extension) {
	r.mu.Lock()
	r.extensions = append(r.extensions, ext)
	r.mu.Unlock()

	r.log.Debugf("Setting up extension %T", ext)
	ext.Setup()
}

// Extensions returns the registered extensions in registration order.
func (r *Registry) Extensions() []Extension {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Extension(nil), r.extensions...)
}

// Activate runs CreateActions on every extension for w.
func (r *Registry) Activate(w Window) {
	for _, ext := range r.Extensions() {
		ext.CreateActions(w)
	}
}

// Close shuts the extensions down in reverse registration order. Only the
// first call has an effect.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	exts := r.extensions
	r.mu.Unlock()

	for i := len(exts) - 1; i >= 0; i-- {
		r.log.Debugf("Shutting down extension %T", exts[i])
		exts[i].Shutdown()
	}
}
