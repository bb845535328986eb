package sandbox

import (
	"context"
	"fmt"
	"sync"
)

// Handle is the single owned reference to the runtime. It is created once
// at application start and passed to every consumer; the runtime is booted
// on the first Boot call and replaced only through the explicit Restart
// path, never implicitly recreated mid-session.
type Handle struct {
	mu      sync.Mutex
	factory func() (Runtime, error)
	rt      Runtime
	booted  bool
}

// NewHandle wraps a runtime factory. The factory runs on first Boot and on
// every Restart.
func NewHandle(factory func() (Runtime, error)) *Handle {
	return &Handle{factory: factory}
}

// Boot creates and boots the runtime if that has not happened yet.
// Subsequent calls are no-ops.
func (h *Handle) Boot(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.booted {
		return nil
	}
	rt, err := h.factory()
	if err != nil {
		return fmt.Errorf("sandbox: create runtime: %w", err)
	}
	if err := rt.Boot(ctx); err != nil {
		rt.Close()
		return fmt.Errorf("sandbox: boot: %w", err)
	}
	h.rt = rt
	h.booted = true
	return nil
}

// Runtime returns the booted runtime, or an error before Boot.
func (h *Handle) Runtime() (Runtime, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.booted {
		return nil, fmt.Errorf("sandbox: runtime not booted")
	}
	return h.rt, nil
}

// Restart tears the current runtime down and boots a fresh one. This is
// the only path that replaces a live runtime.
func (h *Handle) Restart(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.booted && h.rt != nil {
		if err := h.rt.Close(); err != nil {
			return fmt.Errorf("sandbox: close old runtime: %w", err)
		}
	}
	h.booted = false
	h.rt = nil

	rt, err := h.factory()
	if err != nil {
		return fmt.Errorf("sandbox: create runtime: %w", err)
	}
	if err := rt.Boot(ctx); err != nil {
		rt.Close()
		return fmt.Errorf("sandbox: boot: %w", err)
	}
	h.rt = rt
	h.booted = true
	return nil
}

// Close tears down the runtime if one is live.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.booted || h.rt == nil {
		return nil
	}
	err := h.rt.Close()
	h.booted = false
	h.rt = nil
	return err
}
