// Package sandbox defines the contract with the sandboxed execution
// environment that renders the live preview, plus a local implementation
// backed by a workspace directory and a dev-server process. The runtime is
// an external collaborator: the engine only writes file maps, starts the
// dev server, and watches the event stream.
package sandbox

import (
	"context"
	"time"
)

// Status is the runtime's lifecycle state as reported by status-change
// events.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusBooting    Status = "booting"
	StatusInstalling Status = "installing"
	StatusRunning    Status = "running"
	StatusErrored    Status = "errored"
)

// EventKind discriminates runtime events.
type EventKind string

const (
	EventLog          EventKind = "log"
	EventStatusChange EventKind = "status-change"
	EventServerReady  EventKind = "server-ready"
	EventError        EventKind = "error"
)

// Event is one entry in the runtime's event stream.
type Event struct {
	Kind    EventKind
	Message string // log lines and error text
	Status  Status // status-change only
	URL     string // server-ready only
	Time    time.Time
}

// Runtime is the sandboxed execution environment contract.
type Runtime interface {
	// Boot prepares the environment. Must be called before anything else.
	Boot(ctx context.Context) error
	// WriteFiles materializes the file map into the environment.
	WriteFiles(ctx context.Context, files map[string]string) error
	// InstallDependencies installs the project's declared dependencies.
	InstallDependencies(ctx context.Context) error
	// StartDevServer starts the dev server and calls onReady once with the
	// preview URL.
	StartDevServer(ctx context.Context, onReady func(url string)) error
	// HotReloadFile pushes a single changed file without a full rewrite.
	HotReloadFile(ctx context.Context, path, content string) error
	// Events streams logs, status changes, readiness, and errors.
	Events() <-chan Event
	// Close tears the environment down.
	Close() error
}
