package sandbox

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"sync"
	"time"

	"genstudio/internal/fs"
	"genstudio/internal/logging"
)

// urlRegex picks the preview URL out of dev-server output. Vite prints
// "  Local:   http://localhost:5173/".
var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

// LocalConfig configures a LocalRuntime.
type LocalConfig struct {
	// Dir is the workspace directory files are written into.
	Dir string
	// InstallCommand defaults to "npm install".
	InstallCommand []string
	// DevCommand defaults to "npm run dev".
	DevCommand []string
	Logger     logging.Logger
}

// LocalRuntime implements Runtime on the local machine: a workspace
// directory plus npm processes. It stands in for a remote sandboxed
// environment and obeys the same contract.
type LocalRuntime struct {
	cfg    LocalConfig
	ws     *fs.Workspace
	events chan Event
	log    logging.Logger

	mu  sync.Mutex
	dev *exec.Cmd
}

func NewLocalRuntime(cfg LocalConfig) *LocalRuntime {
	if len(cfg.InstallCommand) == 0 {
		cfg.InstallCommand = []string{"npm", "install"}
	}
	if len(cfg.DevCommand) == 0 {
		cfg.DevCommand = []string{"npm", "run", "dev"}
	}
	return &LocalRuntime{
		cfg:    cfg,
		events: make(chan Event, 256),
		log:    logging.OrNop(cfg.Logger),
	}
}

func (r *LocalRuntime) Events() <-chan Event {
	return r.events
}

// emit drops events when the buffer is full; the stream is advisory and a
// slow consumer must not stall the runtime.
func (r *LocalRuntime) emit(e Event) {
	e.Time = time.Now()
	select {
	case r.events <- e:
	default:
	}
}

func (r *LocalRuntime) setStatus(s Status) {
	r.emit(Event{Kind: EventStatusChange, Status: s})
}

func (r *LocalRuntime) Boot(ctx context.Context) error {
	r.setStatus(StatusBooting)
	ws, err := fs.NewWorkspace(r.cfg.Dir)
	if err != nil {
		r.emit(Event{Kind: EventError, Message: err.Error()})
		r.setStatus(StatusErrored)
		return err
	}
	r.ws = ws
	r.setStatus(StatusIdle)
	r.log.Info("sandbox booted at %s", ws.Root())
	return nil
}

func (r *LocalRuntime) WriteFiles(ctx context.Context, files map[string]string) error {
	if r.ws == nil {
		return fmt.Errorf("sandbox: not booted")
	}
	created, modified, err := r.ws.WriteFiles(files)
	if err != nil {
		r.emit(Event{Kind: EventError, Message: err.Error()})
		return err
	}
	r.emit(Event{Kind: EventLog, Message: fmt.Sprintf("wrote %d file(s), updated %d", len(created), len(modified))})
	return nil
}

func (r *LocalRuntime) HotReloadFile(ctx context.Context, path, content string) error {
	if r.ws == nil {
		return fmt.Errorf("sandbox: not booted")
	}
	// The dev server watches the workspace; writing the file is the reload.
	if err := r.ws.WriteFile(path, content); err != nil {
		r.emit(Event{Kind: EventError, Message: err.Error()})
		return err
	}
	r.emit(Event{Kind: EventLog, Message: "hot reload " + path})
	return nil
}

func (r *LocalRuntime) InstallDependencies(ctx context.Context) error {
	if r.ws == nil {
		return fmt.Errorf("sandbox: not booted")
	}
	r.setStatus(StatusInstalling)

	cmd := exec.CommandContext(ctx, r.cfg.InstallCommand[0], r.cfg.InstallCommand[1:]...)
	cmd.Dir = r.ws.Root()
	out, err := cmd.CombinedOutput()
	for _, line := range splitLines(out) {
		r.emit(Event{Kind: EventLog, Message: line})
	}
	if err != nil {
		r.emit(Event{Kind: EventError, Message: err.Error()})
		r.setStatus(StatusErrored)
		return fmt.Errorf("sandbox: install failed: %w", err)
	}
	r.setStatus(StatusIdle)
	return nil
}

// StartDevServer launches the dev command and scans its output for the
// preview URL. onReady fires at most once; output keeps streaming into the
// event channel afterwards.
func (r *LocalRuntime) StartDevServer(ctx context.Context, onReady func(url string)) error {
	if r.ws == nil {
		return fmt.Errorf("sandbox: not booted")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev != nil {
		return fmt.Errorf("sandbox: dev server already running")
	}

	cmd := exec.CommandContext(ctx, r.cfg.DevCommand[0], r.cfg.DevCommand[1:]...)
	cmd.Dir = r.ws.Root()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("sandbox: dev server pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		r.setStatus(StatusErrored)
		return fmt.Errorf("sandbox: start dev server: %w", err)
	}
	r.dev = cmd

	go func() {
		ready := false
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			r.emit(Event{Kind: EventLog, Message: line})
			if !ready {
				if url := urlRegex.FindString(line); url != "" {
					ready = true
					r.setStatus(StatusRunning)
					r.emit(Event{Kind: EventServerReady, URL: url})
					if onReady != nil {
						onReady(url)
					}
				}
			}
		}
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			r.emit(Event{Kind: EventError, Message: err.Error()})
			r.setStatus(StatusErrored)
		}
		r.mu.Lock()
		r.dev = nil
		r.mu.Unlock()
	}()

	return nil
}

func (r *LocalRuntime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dev != nil && r.dev.Process != nil {
		if err := r.dev.Process.Kill(); err != nil {
			return fmt.Errorf("sandbox: stop dev server: %w", err)
		}
		r.dev = nil
	}
	return nil
}

func splitLines(out []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
