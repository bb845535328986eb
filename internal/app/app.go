// Package app wires the studio together: flags, the generation backend,
// the extractor, the workspace, and in serve mode the sandbox, the
// inspector bridge, and the HTTP surface.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"sort"
	"time"

	"genstudio/cli"
	"genstudio/internal/artifact"
	"genstudio/internal/design"
	"genstudio/internal/fs"
	"genstudio/internal/inspector"
	"genstudio/internal/llm"
	"genstudio/internal/logging"
	"genstudio/internal/sandbox"
	"genstudio/internal/session"
	"genstudio/internal/source"
	"genstudio/internal/store"
	"genstudio/internal/ui"
	"genstudio/model"
)

// App orchestrates the entire application logic.
type App struct {
	cfg *cli.Config
	log logging.Logger
	src *source.Provider
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	return &App{
		cfg: cfg,
		log: logging.NewComponentLogger("app"),
		src: source.New(),
	}, nil
}

// Execute runs a one-shot invocation: extract a piped response, or
// generate from a positional prompt, then write the workspace.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery to provide stack traces for unexpected errors.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	if a.cfg.Prompt != "" && !a.src.Piped() {
		return a.generateOnce()
	}
	return a.extractOnce()
}

// extractOnce parses an already-produced model response from stdin or the
// clipboard and materializes it.
func (a *App) extractOnce() (model.Summary, error) {
	content, err := a.src.GetContent()
	if err != nil {
		return model.Summary{}, err
	}
	if content == "" {
		return model.Summary{Message: "Source is empty. Nothing to process."}, nil
	}

	art := artifact.Parse(content)
	if art.Empty() {
		return model.Summary{Message: "No files were found in the response. Nothing to do."}, nil
	}
	return a.materialize(art)
}

// generateOnce runs the prompt through the backend and materializes the
// resulting artifact.
func (a *App) generateOnce() (model.Summary, error) {
	gen, err := a.newGenerator(context.Background())
	if err != nil {
		return model.Summary{}, err
	}
	studio := session.New(session.Config{Generator: gen, Logger: a.log})

	msg, err := studio.Generate(context.Background(), a.cfg.Prompt)
	if err != nil {
		return model.Summary{}, err
	}
	if msg.Artifact == nil || msg.Artifact.Empty() {
		return model.Summary{Message: "The response contained no files."}, nil
	}
	summary, err := a.materialize(*msg.Artifact)
	if err != nil {
		return model.Summary{}, err
	}
	if summary.Message == "" {
		summary.Message = msg.Content
	}
	return summary, nil
}

// materialize writes an artifact's files into the workspace, or prints
// them on --dry-run.
func (a *App) materialize(art model.Artifact) (model.Summary, error) {
	summary := model.Summary{Message: art.Title, Commands: art.Commands}

	if a.cfg.DryRun {
		paths := make([]string, 0, len(art.Files))
		for p := range art.Files {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Printf("=== %s ===\n%s\n", p, art.Files[p])
		}
		summary.Created = paths
		return summary, nil
	}

	ws, err := fs.NewWorkspace(a.cfg.Workspace)
	if err != nil {
		return model.Summary{}, err
	}
	created, modified, err := ws.WriteFiles(art.Files)
	if err != nil {
		return model.Summary{}, err
	}

	tree := artifact.TreeFromFiles(art.Files)
	artifact.SortTree(tree)
	ui.PrintTree(tree)

	summary.Created = created
	summary.Modified = modified
	return summary, nil
}

// newGenerator builds the backend client. The genai SDK reads the API key
// from the environment; checking it up front gives a clearer error.
func (a *App) newGenerator(ctx context.Context) (llm.Generator, error) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return llm.NewGeminiClient(ctx, a.cfg.Model, a.log)
}

// Serve runs the studio server: sandbox, inspector bridge, and the HTTP
// API, until the context is cancelled.
func (a *App) Serve(ctx context.Context) error {
	gen, err := a.newGenerator(ctx)
	if err != nil {
		return err
	}

	db, err := store.Open(a.cfg.Workspace)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer db.Close()

	var handle *sandbox.Handle
	if !a.cfg.NoSandbox {
		handle = sandbox.NewHandle(func() (sandbox.Runtime, error) {
			return sandbox.NewLocalRuntime(sandbox.LocalConfig{
				Dir:    a.cfg.Workspace,
				Logger: logging.NewComponentLogger("sandbox"),
			}), nil
		})
		defer handle.Close()
	}

	bridge := inspector.NewBridge(logging.NewComponentLogger("inspector"))
	studio := session.New(session.Config{
		Generator: gen,
		Handle:    handle,
		Store:     db,
		Debounce:  a.cfg.Debounce,
		Logger:    a.log,
		Preview: func(id string, styles map[string]string) {
			if err := bridge.UpdateStyle(id, styles); err != nil {
				a.log.Debug("style preview skipped: %v", err)
			}
		},
	})
	if err := studio.Restore(); err != nil {
		return err
	}
	if len(studio.Files()) == 0 {
		// No snapshot yet; pick up whatever is already in the workspace.
		ws, err := fs.NewWorkspace(a.cfg.Workspace)
		if err != nil {
			return err
		}
		if files, err := ws.ReadFileMap(); err == nil {
			studio.SeedFiles(files)
		}
	}

	bridge.Handle(inspector.MsgDesignChange, func(payload json.RawMessage) {
		var c design.Change
		if err := json.Unmarshal(payload, &c); err != nil {
			a.log.Warn("bad design change: %v", err)
			return
		}
		studio.Aggregator().Queue(c)
	})
	bridge.Handle(inspector.MsgElementSelected, func(payload json.RawMessage) {
		var info inspector.ElementInfo
		if err := json.Unmarshal(payload, &info); err == nil {
			a.log.Debug("element selected: %s (%s)", info.ID, info.ComponentName)
		}
	})

	if handle != nil {
		if err := a.bootSandbox(ctx, handle, studio); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           a.routes(studio, bridge),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	ui.Info("Studio listening on http://%s", a.cfg.Listen)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	studio.Aggregator().Flush()
	return nil
}

// bootSandbox starts the dev server over the restored project files.
func (a *App) bootSandbox(ctx context.Context, handle *sandbox.Handle, studio *session.Studio) error {
	if err := handle.Boot(ctx); err != nil {
		return fmt.Errorf("boot sandbox: %w", err)
	}
	rt, err := handle.Runtime()
	if err != nil {
		return err
	}
	if files := studio.Files(); len(files) > 0 {
		if err := rt.WriteFiles(ctx, files); err != nil {
			return fmt.Errorf("seed sandbox: %w", err)
		}
		if _, ok := files["package.json"]; ok {
			if err := rt.InstallDependencies(ctx); err != nil {
				a.log.Warn("dependency install failed: %v", err)
			}
		}
		go func() {
			err := rt.StartDevServer(ctx, func(url string) {
				ui.Success("Preview ready at %s", url)
			})
			if err != nil && ctx.Err() == nil {
				a.log.Warn("dev server exited: %v", err)
			}
		}()
	}
	return nil
}

func (a *App) routes(studio *session.Studio, bridge *inspector.Bridge) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/inspector", bridge)

	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
			http.Error(w, "prompt is required", http.StatusBadRequest)
			return
		}
		msg, _ := studio.Generate(r.Context(), req.Prompt)
		writeJSON(w, msg)
	})

	mux.HandleFunc("/api/files", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, studio.Files())
	})
	mux.HandleFunc("/api/tree", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, studio.Tree())
	})
	mux.HandleFunc("/api/messages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, studio.Messages())
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
