// Package session owns one editing session: the chat history, the merged
// project file map, and the wiring between the generation backend, the
// artifact extractor, the design-change aggregator, and the sandbox
// runtime.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"genstudio/internal/artifact"
	"genstudio/internal/design"
	"genstudio/internal/llm"
	"genstudio/internal/logging"
	"genstudio/internal/sandbox"
	"genstudio/internal/store"
	"genstudio/model"
)

// Config wires a Studio. Generator is required; Handle, Store and Preview
// are optional collaborators.
type Config struct {
	Generator llm.Generator
	// Handle is the owned sandbox reference; nil disables preview pushes.
	Handle *sandbox.Handle
	// Store persists snapshots; nil disables persistence.
	Store *store.Store
	// Preview receives instant style updates from the aggregator.
	Preview design.PreviewFunc
	// Debounce overrides the aggregator's quiet period.
	Debounce time.Duration
	Logger   logging.Logger
}

// Studio is the host that owns both engines and the project state.
type Studio struct {
	cfg Config
	log logging.Logger
	agg *design.Aggregator

	mu       sync.Mutex
	files    map[string]string
	messages []model.Message
}

func New(cfg Config) *Studio {
	s := &Studio{
		cfg:   cfg,
		log:   logging.OrNop(cfg.Logger),
		files: make(map[string]string),
	}
	s.agg = design.NewAggregator(design.Config{
		Interval:  cfg.Debounce,
		OnSubmit:  s.submitDesignEdit,
		OnPreview: cfg.Preview,
		OnError:   s.recordEditFailure,
		Logger:    cfg.Logger,
	})
	return s
}

// Aggregator exposes the design-change queue for the inspector wiring.
func (s *Studio) Aggregator() *design.Aggregator {
	return s.agg
}

// Files returns a copy of the current project file map.
func (s *Studio) Files() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	files := make(map[string]string, len(s.files))
	for p, c := range s.files {
		files[p] = c
	}
	return files
}

// Messages returns a copy of the chat history.
func (s *Studio) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.messages...)
}

// Tree returns the current file map as a display-sorted node tree.
func (s *Studio) Tree() []*model.FileNode {
	tree := artifact.TreeFromFiles(s.Files())
	artifact.SortTree(tree)
	return tree
}

// Generate runs one prompt through the backend, extracts the artifact,
// merges it into the project, and pushes the result to the sandbox.
// Backend failures never propagate as errors to the chat flow: they are
// recorded as an assistant-role error message, and the returned error is
// for callers that want to surface it elsewhere too.
func (s *Studio) Generate(ctx context.Context, prompt string) (model.Message, error) {
	s.appendMessage(model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Content:   prompt,
		CreatedAt: time.Now(),
	})

	text, err := s.cfg.Generator.Generate(ctx, prompt, s.Messages())
	if err != nil {
		msg := s.appendMessage(model.Message{
			ID:        uuid.NewString(),
			Role:      model.RoleAssistant,
			Content:   fmt.Sprintf("Generation failed: %v", err),
			IsError:   true,
			CreatedAt: time.Now(),
		})
		return msg, fmt.Errorf("session: generate: %w", err)
	}

	a := artifact.Parse(text)
	msg := s.appendMessage(model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleAssistant,
		Content:   artifact.ExtractMessage(text),
		Artifact:  &a,
		CreatedAt: time.Now(),
	})

	if !a.Empty() {
		s.mergeAndPush(ctx, a)
	}
	s.persist()
	return msg, nil
}

// mergeAndPush folds the artifact's files into the project map
// (last-write-wins) and hands the changed paths to the sandbox.
func (s *Studio) mergeAndPush(ctx context.Context, a model.Artifact) {
	changed := make(map[string]string, len(a.Files))
	s.mu.Lock()
	for p, c := range a.Files {
		if prev, ok := s.files[p]; !ok || prev != c {
			changed[p] = c
		}
		s.files[p] = c
	}
	s.mu.Unlock()

	if s.cfg.Handle == nil || len(changed) == 0 {
		return
	}
	rt, err := s.cfg.Handle.Runtime()
	if err != nil {
		s.log.Debug("sandbox not booted, skipping push")
		return
	}
	if len(changed) == 1 {
		for p, c := range changed {
			if err := rt.HotReloadFile(ctx, p, c); err != nil {
				s.log.Warn("hot reload failed: %v", err)
			}
		}
	} else if err := rt.WriteFiles(ctx, changed); err != nil {
		s.log.Warn("sandbox write failed: %v", err)
		return
	}
	if wantsInstall(a.Commands) {
		if err := rt.InstallDependencies(ctx); err != nil {
			s.log.Warn("dependency install failed: %v", err)
		}
	}
}

// wantsInstall reports whether any artifact command is a dependency
// install. Other shell commands are ignored; the sandbox owns its own
// process model.
func wantsInstall(commands []string) bool {
	for _, c := range commands {
		if strings.Contains(c, "install") || strings.HasPrefix(c, "npm i") {
			return true
		}
	}
	return false
}

// submitDesignEdit is the aggregator's upstream callback: the synthesized
// instruction goes through the normal generation flow.
func (s *Studio) submitDesignEdit(prompt string) error {
	_, err := s.Generate(context.Background(), prompt)
	return err
}

func (s *Studio) recordEditFailure(err error) {
	s.log.Warn("design edit failed: %v", err)
}

func (s *Studio) appendMessage(m model.Message) model.Message {
	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()
	return m
}

// persist snapshots the session if a store is configured. Persistence
// failures are logged, never fatal.
func (s *Studio) persist() {
	if s.cfg.Store == nil {
		return
	}
	s.mu.Lock()
	files := make(map[string]string, len(s.files))
	for p, c := range s.files {
		files[p] = c
	}
	messages := append([]model.Message(nil), s.messages...)
	s.mu.Unlock()

	if err := s.cfg.Store.Save(files, messages); err != nil {
		s.log.Warn("snapshot save failed: %v", err)
	}
}

// SeedFiles loads an existing project file map into an empty session,
// for workspaces that predate the snapshot store.
func (s *Studio) SeedFiles(files map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.files) > 0 {
		return
	}
	for p, c := range files {
		s.files[p] = c
	}
}

// Restore loads the saved snapshot into the session. Having no snapshot
// is not an error; the session just starts empty.
func (s *Studio) Restore() error {
	if s.cfg.Store == nil {
		return nil
	}
	snap, err := s.cfg.Store.Load()
	if err == store.ErrNoSnapshot {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: restore: %w", err)
	}

	s.mu.Lock()
	s.files = snap.Files
	s.messages = snap.Messages
	s.mu.Unlock()
	s.log.Info("restored %d file(s), %d message(s)", len(snap.Files), len(snap.Messages))
	return nil
}
