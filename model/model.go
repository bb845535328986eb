package model

import "time"

// Artifact is the extraction result for one LLM response: the set of
// generated files, any shell commands, and an optional title.
type Artifact struct {
	// Files maps forward-slash relative paths to trimmed file content.
	// Later occurrences of a path within one response overwrite earlier ones.
	Files map[string]string
	// Commands holds shell command strings in order of appearance.
	Commands []string
	// Title is the descriptive title from the artifact container, if any.
	Title string
}

// NewArtifact returns an empty artifact ready to be filled.
func NewArtifact() Artifact {
	return Artifact{Files: make(map[string]string)}
}

// Empty reports whether the artifact carries no files and no commands.
func (a Artifact) Empty() bool {
	return len(a.Files) == 0 && len(a.Commands) == 0
}

// NodeType discriminates file and folder nodes in a FileNode tree.
type NodeType string

const (
	NodeFile   NodeType = "file"
	NodeFolder NodeType = "folder"
)

// FileNode is a presentation-oriented tree node derived from a file map.
// Trees are rebuilt from scratch when the file map changes, never mutated
// in place.
type FileNode struct {
	Name     string
	Type     NodeType
	Path     string // full path from the project root
	Children []*FileNode
	Content  string // file nodes only
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat entry. Assistant messages keep the artifact parsed
// out of their content so the host can re-render files without re-parsing.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	IsError   bool      `json:"is_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Artifact *Artifact `json:"-"`
}

// Summary holds the results of a one-shot run for display.
type Summary struct {
	Message  string
	Created  []string
	Modified []string
	Commands []string
}
