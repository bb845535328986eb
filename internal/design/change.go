// Package design accumulates user-initiated visual edits and turns them
// into a single natural-language edit instruction for the generation
// backend. Rapid-fire edits are debounced into one batch; the synthesized
// prompt asks the backend to answer in the structured artifact format the
// extractor understands, closing the generation loop.
package design

import "time"

// Type tags the variant of a design change.
type Type string

const (
	TypeStyle   Type = "style"
	TypeContent Type = "content"
	TypeProp    Type = "prop"
	TypeAdd     Type = "add"
	TypeDelete  Type = "delete"
	TypeMove    Type = "move"
)

// ContentEdit replaces an element's text. Text wins over Content when both
// are set.
type ContentEdit struct {
	Text    string `json:"text,omitempty"`
	Content string `json:"content,omitempty"`
}

// AddEdit inserts a new element inside the target.
type AddEdit struct {
	// Kind is the new element's declared type; empty means "element".
	Kind string `json:"kind,omitempty"`
}

// MoveEdit relocates the target relative to a destination element.
type MoveEdit struct {
	Destination string `json:"destination"`
	// Position defaults to "inside" when empty.
	Position string `json:"position,omitempty"`
}

// Change is one user-initiated visual edit. Exactly the payload field
// matching Type is consulted; anything else is ignored. Unknown types fall
// back to a generic description built from Raw.
type Change struct {
	Type      Type   `json:"type"`
	ElementID string `json:"elementId"`
	// File is the source file believed to own the element. Supplied by the
	// host; the aggregator does not infer it.
	File string `json:"file,omitempty"`
	// Component is an optional human-readable name, used only for prompt
	// readability.
	Component string `json:"component,omitempty"`

	Style   map[string]string `json:"style,omitempty"`   // TypeStyle: CSS property -> value
	Content *ContentEdit      `json:"content,omitempty"` // TypeContent
	Props   map[string]string `json:"props,omitempty"`   // TypeProp
	Add     *AddEdit          `json:"add,omitempty"`     // TypeAdd
	Move    *MoveEdit         `json:"move,omitempty"`    // TypeMove
	Raw     map[string]any    `json:"raw,omitempty"`     // unknown types only

	// Timestamp is assigned at enqueue time, for diagnostics only.
	// Ordering is queue insertion order.
	Timestamp time.Time `json:"-"`
}

// ref renders the element reference used in every description.
func (c Change) ref() string {
	if c.Component != "" {
		return c.Component + " (" + c.ElementID + ")"
	}
	return c.ElementID
}
