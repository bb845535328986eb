// Package inspector defines the messaging protocol between the host and
// the inspector script running inside the preview frame, the element
// identity scheme both sides must agree on, and a websocket bridge that
// relays the protocol.
package inspector

import "encoding/json"

// ProtocolVersion is echoed by the frame in ready/pong handshakes.
const ProtocolVersion = "1"

// Host -> frame message types.
const (
	MsgEnableEditMode   = "enable-edit-mode"
	MsgDisableEditMode  = "disable-edit-mode"
	MsgSelectElement    = "select-element"
	MsgHighlightElement = "highlight-element"
	MsgUpdateStyle      = "update-style"
	MsgPing             = "ping"
)

// Frame -> host message types.
const (
	MsgReady           = "ready"
	MsgPong            = "pong"
	MsgElementSelected = "element-selected"
	MsgElementHover    = "element-hover"
	MsgDesignChange    = "design-change"
)

// Envelope is the wire format: a type tag plus a type-specific payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Rect is an element's bounding box in preview coordinates. Hover events
// omit Bottom and Right.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Bottom float64 `json:"bottom,omitempty"`
	Right  float64 `json:"right,omitempty"`
}

// ElementInfo describes a selected element as reported by the frame.
type ElementInfo struct {
	ID             string            `json:"id"`
	TagName        string            `json:"tagName"`
	ClassName      string            `json:"className"`
	TextContent    string            `json:"textContent"`
	ComponentName  string            `json:"componentName"`
	Styles         map[string]string `json:"styles"`
	ComputedStyles map[string]string `json:"computedStyles"`
	Rect           Rect              `json:"rect"`
}

// TargetPayload addresses a single element (select-element,
// highlight-element).
type TargetPayload struct {
	ID string `json:"id"`
}

// StylePayload carries an update-style command.
type StylePayload struct {
	ID     string            `json:"id"`
	Styles map[string]string `json:"styles"`
}

// VersionPayload is the ready/pong handshake body.
type VersionPayload struct {
	Version string `json:"version"`
}

// HoverPayload reports the element under the cursor.
type HoverPayload struct {
	ID   string `json:"id"`
	Rect Rect   `json:"rect"`
}
