package inspector

import (
	"fmt"
	"strings"
)

// Attribute names carrying explicit stable identifiers, in resolution order.
const (
	attrGenID  = "data-gen-id"
	attrTestID = "data-testid"
)

// Node is the minimal view of a rendered element the identity scheme needs.
// The frame-side script mirrors this resolution exactly, so IDs generated
// on either side of the bridge agree.
type Node struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   map[string]string
	Parent  *Node
	// SiblingIndex is the 1-based position among same-tag siblings.
	SiblingIndex int
}

// ElementPath resolves a stable identifier for a node: an explicit
// data-gen-id attribute wins, then data-testid, then a generated structural
// path. The structural path walks the ancestor chain of tag names; an
// ancestor with an id anchors the path and the walk stops there, otherwise
// each segment is narrowed by up to the first two class names and a
// same-tag sibling index. Segments join with ">".
func ElementPath(n *Node) string {
	if n == nil {
		return ""
	}
	if id := n.Attrs[attrGenID]; id != "" {
		return id
	}
	if id := n.Attrs[attrTestID]; id != "" {
		return id
	}

	var segments []string
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.ID != "" {
			segments = append(segments, cur.Tag+"#"+cur.ID)
			break
		}
		segments = append(segments, structuralSegment(cur))
	}

	// Walked leaf-to-root; the path reads root-to-leaf.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ">")
}

func structuralSegment(n *Node) string {
	var b strings.Builder
	b.WriteString(n.Tag)
	for i, class := range n.Classes {
		if i == 2 {
			break
		}
		b.WriteString("." + class)
	}
	index := n.SiblingIndex
	if index < 1 {
		index = 1
	}
	fmt.Fprintf(&b, ":nth-of-type(%d)", index)
	return b.String()
}
