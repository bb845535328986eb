package design

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SynthesizePrompt turns a batch of changes into one natural-language edit
// instruction. Changes are grouped by target file, keeping arrival order
// within each group, and the instruction ends with a directive to answer in
// the structured artifact format so the reply feeds straight back into the
// extractor.
func SynthesizePrompt(batch []Change) string {
	groups := make(map[string][]Change)
	var order []string
	for _, c := range batch {
		file := c.File
		if file == "" {
			file = "the current file"
		}
		if _, seen := groups[file]; !seen {
			order = append(order, file)
		}
		groups[file] = append(groups[file], c)
	}

	var b strings.Builder
	b.WriteString("Apply the following design changes:\n")
	for _, file := range order {
		fmt.Fprintf(&b, "\nIn %s:\n", file)
		for _, c := range groups[file] {
			fmt.Fprintf(&b, "- %s\n", describe(c))
		}
	}
	b.WriteString("\nReturn only the files that changed, as a <genArtifact> block ")
	b.WriteString("with one <genAction type=\"file\" path=\"...\"> per file.")
	return b.String()
}

// describe renders one change. Payloads that are missing expected fields
// degrade to the generic fallback instead of failing.
func describe(c Change) string {
	switch c.Type {
	case TypeStyle:
		if len(c.Style) == 0 {
			break
		}
		return fmt.Sprintf("update the style of %s: %s", c.ref(), joinPairs(c.Style, ": "))
	case TypeContent:
		if c.Content == nil {
			break
		}
		text := c.Content.Text
		if text == "" {
			text = c.Content.Content
		}
		return fmt.Sprintf("change the text of %s to %q", c.ref(), text)
	case TypeProp:
		if len(c.Props) == 0 {
			break
		}
		return fmt.Sprintf("set props on %s: %s", c.ref(), joinProps(c.Props))
	case TypeAdd:
		kind := "element"
		if c.Add != nil && c.Add.Kind != "" {
			kind = c.Add.Kind
		}
		return fmt.Sprintf("add new %s inside %s", kind, c.ref())
	case TypeDelete:
		return fmt.Sprintf("remove %s", c.ref())
	case TypeMove:
		position := "inside"
		destination := ""
		if c.Move != nil {
			destination = c.Move.Destination
			if c.Move.Position != "" {
				position = c.Move.Position
			}
		}
		return fmt.Sprintf("move %s %s %s", c.ref(), position, destination)
	}

	// Unknown variant or malformed payload: a generic update with whatever
	// detail is available, deliberately not an error.
	raw, err := json.Marshal(c.Raw)
	if err != nil || c.Raw == nil {
		raw = []byte("{}")
	}
	return fmt.Sprintf("update %s: %s", c.ref(), raw)
}

// joinPairs renders a map as "k<sep>v" entries, comma-joined, in sorted key
// order so prompts are deterministic.
func joinPairs(m map[string]string, sep string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+sep+m[k])
	}
	return strings.Join(parts, ", ")
}

func joinProps(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, m[k]))
	}
	return strings.Join(parts, ", ")
}
