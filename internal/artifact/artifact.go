// Package artifact extracts generated source files and shell commands from
// raw LLM response text. Responses arrive in one of several conventions,
// tried in strict priority order; the first convention that yields anything
// wins and the rest are ignored. Extraction never fails: unrecognized text
// degrades to an empty artifact.
package artifact

import (
	"genstudio/model"
)

// Parse returns the best-matching extraction for complete response text.
// It never returns an error; on total failure the artifact is empty, which
// is a legitimate outcome for a purely conversational reply.
func Parse(text string) model.Artifact {
	if a := parseContainer(text); !a.Empty() {
		return a
	}
	if a := parseFileTags(text); !a.Empty() {
		return a
	}

	blocks := extractFencedBlocks(text)

	if a := parseInlinePathBlocks(blocks); !a.Empty() {
		return a
	}
	if a := parseCommentPathBlocks(blocks); !a.Empty() {
		return a
	}
	if a := parseInferredBlocks(blocks); !a.Empty() {
		return a
	}

	return model.NewArtifact()
}
