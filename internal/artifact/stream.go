package artifact

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"

	"genstudio/model"
)

// streamCache memoizes streaming parses by input hash. A streaming caller
// re-submits a growing prefix on every delta, and the UI may ask for the
// same prefix several times per frame; identical input always produces an
// identical result, so memoizing is safe.
var streamCache, _ = lru.New[[32]byte, model.Artifact](64)

// ParseStreaming extracts whatever complete action units already appear in
// possibly-truncated response text. Only the structured-artifact action
// grammar applies here; an enclosing <genArtifact> container may be absent
// or still open. Units whose closing tag has not arrived yet are simply not
// matched and will be picked up by a later call with more text.
//
// The function recomputes from scratch on every call and keeps no scan
// cursor, so it is idempotent and safe to call repeatedly with growing
// prefixes of the same text.
func ParseStreaming(text string) model.Artifact {
	key := sha256.Sum256([]byte(text))
	if cached, ok := streamCache.Get(key); ok {
		return copyArtifact(cached)
	}

	a := model.NewArtifact()
	// The opening container tag alone is enough for the title; the container
	// is usually still unterminated mid-stream.
	if m := openContainerRegex.FindStringSubmatch(text); m != nil {
		if t := titleAttrRegex.FindStringSubmatch(m[1]); t != nil {
			a.Title = t[1]
		}
	}
	for _, action := range actionRegex.FindAllStringSubmatch(text, -1) {
		applyAction(&a, action[1], action[2])
	}

	streamCache.Add(key, copyArtifact(a))
	return a
}

// copyArtifact deep-copies so cached results stay immutable even when a
// caller mutates the artifact it was handed.
func copyArtifact(a model.Artifact) model.Artifact {
	out := model.Artifact{
		Files:    make(map[string]string, len(a.Files)),
		Commands: append([]string(nil), a.Commands...),
		Title:    a.Title,
	}
	for p, c := range a.Files {
		out.Files[p] = c
	}
	return out
}
