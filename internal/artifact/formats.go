package artifact

import (
	"regexp"
	"strings"

	"genstudio/model"
)

// Structured artifact convention:
//
//	<genArtifact title="Landing page">
//	  <genAction type="file" path="src/App.jsx">...</genAction>
//	  <genAction type="shell">npm install</genAction>
//	</genArtifact>
//
// Exactly one container is consulted per response; a response is assumed to
// carry at most one artifact.
var (
	containerRegex     = regexp.MustCompile(`(?s)<genArtifact\b([^>]*)>(.*?)</genArtifact>`)
	openContainerRegex = regexp.MustCompile(`<genArtifact\b([^>]*)>`)
	actionRegex        = regexp.MustCompile(`(?s)<genAction\b([^>]*)>(.*?)</genAction>`)
	fileTagRegex       = regexp.MustCompile(`(?s)<genFile\s+path="([^"]*)"\s*>(.*?)</genFile>`)

	titleAttrRegex = regexp.MustCompile(`title="([^"]*)"`)
	typeAttrRegex  = regexp.MustCompile(`type="([^"]*)"`)
	pathAttrRegex  = regexp.MustCompile(`path="([^"]*)"`)
)

func parseContainer(text string) model.Artifact {
	a := model.NewArtifact()

	m := containerRegex.FindStringSubmatch(text)
	if m == nil {
		return a
	}
	if t := titleAttrRegex.FindStringSubmatch(m[1]); t != nil {
		a.Title = t[1]
	}

	for _, action := range actionRegex.FindAllStringSubmatch(m[2], -1) {
		applyAction(&a, action[1], action[2])
	}
	return a
}

// applyAction folds one <genAction> unit into the artifact. File actions
// overwrite earlier content for the same path; shell actions append in
// document order. Units with an unknown type or a file unit without a path
// are skipped.
func applyAction(a *model.Artifact, attrs, body string) {
	t := typeAttrRegex.FindStringSubmatch(attrs)
	if t == nil {
		return
	}
	switch t[1] {
	case "file":
		p := pathAttrRegex.FindStringSubmatch(attrs)
		if p == nil || strings.TrimSpace(p[1]) == "" {
			return
		}
		a.Files[strings.TrimSpace(p[1])] = strings.TrimSpace(body)
	case "shell":
		if cmd := strings.TrimSpace(body); cmd != "" {
			a.Commands = append(a.Commands, cmd)
		}
	}
}

// Tagged-file convention: repeated <genFile path="..."> units with inline
// content. No command support.
func parseFileTags(text string) model.Artifact {
	a := model.NewArtifact()
	for _, m := range fileTagRegex.FindAllStringSubmatch(text, -1) {
		path := strings.TrimSpace(m[1])
		if path == "" {
			continue
		}
		a.Files[path] = strings.TrimSpace(m[2])
	}
	return a
}

// Fenced block whose info string encodes language:path, e.g. ```jsx:src/App.jsx
func parseInlinePathBlocks(blocks []fencedBlock) model.Artifact {
	a := model.NewArtifact()
	for _, b := range blocks {
		_, path, ok := strings.Cut(b.Info, ":")
		if !ok || strings.TrimSpace(path) == "" {
			continue
		}
		a.Files[strings.TrimSpace(path)] = strings.TrimSpace(b.Content)
	}
	return a
}

// filepathCommentRegex matches a leading comment line naming the file the
// block belongs to, in //, # or HTML comment style.
var filepathCommentRegex = regexp.MustCompile(`(?i)^\s*(?://|#|<!--)\s*filepath:\s*(.+?)\s*(?:-->)?\s*$`)

// Fenced block whose first content line is a "filepath:" comment. The
// comment line is consumed; the remaining lines become the file content.
func parseCommentPathBlocks(blocks []fencedBlock) model.Artifact {
	a := model.NewArtifact()
	for _, b := range blocks {
		first, rest, _ := strings.Cut(b.Content, "\n")
		m := filepathCommentRegex.FindStringSubmatch(first)
		if m == nil {
			continue
		}
		a.Files[strings.TrimSpace(m[1])] = strings.TrimSpace(rest)
	}
	return a
}

// nonCodeLangs are fence languages that signal prose or terminal output
// rather than a project file. Blocks declaring them are never kept by the
// fallback format.
var nonCodeLangs = map[string]bool{
	"text":    true,
	"bash":    true,
	"shell":   true,
	"sh":      true,
	"console": true,
}

// Plain fenced blocks with no path hint anywhere: keep code blocks only and
// infer a destination path from the content.
func parseInferredBlocks(blocks []fencedBlock) model.Artifact {
	a := model.NewArtifact()
	seq := 0
	for _, b := range blocks {
		lang := strings.ToLower(strings.TrimSpace(b.Info))
		if nonCodeLangs[lang] {
			continue
		}
		content := strings.TrimSpace(b.Content)
		if content == "" {
			continue
		}
		path := inferPath(content, lang, &seq)
		a.Files[path] = content
	}
	return a
}
