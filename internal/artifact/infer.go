package artifact

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Well-known destinations for blocks the model emitted without any path
// hint. These match the file layout of a Vite + React project, which is
// what the generation prompt asks for.
const (
	appEntryPath   = "src/App.jsx"
	bootstrapPath  = "src/main.jsx"
	stylesheetPath = "src/index.css"
	manifestPath   = "package.json"
	htmlEntryPath  = "index.html"
	viteConfigPath = "vite.config.js"
)

var (
	appExportRegex  = regexp.MustCompile(`export\s+default\s+(?:function\s+)?App\b`)
	rootMountRegex  = regexp.MustCompile(`createRoot\s*\(|ReactDOM\.render\s*\(`)
	stylesheetRegex = regexp.MustCompile(`(?m)^\s*(?:@tailwind\b|:root\s*\{)`)
	htmlRegex       = regexp.MustCompile(`(?i)<!DOCTYPE\s+html|<html[\s>]`)
	viteRegex       = regexp.MustCompile(`defineConfig\s*\(`)

	exportedNameRegex = regexp.MustCompile(`export\s+(?:default\s+)?(?:function|const|class)\s+([A-Z][A-Za-z0-9_]*)`)
)

// langExtensions maps fence languages to file extensions for inferred
// paths. Unmapped component languages fall back to .jsx, anything else
// to .txt.
var langExtensions = map[string]string{
	"javascript": "js",
	"js":         "js",
	"jsx":        "jsx",
	"typescript": "ts",
	"ts":         "ts",
	"tsx":        "tsx",
	"css":        "css",
	"scss":       "scss",
	"html":       "html",
	"json":       "json",
	"svg":        "svg",
	"markdown":   "md",
	"md":         "md",
}

// inferPath guesses the destination for a pathless code block. Heuristics
// run in a fixed order and the first match wins; seq numbers the generic
// fallback filenames within one parse.
func inferPath(content, lang string, seq *int) string {
	switch {
	case appExportRegex.MatchString(content):
		return appEntryPath
	case rootMountRegex.MatchString(content):
		return bootstrapPath
	case stylesheetRegex.MatchString(content):
		return stylesheetPath
	case isPackageManifest(content):
		return manifestPath
	case htmlRegex.MatchString(content):
		return htmlEntryPath
	case viteRegex.MatchString(content) && strings.Contains(content, "vite"):
		return viteConfigPath
	}

	if m := exportedNameRegex.FindStringSubmatch(content); m != nil {
		ext, ok := langExtensions[lang]
		if !ok {
			ext = "jsx"
		}
		return fmt.Sprintf("src/components/%s.%s", m[1], ext)
	}

	*seq++
	ext, ok := langExtensions[lang]
	if !ok {
		ext = "txt"
	}
	return fmt.Sprintf("src/snippet-%d.%s", *seq, ext)
}

// isPackageManifest reports whether the block is a JSON object with both a
// "dependencies" and a "name" key. Model-emitted JSON is often slightly
// malformed, so a failed parse gets one repair attempt before giving up.
func isPackageManifest(content string) bool {
	if !strings.Contains(content, `"dependencies"`) || !strings.Contains(content, `"name"`) {
		return false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return false
		}
		if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
			return false
		}
	}
	_, hasDeps := obj["dependencies"]
	_, hasName := obj["name"]
	return hasDeps && hasName
}
