package artifact

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genstudio/model"
)

func sampleFiles() map[string]string {
	return map[string]string{
		"index.html":                "<html></html>",
		"package.json":              "{}",
		"src/App.jsx":               "app",
		"src/components/Button.jsx": "button",
		"src/components/Card.jsx":   "card",
		"src/index.css":             "css",
	}
}

func TestTreeFromFilesStructure(t *testing.T) {
	roots := TreeFromFiles(sampleFiles())

	byName := make(map[string]*model.FileNode)
	for _, n := range roots {
		byName[n.Name] = n
	}

	src, ok := byName["src"]
	require.True(t, ok)
	assert.Equal(t, model.NodeFolder, src.Type)
	assert.Equal(t, "src", src.Path)

	var components *model.FileNode
	for _, c := range src.Children {
		if c.Name == "components" {
			components = c
		}
	}
	require.NotNil(t, components)
	assert.Equal(t, "src/components", components.Path)
	assert.Len(t, components.Children, 2)

	html := byName["index.html"]
	require.NotNil(t, html)
	assert.Equal(t, model.NodeFile, html.Type)
	assert.Equal(t, "<html></html>", html.Content)
}

func TestTreeRoundTrip(t *testing.T) {
	files := sampleFiles()
	paths := FlattenTree(TreeFromFiles(files))

	want := make([]string, 0, len(files))
	for p := range files {
		want = append(want, p)
	}
	sort.Strings(want)
	sort.Strings(paths)
	assert.Equal(t, want, paths)
}

func TestSortTreeFoldersFirst(t *testing.T) {
	roots := TreeFromFiles(sampleFiles())
	SortTree(roots)

	require.NotEmpty(t, roots)
	assert.Equal(t, "src", roots[0].Name)
	assert.Equal(t, []string{"src", "index.html", "package.json"}, []string{
		roots[0].Name, roots[1].Name, roots[2].Name,
	})

	src := roots[0]
	assert.Equal(t, "components", src.Children[0].Name)
}

func TestTreeSharedPrefixFoldersCreatedOnce(t *testing.T) {
	roots := TreeFromFiles(map[string]string{
		"src/a.js": "a",
		"src/b.js": "b",
	})

	require.Len(t, roots, 1)
	assert.Len(t, roots[0].Children, 2)
}
