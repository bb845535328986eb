package artifact

import (
	"sort"
	"strings"

	"genstudio/model"
)

// TreeFromFiles converts a flat file map into a nested FileNode tree.
// Intermediate path segments become folder nodes, created once and reused
// across paths sharing a prefix; the final segment becomes a file node
// carrying the content. Child order is insertion order during construction;
// display ordering is SortTree's job.
func TreeFromFiles(files map[string]string) []*model.FileNode {
	var roots []*model.FileNode
	folders := make(map[string]*model.FileNode)

	// Deterministic construction regardless of map iteration order.
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		segments := strings.Split(path, "/")
		var parent *model.FileNode

		for i, seg := range segments {
			if seg == "" {
				continue
			}
			full := strings.Join(segments[:i+1], "/")

			if i == len(segments)-1 {
				node := &model.FileNode{
					Name:    seg,
					Type:    model.NodeFile,
					Path:    full,
					Content: files[path],
				}
				if parent == nil {
					roots = append(roots, node)
				} else {
					parent.Children = append(parent.Children, node)
				}
				continue
			}

			folder, ok := folders[full]
			if !ok {
				folder = &model.FileNode{
					Name: seg,
					Type: model.NodeFolder,
					Path: full,
				}
				folders[full] = folder
				if parent == nil {
					roots = append(roots, folder)
				} else {
					parent.Children = append(parent.Children, folder)
				}
			}
			parent = folder
		}
	}
	return roots
}

// SortTree orders siblings for display: folders before files, then by name.
// Applied at presentation time; TreeFromFiles output is not required to be
// sorted.
func SortTree(nodes []*model.FileNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Type != nodes[j].Type {
			return nodes[i].Type == model.NodeFolder
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, n := range nodes {
		if len(n.Children) > 0 {
			SortTree(n.Children)
		}
	}
}

// FlattenTree walks a tree back down to the file paths it contains.
func FlattenTree(nodes []*model.FileNode) []string {
	var paths []string
	for _, n := range nodes {
		if n.Type == model.NodeFile {
			paths = append(paths, n.Path)
			continue
		}
		paths = append(paths, FlattenTree(n.Children)...)
	}
	return paths
}
