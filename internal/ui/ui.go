package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"genstudio/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// PrintTree renders a project file tree to stderr.
func PrintTree(nodes []*model.FileNode) {
	printTree(nodes, 0)
}

func printTree(nodes []*model.FileNode, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	for _, n := range nodes {
		if n.Type == model.NodeFolder {
			InfoColor.Fprintf(os.Stderr, "%s%s/\n", indent, n.Name)
			printTree(n.Children, depth+1)
		} else {
			fmt.Fprintf(os.Stderr, "%s%s\n", indent, n.Name)
		}
	}
}

// PrintSummary renders a one-shot run's results to stderr.
func PrintSummary(s model.Summary) {
	Header("\n--- Summary ---")

	if s.Message != "" {
		Info("%s", s.Message)
	}
	if len(s.Created) == 0 && len(s.Modified) == 0 && len(s.Commands) == 0 {
		if s.Message == "" {
			Info("Nothing to do.")
		}
		return
	}

	if len(s.Created) > 0 {
		Success("Created %d file(s):", len(s.Created))
		for _, f := range s.Created {
			fmt.Fprintf(os.Stderr, "  - %s\n", f)
		}
	}
	if len(s.Modified) > 0 {
		Success("Modified %d file(s):", len(s.Modified))
		for _, f := range s.Modified {
			fmt.Fprintf(os.Stderr, "  - %s\n", f)
		}
	}
	if len(s.Commands) > 0 {
		Warning("Run these commands in the workspace:")
		for _, c := range s.Commands {
			fmt.Fprintf(os.Stderr, "  $ %s\n", c)
		}
	}
}
