package ui

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"xedit/internal/filetree"
)

var (
	rootStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true)
)

// renderSidebar draws the visible part of the tree. Row i of v.Rows() is printed on
// line i+offset; offset is 1 when a root directory label heads the tree.
func renderSidebar(v filetree.View, selected filetree.NodeID, selStyle lipgloss.Style) (string, int) {
	t := tree.New()
	offset := 0
	if root := v.Root(); root != "" {
		t = tree.Root(rootStyle.Render(filepath.Base(root)))
		offset = 1
	}
	for _, n := range v.Roots() {
		t.Child(sidebarNode(v, n, selected, selStyle))
	}
	return t.String(), offset
}

func sidebarNode(v filetree.View, n filetree.Node, selected filetree.NodeID, selStyle lipgloss.Style) any {
	label := nodeLabel(n)
	if n.ID == selected {
		label = selStyle.Render(label)
	} else {
		label = nodeStyle(n).Render(label)
	}

	if !n.IsDir() || !n.Expanded {
		return label
	}
	sub := tree.Root(label)
	for _, id := range n.Children {
		if c, ok := v.Get(id); ok {
			sub.Child(sidebarNode(v, c, selected, selStyle))
		}
	}
	return sub
}

func nodeLabel(n filetree.Node) string {
	switch {
	case n.IsDir() && n.Expanded && !n.Loaded:
		return n.Name + "/ …"
	case n.IsDir():
		return n.Name + "/"
	default:
		return n.Name
	}
}

func nodeStyle(n filetree.Node) lipgloss.Style {
	switch {
	case n.IsDir():
		return dirStyle
	case n.IsPlaceholder():
		return placeholderStyle
	default:
		return fileStyle
	}
}
