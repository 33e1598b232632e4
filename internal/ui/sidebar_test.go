package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xedit/internal/filetree"
)

func plainLines(s string) []string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func TestRenderSidebarDirectory(t *testing.T) {
	tr := filetree.New()
	tr.ReplaceRoot("/proj", []filetree.Entry{
		{Name: "a.txt", Path: "/proj/a.txt"},
		{Name: "sub", Path: "/proj/sub", IsDir: true},
		{Name: "z", Path: "/proj/z", IsDir: true},
	})
	tr.Toggle("/proj/sub")
	tr.InstallChildren("/proj/sub", []filetree.Entry{{Name: "b.txt", Path: "/proj/sub/b.txt"}})
	tr.Toggle("/proj/z")

	out, offset := renderSidebar(tr, 0, lipgloss.NewStyle())
	assert.Equal(t, 1, offset)
	assert.Equal(t, []string{
		"proj",
		"├── a.txt",
		"├── sub/",
		"│   └── b.txt",
		"└── z/ …",
	}, plainLines(out))

	rows := tr.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, "b.txt", rows[2].Name)
}

func TestRenderSidebarSingleFile(t *testing.T) {
	tr := filetree.New()
	tr.ReplaceWithFile("/proj/a.txt")

	out, offset := renderSidebar(tr, 0, lipgloss.NewStyle())
	assert.Equal(t, 0, offset)
	assert.Equal(t, []string{"└── a.txt"}, plainLines(out))

	tr.ReplaceWithPlaceholder()
	out, _ = renderSidebar(tr, 0, lipgloss.NewStyle())
	assert.Equal(t, []string{"└── " + filetree.PlaceholderName}, plainLines(out))
}

func TestRenderSidebarMarksSelection(t *testing.T) {
	tr := filetree.New()
	tr.ReplaceWithFile("/proj/a.txt")
	id := tr.Rows()[0].ID

	marker := lipgloss.NewStyle().SetString(">")
	out, _ := renderSidebar(tr, id, marker)
	assert.Contains(t, ansi.Strip(out), "> a.txt")
}
