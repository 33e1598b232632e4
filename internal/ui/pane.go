package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"xedit/internal/document"
)

var (
	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("239"))

	currentLineNumberStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	selectionStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("255"))
)

// frame is the window of the document shown in the editor pane.
type frame struct {
	top, left     int
	width, height int
	tabWidth      int
	showCursor    bool
}

func gutterWidth(lineCount int) int {
	return len(strconv.Itoa(lineCount)) + 1
}

// renderEditor draws f.height lines of doc, each at most f.width cells wide.
func renderEditor(doc document.View, f frame, hl *Highlighter, path string) string {
	gw := gutterWidth(doc.LineCount())
	textW := max(f.width-gw, 1)
	cur := doc.Cursor()
	selStart, selEnd, hasSel := doc.Selection()

	out := make([]string, 0, f.height)
	for row := f.top; row < f.top+f.height; row++ {
		if row >= doc.LineCount() {
			out = append(out, "")
			continue
		}

		num := fmt.Sprintf("%*d ", gw-1, row+1)
		if row == cur.Line {
			num = currentLineNumberStyle.Render(num)
		} else {
			num = lineNumberStyle.Render(num)
		}

		line := []rune(doc.Line(row))
		var text string
		if (f.showCursor && row == cur.Line) || (hasSel && row >= selStart.Line && row <= selEnd.Line) {
			text = renderPlainLine(line, row, cur, f.showCursor, selStart, selEnd, hasSel, f.tabWidth)
		} else {
			text = hl.Line(path, expandTabs(line, f.tabWidth))
		}
		out = append(out, num+ansi.Cut(text, f.left, f.left+textW))
	}
	return strings.Join(out, "\n")
}

type cellState int

const (
	cellPlain cellState = iota
	cellSelected
	cellCursor
)

// renderPlainLine draws a line without syntax colors, marking the cursor cell and
// the selected range. A selected line break shows as one selected blank cell.
func renderPlainLine(line []rune, row int, cur document.Position, showCursor bool, start, end document.Position, hasSel bool, tabWidth int) string {
	var b, run strings.Builder
	state := cellPlain
	flush := func() {
		if run.Len() == 0 {
			return
		}
		switch state {
		case cellSelected:
			b.WriteString(selectionStyle.Render(run.String()))
		case cellCursor:
			b.WriteString(cursorStyle.Render(run.String()))
		default:
			b.WriteString(run.String())
		}
		run.Reset()
	}

	vis := 0
	for i := 0; i <= len(line); i++ {
		pos := document.Position{Line: row, Col: i}
		s := cellPlain
		if hasSel && inRange(pos, start, end) {
			s = cellSelected
		}
		if showCursor && pos == cur {
			s = cellCursor
		}

		var cell string
		switch {
		case i == len(line):
			if s != cellPlain {
				cell = " "
			}
		case line[i] == '\t':
			cell = strings.Repeat(" ", tabWidth-vis%tabWidth)
		default:
			cell = string(line[i])
		}
		if cell == "" {
			break
		}

		if s != state {
			flush()
			state = s
		}
		run.WriteString(cell)
		vis += ansi.StringWidth(cell)
	}
	flush()
	return b.String()
}

func inRange(p, start, end document.Position) bool {
	return !p.Before(start) && p.Before(end)
}

func expandTabs(line []rune, tabWidth int) string {
	var b strings.Builder
	vis := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - vis%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			vis += n
			continue
		}
		b.WriteRune(r)
		vis += ansi.StringWidth(string(r))
	}
	return b.String()
}

// visualCol is the screen column of rune index col once tabs are expanded.
func visualCol(line []rune, col, tabWidth int) int {
	vis := 0
	for i, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			vis += tabWidth - vis%tabWidth
			continue
		}
		vis += ansi.StringWidth(string(r))
	}
	return vis
}
