package document

import (
	"strings"
	"unicode"
)

// Position is a cursor location. Col counts runes, not bytes.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p comes before q in the buffer.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Buffer is a line-oriented text buffer with a cursor and an optional selection.
type Buffer struct {
	lines     [][]rune
	cursor    Position
	anchor    Position
	selecting bool
	goal      int // column that vertical motion tries to keep
}

// NewBuffer returns a buffer holding one empty line.
func NewBuffer() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewBufferFromText splits text on '\n'. Joining the lines back yields text unchanged.
func NewBufferFromText(text string) *Buffer {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return &Buffer{lines: lines}
}

// Text returns the whole buffer.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// LineCount returns the number of lines, at least one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// Lines returns a copy of every line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Position {
	return b.cursor
}

// Selection returns the ordered bounds of the selection, if one is non-empty.
func (b *Buffer) Selection() (start, end Position, ok bool) {
	if !b.selecting || b.anchor == b.cursor {
		return Position{}, Position{}, false
	}
	if b.anchor.Before(b.cursor) {
		return b.anchor, b.cursor, true
	}
	return b.cursor, b.anchor, true
}

// SelectedText returns the selected text, or "".
func (b *Buffer) SelectedText() string {
	start, end, ok := b.Selection()
	if !ok {
		return ""
	}
	if start.Line == end.Line {
		return string(b.lines[start.Line][start.Col:end.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line][start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Line][:end.Col]))
	return sb.String()
}

// Apply performs a and reports whether the content changed.
func (b *Buffer) Apply(a Action) bool {
	switch a.Kind {
	case ActionInsert:
		return b.insert(a.Text)
	case ActionBackspace:
		return b.backspace()
	case ActionDelete:
		return b.deleteForward()
	case ActionMove:
		b.startSelection(a.Select)
		n := a.Count
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			b.move(a.Motion)
		}
		if a.Motion != MotionUp && a.Motion != MotionDown {
			b.goal = b.cursor.Col
		}
	case ActionSelectAll:
		b.anchor = Position{}
		b.selecting = true
		b.setCursor(b.end())
	case ActionJump:
		b.startSelection(a.Select)
		b.setCursor(b.clamp(a.Pos))
	}
	return false
}

func (b *Buffer) startSelection(extend bool) {
	if !extend {
		b.selecting = false
		return
	}
	if !b.selecting {
		b.anchor = b.cursor
		b.selecting = true
	}
}

func (b *Buffer) setCursor(p Position) {
	b.cursor = p
	b.goal = p.Col
}

func (b *Buffer) end() Position {
	last := len(b.lines) - 1
	return Position{Line: last, Col: len(b.lines[last])}
}

func (b *Buffer) clamp(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(b.lines) {
		return b.end()
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(b.lines[p.Line]); p.Col > n {
		p.Col = n
	}
	return p
}

func (b *Buffer) insert(text string) bool {
	changed := b.deleteSelection()
	if text == "" {
		return changed
	}

	c := b.cursor
	line := b.lines[c.Line]
	head := cloneRunes(line[:c.Col])
	tail := cloneRunes(line[c.Col:])

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		ins := []rune(parts[0])
		b.lines[c.Line] = concat(head, ins, tail)
		b.setCursor(Position{Line: c.Line, Col: c.Col + len(ins)})
		return true
	}

	added := make([][]rune, len(parts))
	added[0] = concat(head, []rune(parts[0]))
	for i := 1; i < len(parts)-1; i++ {
		added[i] = []rune(parts[i])
	}
	lastIns := []rune(parts[len(parts)-1])
	added[len(parts)-1] = concat(lastIns, tail)

	lines := make([][]rune, 0, len(b.lines)+len(parts)-1)
	lines = append(lines, b.lines[:c.Line]...)
	lines = append(lines, added...)
	lines = append(lines, b.lines[c.Line+1:]...)
	b.lines = lines
	b.setCursor(Position{Line: c.Line + len(parts) - 1, Col: len(lastIns)})
	return true
}

func (b *Buffer) backspace() bool {
	if b.deleteSelection() {
		return true
	}
	c := b.cursor
	switch {
	case c.Col > 0:
		b.deleteRange(Position{Line: c.Line, Col: c.Col - 1}, c)
	case c.Line > 0:
		prev := Position{Line: c.Line - 1, Col: len(b.lines[c.Line-1])}
		b.deleteRange(prev, c)
	default:
		return false
	}
	return true
}

func (b *Buffer) deleteForward() bool {
	if b.deleteSelection() {
		return true
	}
	c := b.cursor
	switch {
	case c.Col < len(b.lines[c.Line]):
		b.deleteRange(c, Position{Line: c.Line, Col: c.Col + 1})
	case c.Line < len(b.lines)-1:
		b.deleteRange(c, Position{Line: c.Line + 1})
	default:
		return false
	}
	return true
}

func (b *Buffer) deleteSelection() bool {
	start, end, ok := b.Selection()
	b.selecting = false
	if !ok {
		return false
	}
	b.deleteRange(start, end)
	return true
}

// deleteRange removes the text in [start, end) and leaves the cursor at start.
func (b *Buffer) deleteRange(start, end Position) {
	joined := concat(cloneRunes(b.lines[start.Line][:start.Col]), b.lines[end.Line][end.Col:])
	lines := make([][]rune, 0, len(b.lines)-(end.Line-start.Line))
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, joined)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines
	b.selecting = false
	b.setCursor(start)
}

func (b *Buffer) move(m Motion) {
	c := b.cursor
	switch m {
	case MotionLeft:
		if c.Col > 0 {
			c.Col--
		} else if c.Line > 0 {
			c.Line--
			c.Col = len(b.lines[c.Line])
		}
	case MotionRight:
		if c.Col < len(b.lines[c.Line]) {
			c.Col++
		} else if c.Line < len(b.lines)-1 {
			c.Line++
			c.Col = 0
		}
	case MotionUp:
		if c.Line > 0 {
			c.Line--
			c.Col = min(b.goal, len(b.lines[c.Line]))
		} else {
			c.Col = 0
		}
	case MotionDown:
		if c.Line < len(b.lines)-1 {
			c.Line++
			c.Col = min(b.goal, len(b.lines[c.Line]))
		} else {
			c.Col = len(b.lines[c.Line])
		}
	case MotionLineStart:
		c.Col = 0
	case MotionLineEnd:
		c.Col = len(b.lines[c.Line])
	case MotionDocStart:
		c = Position{}
	case MotionDocEnd:
		c = b.end()
	case MotionWordLeft:
		c = b.wordLeft(c)
	case MotionWordRight:
		c = b.wordRight(c)
	}
	b.cursor = c
}

func (b *Buffer) wordLeft(c Position) Position {
	if c.Col == 0 {
		if c.Line == 0 {
			return c
		}
		return Position{Line: c.Line - 1, Col: len(b.lines[c.Line-1])}
	}
	line := b.lines[c.Line]
	i := c.Col
	for i > 0 && !isWordRune(line[i-1]) {
		i--
	}
	for i > 0 && isWordRune(line[i-1]) {
		i--
	}
	return Position{Line: c.Line, Col: i}
}

func (b *Buffer) wordRight(c Position) Position {
	line := b.lines[c.Line]
	if c.Col >= len(line) {
		if c.Line >= len(b.lines)-1 {
			return c
		}
		return Position{Line: c.Line + 1}
	}
	i := c.Col
	for i < len(line) && !isWordRune(line[i]) {
		i++
	}
	for i < len(line) && isWordRune(line[i]) {
		i++
	}
	return Position{Line: c.Line, Col: i}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func cloneRunes(r []rune) []rune {
	return append([]rune(nil), r...)
}

func concat(parts ...[]rune) []rune {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]rune, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
