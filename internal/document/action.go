package document

// ActionKind identifies what an Action does.
type ActionKind int

const (
	ActionInsert ActionKind = iota
	ActionBackspace
	ActionDelete
	ActionMove
	ActionSelectAll
	ActionJump
)

// Motion is a cursor movement.
type Motion int

const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionLineStart
	MotionLineEnd
	MotionDocStart
	MotionDocEnd
	MotionWordLeft
	MotionWordRight
)

// Action is a single in-editor edit or cursor operation.
type Action struct {
	Kind   ActionKind
	Text   string
	Motion Motion
	// Select extends the selection instead of dropping it.
	Select bool
	// Count repeats a motion; zero means once.
	Count int
	Pos   Position
}

// Insert types text at the cursor, replacing any selection. Newlines split lines.
func Insert(text string) Action {
	return Action{Kind: ActionInsert, Text: text}
}

// Backspace deletes the selection or the rune before the cursor.
func Backspace() Action {
	return Action{Kind: ActionBackspace}
}

// Delete deletes the selection or the rune under the cursor.
func Delete() Action {
	return Action{Kind: ActionDelete}
}

// Move moves the cursor and drops the selection.
func Move(m Motion) Action {
	return Action{Kind: ActionMove, Motion: m}
}

// MoveBy repeats a motion n times, e.g. a page of MotionDown.
func MoveBy(m Motion, n int) Action {
	return Action{Kind: ActionMove, Motion: m, Count: n}
}

// Extend moves the cursor and grows the selection.
func Extend(m Motion) Action {
	return Action{Kind: ActionMove, Motion: m, Select: true}
}

// SelectAll selects the whole buffer.
func SelectAll() Action {
	return Action{Kind: ActionSelectAll}
}

// Jump puts the cursor at pos, clamped to the buffer.
func Jump(pos Position, extend bool) Action {
	return Action{Kind: ActionJump, Pos: pos, Select: extend}
}
