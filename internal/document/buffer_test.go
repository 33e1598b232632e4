package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferTextRoundTrip(t *testing.T) {
	for _, text := range []string{"", "a", "a\n", "\n\n", "one\r\ntwo\r\n", "tab\there ✓"} {
		assert.Equal(t, text, NewBufferFromText(text).Text())
	}
}

func TestInsertSingleLine(t *testing.T) {
	b := NewBuffer()
	assert.True(t, b.Apply(Insert("hello")))
	assert.Equal(t, "hello", b.Text())
	assert.Equal(t, Position{Line: 0, Col: 5}, b.Cursor())

	b.Apply(Move(MotionLineStart))
	b.Apply(Insert(">"))
	assert.Equal(t, ">hello", b.Text())
	assert.Equal(t, Position{Line: 0, Col: 1}, b.Cursor())
}

func TestInsertMultiLine(t *testing.T) {
	b := NewBufferFromText("headtail")
	b.Apply(Jump(Position{Line: 0, Col: 4}, false))
	assert.True(t, b.Apply(Insert("1\n2\n3")))
	assert.Equal(t, "head1\n2\n3tail", b.Text())
	assert.Equal(t, Position{Line: 2, Col: 1}, b.Cursor())
}

func TestInsertNewlineSplitsLine(t *testing.T) {
	b := NewBufferFromText("ab")
	b.Apply(Jump(Position{Col: 1}, false))
	b.Apply(Insert("\n"))
	assert.Equal(t, []string{"a", "b"}, b.Lines())
	assert.Equal(t, Position{Line: 1, Col: 0}, b.Cursor())
}

func TestBackspace(t *testing.T) {
	b := NewBufferFromText("ab\ncd")
	b.Apply(Jump(Position{Line: 1, Col: 0}, false))

	assert.True(t, b.Apply(Backspace()))
	assert.Equal(t, "abcd", b.Text())
	assert.Equal(t, Position{Line: 0, Col: 2}, b.Cursor())

	assert.True(t, b.Apply(Backspace()))
	assert.Equal(t, "acd", b.Text())

	b.Apply(Move(MotionDocStart))
	assert.False(t, b.Apply(Backspace()))
	assert.Equal(t, "acd", b.Text())
}

func TestDeleteForward(t *testing.T) {
	b := NewBufferFromText("ab\ncd")
	b.Apply(Jump(Position{Line: 0, Col: 2}, false))

	assert.True(t, b.Apply(Delete()))
	assert.Equal(t, "abcd", b.Text())

	b.Apply(Move(MotionDocEnd))
	assert.False(t, b.Apply(Delete()))
}

func TestSelectionReplaceAndDelete(t *testing.T) {
	b := NewBufferFromText("hello world")
	b.Apply(Jump(Position{Col: 6}, false))
	for i := 0; i < 5; i++ {
		b.Apply(Extend(MotionRight))
	}
	start, end, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, Position{Col: 6}, start)
	assert.Equal(t, Position{Col: 11}, end)
	assert.Equal(t, "world", b.SelectedText())

	assert.True(t, b.Apply(Insert("there")))
	assert.Equal(t, "hello there", b.Text())
	_, _, ok = b.Selection()
	assert.False(t, ok)
}

func TestSelectAllAcrossLines(t *testing.T) {
	b := NewBufferFromText("one\ntwo\nthree")
	b.Apply(SelectAll())
	assert.Equal(t, "one\ntwo\nthree", b.SelectedText())

	assert.True(t, b.Apply(Backspace()))
	assert.Equal(t, "", b.Text())
	assert.Equal(t, 1, b.LineCount())
}

func TestBackwardSelection(t *testing.T) {
	b := NewBufferFromText("abc\ndef")
	b.Apply(Move(MotionDocEnd))
	b.Apply(Extend(MotionUp))
	assert.Equal(t, "\ndef", b.SelectedText())

	b.Apply(Move(MotionLeft))
	_, _, ok := b.Selection()
	assert.False(t, ok)
}

func TestMotionsDoNotChangeContent(t *testing.T) {
	b := NewBufferFromText("alpha beta\ngamma")
	for _, m := range []Motion{
		MotionRight, MotionDown, MotionLeft, MotionUp, MotionLineEnd, MotionLineStart,
		MotionWordRight, MotionWordLeft, MotionDocEnd, MotionDocStart,
	} {
		assert.False(t, b.Apply(Move(m)))
	}
	assert.Equal(t, "alpha beta\ngamma", b.Text())
}

func TestVerticalMotionKeepsGoalColumn(t *testing.T) {
	b := NewBufferFromText("long line here\nab\nanother long line")
	b.Apply(Jump(Position{Line: 0, Col: 10}, false))

	b.Apply(Move(MotionDown))
	assert.Equal(t, Position{Line: 1, Col: 2}, b.Cursor())
	b.Apply(Move(MotionDown))
	assert.Equal(t, Position{Line: 2, Col: 10}, b.Cursor())
}

func TestWordMotions(t *testing.T) {
	b := NewBufferFromText("foo bar_baz  qux")
	b.Apply(Move(MotionWordRight))
	assert.Equal(t, 3, b.Cursor().Col)
	b.Apply(Move(MotionWordRight))
	assert.Equal(t, 11, b.Cursor().Col)
	b.Apply(Move(MotionWordLeft))
	assert.Equal(t, 4, b.Cursor().Col)
}

func TestMoveByCount(t *testing.T) {
	b := NewBufferFromText("0\n1\n2\n3\n4\n5")
	b.Apply(MoveBy(MotionDown, 3))
	assert.Equal(t, 3, b.Cursor().Line)
	b.Apply(MoveBy(MotionDown, 10))
	assert.Equal(t, 5, b.Cursor().Line)
}

func TestJumpClamps(t *testing.T) {
	b := NewBufferFromText("ab\ncd")
	b.Apply(Jump(Position{Line: 9, Col: 9}, false))
	assert.Equal(t, Position{Line: 1, Col: 2}, b.Cursor())
	b.Apply(Jump(Position{Line: 0, Col: 9}, false))
	assert.Equal(t, Position{Line: 0, Col: 2}, b.Cursor())
	b.Apply(Jump(Position{Line: -1}, false))
	assert.Equal(t, Position{}, b.Cursor())
}

func TestUnicodeColumnsCountRunes(t *testing.T) {
	b := NewBufferFromText("héllo")
	b.Apply(Move(MotionLineEnd))
	assert.Equal(t, 5, b.Cursor().Col)
	b.Apply(Backspace())
	b.Apply(Backspace())
	b.Apply(Backspace())
	b.Apply(Backspace())
	assert.Equal(t, "h", b.Text())
}
