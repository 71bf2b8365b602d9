package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLineEnding(t *testing.T) {
	assert.Equal(t, LF, DetectLineEnding("a\nb\n"))
	assert.Equal(t, CRLF, DetectLineEnding("a\r\nb\n"))
	assert.Equal(t, LF, DetectLineEnding(""))
}

func TestSplitJoinRoundTrip(t *testing.T) {
	lines := SplitLines("one\r\ntwo\r\nthree\r\n")
	assert.Equal(t, []string{"one", "two", "three"}, lines)
	assert.Equal(t, "one\r\ntwo\r\nthree\r\n", JoinLines(lines, CRLF))
}

func TestSplitLines_NoTrailingNewline(t *testing.T) {
	assert.Equal(t, []string{"only"}, SplitLines("only"))
	assert.Nil(t, SplitLines(""))
}

func TestCommentTracker_LineComment(t *testing.T) {
	tr := NewCommentTracker()
	assert.False(t, tr.LineActive("// $scale 2"))
	assert.False(t, tr.LineActive("   // indented comment"))
	assert.True(t, tr.LineActive("$scale 2 // trailing note"))
}

func TestCommentTracker_BlockComment(t *testing.T) {
	tr := NewCommentTracker()
	assert.True(t, tr.LineActive("$modelname \"a.mdl\""))
	assert.True(t, tr.LineActive("/* begin"))
	assert.True(t, tr.InsideBlock())
	assert.False(t, tr.LineActive("$scale 4"))
	assert.False(t, tr.LineActive("end */"))
	assert.True(t, tr.LineActive("$scale 2"))
}

func TestCommentTracker_SingleLineBlock(t *testing.T) {
	tr := NewCommentTracker()
	assert.True(t, tr.LineActive("/* aside */ $scale 2"))
	assert.False(t, tr.InsideBlock())
}

func TestActiveStripsComments(t *testing.T) {
	tr := NewCommentTracker()
	assert.Equal(t, "$scale 2 ", tr.Active("$scale 2 // note"))
	assert.Equal(t, "a  b", tr.Active("a /* x */ b"))
}

func TestActiveSpansIndexRawLine(t *testing.T) {
	tr := NewCommentTracker()

	line := "a /* x */ b"
	spans := tr.ActiveSpans(line)
	assert.Equal(t, []Span{{Start: 0, End: 2}, {Start: 9, End: 11}}, spans)
	assert.Equal(t, "a  b", Text(line, spans))

	assert.Equal(t, []Span{{Start: 0, End: 9}}, tr.ActiveSpans("$scale 2 // note"))
	assert.Empty(t, tr.ActiveSpans("// all comment"))

	line = "/* note */ $scale 2"
	spans = tr.ActiveSpans(line)
	assert.Equal(t, []Span{{Start: 10, End: 19}}, spans)
	assert.Equal(t, " $scale 2", Text(line, spans))
}
