// Package textscan provides the streaming text plumbing shared by the QC
// and VRD rewriters: line splitting that remembers which newline flavor
// the file used, and comment-region tracking so line recognizers never
// fire inside commented-out script.
package textscan

import "strings"

// LineEnding is the newline convention used when a rewritten file is
// reassembled.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
)

// DetectLineEnding picks the convention for a whole-file rewrite. A single
// CRLF anywhere selects CRLF for the entire output; otherwise LF.
func DetectLineEnding(text string) LineEnding {
	if strings.Contains(text, "\r\n") {
		return CRLF
	}
	return LF
}

// SplitLines breaks text into lines without their terminators. A trailing
// newline does not yield a phantom empty final line.
func SplitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}

// JoinLines reassembles lines with the given convention and a trailing
// terminator on the final line.
func JoinLines(lines []string, ending LineEnding) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, string(ending)) + string(ending)
}

// CommentTracker classifies lines against QC-style comments: `//` to end
// of line and `/* ... */` blocks that may span lines. It is streaming
// state; feed lines strictly top to bottom.
type CommentTracker struct {
	insideBlock bool
}

// NewCommentTracker returns a tracker positioned before line one.
func NewCommentTracker() *CommentTracker {
	return &CommentTracker{}
}

// Span is a half-open raw-index range of live text within a line.
type Span struct {
	Start, End int
}

// ActiveSpans returns the raw-index ranges of line that are live script,
// advancing the block-comment state. Rewrites that must preserve comment
// text match against the stripped view and splice through these ranges.
func (t *CommentTracker) ActiveSpans(line string) []Span {
	var spans []Span
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			spans = append(spans, Span{Start: start, End: end})
		}
		start = -1
	}

	i := 0
	for i < len(line) {
		if t.insideBlock {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				return spans
			}
			i += end + 2
			t.insideBlock = false
			continue
		}
		if strings.HasPrefix(line[i:], "//") {
			flush(i)
			return spans
		}
		if strings.HasPrefix(line[i:], "/*") {
			flush(i)
			t.insideBlock = true
			i += 2
			continue
		}
		if start < 0 {
			start = i
		}
		i++
	}
	flush(len(line))
	return spans
}

// Text concatenates the ranges of line selected by spans.
func Text(line string, spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(line[s.Start:s.End])
	}
	return b.String()
}

// Active returns the portion of line that is live script, with commented
// spans removed, and advances the block-comment state. Recognizers match
// against the returned text; rewrites still operate on the original line.
func (t *CommentTracker) Active(line string) string {
	return Text(line, t.ActiveSpans(line))
}

// LineActive reports whether recognizers may match this line at all, then
// advances the block-comment state. A line is inert when it begins inside
// a block comment or its first visible characters are `//`. Lines that
// merely carry a trailing comment stay active; the trailing text rides
// along in whatever "rest of line" capture the recognizer preserves.
func (t *CommentTracker) LineActive(line string) bool {
	wasInside := t.insideBlock
	leading := !wasInside && strings.HasPrefix(strings.TrimSpace(line), "//")
	t.Active(line)
	return !wasInside && !leading
}

// InsideBlock reports whether the tracker is currently inside an
// unterminated block comment.
func (t *CommentTracker) InsideBlock() bool {
	return t.insideBlock
}
