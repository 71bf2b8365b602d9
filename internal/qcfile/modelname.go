package qcfile

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Blaco/qc-scale-tool/internal/numfmt"
	"github.com/Blaco/qc-scale-tool/internal/textscan"
)

// suffixPattern strips a previously applied scale suffix from the base
// filename, e.g. "archer_x2" or "archer_x-0.5".
var suffixPattern = regexp.MustCompile(`_x[-+]?[0-9]+(?:\.[0-9]+)?$`)

// RewriteModelName updates the $modelname directive so the compiled model
// filename carries the new scale, e.g. "archer.mdl" -> "archer_x2.mdl".
// Any prior suffix is stripped first, and a scale of exactly 1 leaves the
// name bare. Quoting, directory and separator style are preserved. A nil
// change with nil error means the directive was not found; callers report
// that but carry on.
func (r *Rewriter) RewriteModelName(text string, newScale float64) (string, *ModelNameChange, error) {
	ending := textscan.DetectLineEnding(text)
	lines := textscan.SplitLines(text)
	tracker := textscan.NewCommentTracker()

	for i, line := range lines {
		if !tracker.LineActive(line) {
			continue
		}
		m := r.modelName.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		value, trailing := splitPathValue(m[2])
		if value == "" {
			continue
		}
		newValue := applySuffix(value, newScale)
		if newValue == value {
			return text, nil, nil
		}
		lines[i] = m[1] + newValue + trailing
		r.log.Info("rewrote model name",
			zap.String("before", value), zap.String("after", newValue))
		return textscan.JoinLines(lines, ending), &ModelNameChange{Before: value, After: newValue}, nil
	}
	return text, nil, nil
}

// splitPathValue takes the directive argument apart from whatever trails
// it (comments, stray tokens). Quoted paths end at the closing quote;
// bare paths at the first whitespace.
func splitPathValue(rest string) (value, trailing string) {
	if strings.HasPrefix(rest, `"`) {
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return "", rest
		}
		return rest[:end+2], rest[end+2:]
	}
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		return rest[:i], rest[i:]
	}
	return rest, ""
}

// applySuffix rewrites just the base filename inside a possibly quoted,
// possibly directory-qualified path, keeping the original separator.
func applySuffix(value string, newScale float64) string {
	quoted := strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2
	path := value
	if quoted {
		path = value[1 : len(value)-1]
	}

	// Splitting on the last separator of either style keeps the directory
	// part, and with it the authored separator, byte for byte.
	dir := ""
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		dir = path[:i+1]
		base = path[i+1:]
	}

	ext := ""
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		ext = base[i:]
		base = base[:i]
	}

	base = suffixPattern.ReplaceAllString(base, "")
	if newScale != 1 {
		base += "_x" + numfmt.FormatScale(newScale)
	}

	out := dir + base + ext
	if quoted {
		out = `"` + out + `"`
	}
	return out
}
