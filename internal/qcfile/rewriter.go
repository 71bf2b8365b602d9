// Package qcfile rewrites the model-compiler script: placing the $scale
// directive, rescaling eyeball geometry against the relative factor, and
// maintaining the scale suffix on $modelname. Everything it does not
// recognize passes through untouched; commented-out script is inert.
package qcfile

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Blaco/qc-scale-tool/internal/config"
	"github.com/Blaco/qc-scale-tool/internal/numfmt"
	"github.com/Blaco/qc-scale-tool/internal/scale"
	"github.com/Blaco/qc-scale-tool/internal/textscan"
)

const number = `[-+]?[0-9]*\.?[0-9]+`

// EyeballChange records one rewritten eyeball line for reporting.
type EyeballChange struct {
	Line   int // 1-based
	Name   string
	Before string
	After  string
}

// ModelNameChange records the $modelname suffix rewrite.
type ModelNameChange struct {
	Before string
	After  string
}

// Report summarizes what Rewrite did to the QC file.
type Report struct {
	DirectiveReplaced bool
	DirectiveInserted bool
	Eyeballs          []EyeballChange
}

// Rewriter holds the line recognizers compiled from configuration.
type Rewriter struct {
	cfg       config.Config
	log       *zap.Logger
	directive *regexp.Regexp
	eyeball   *regexp.Regexp
	modelName *regexp.Regexp
	flexRef   *regexp.Regexp
}

// NewRewriter compiles the QC line recognizers.
func NewRewriter(cfg config.Config, log *zap.Logger) *Rewriter {
	kw := regexp.QuoteMeta(cfg.QC.ScaleKeyword)
	eye := regexp.QuoteMeta(cfg.QC.EyeballKeyword)
	mdl := regexp.QuoteMeta(cfg.QC.ModelNameKeyword)
	ext := regexp.QuoteMeta(cfg.QC.FlexExtension)

	return &Rewriter{
		cfg:       cfg,
		log:       log,
		directive: regexp.MustCompile(`^(\s*` + kw + `\s+)(` + number + `)(.*)$`),
		// eyeball <name> <bone> <x> <y> <z> <material> <diameter> <angle>
		// <iris material> <iris scale> [trailing]. Whitespace runs are
		// captured so the rebuilt line keeps its columns.
		eyeball: regexp.MustCompile(
			`^(\s*` + eye + `\s+)(\S+)(\s+)(\S+)(\s+)(` + number + `)(\s+)(` + number + `)(\s+)(` + number +
				`)(\s+)(\S+)(\s+)(` + number + `)(\s+)(` + number + `)(\s+)(\S+)(\s+)(` + number + `)(.*)$`),
		modelName: regexp.MustCompile(`^(\s*` + mdl + `\s+)(.*)$`),
		flexRef:   regexp.MustCompile(`(?i)[\w\-./\\]+` + ext + `\b`),
	}
}

// DetectFlexFile scans active lines for a reference to vertex flex
// animation data, which $scale cannot correct. It returns the first
// referenced filename, or "" when none is present.
func (r *Rewriter) DetectFlexFile(text string) string {
	tracker := textscan.NewCommentTracker()
	for _, line := range textscan.SplitLines(text) {
		active := tracker.Active(line)
		if m := r.flexRef.FindString(active); m != "" {
			r.log.Warn("flex animation reference found; $scale does not affect it",
				zap.String("file", m))
			return m
		}
	}
	return ""
}

// Rewrite places the scale directive and rescales eyeball lines. The
// returned text uses the input's newline convention throughout.
func (r *Rewriter) Rewrite(text string, f scale.Factors) (string, *Report, error) {
	ending := textscan.DetectLineEnding(text)
	lines := textscan.SplitLines(text)
	report := &Report{}

	// One streaming pass computes, per line, whether recognizers may
	// fire and where its uncommented content sits.
	active := make([]bool, len(lines))
	content := make([]string, len(lines))
	spans := make([][]textscan.Span, len(lines))
	tracker := textscan.NewCommentTracker()
	for i, line := range lines {
		wasInside := tracker.InsideBlock()
		spans[i] = tracker.ActiveSpans(line)
		content[i] = textscan.Text(line, spans[i])
		active[i] = !wasInside && !strings.HasPrefix(strings.TrimSpace(line), "//")
	}

	directiveValue := numfmt.FormatScale(f.New)
	for i, line := range lines {
		if !active[i] {
			continue
		}
		// The directive is recognized in the stripped view so its view of
		// commented-out script agrees with PreviousScale; the new value is
		// spliced into the raw line to keep comment text intact.
		if loc := r.directive.FindStringSubmatchIndex(content[i]); loc != nil && !report.DirectiveReplaced {
			start := rawOffset(spans[i], loc[4], false)
			end := rawOffset(spans[i], loc[5], true)
			lines[i] = line[:start] + directiveValue + line[end:]
			report.DirectiveReplaced = true
			r.log.Info("replaced scale directive", zap.Int("line", i+1), zap.String("value", directiveValue))
			continue
		}
		rewritten, change, err := r.rewriteEyeball(line, f.Relative)
		if err != nil {
			return "", nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if change != nil {
			change.Line = i + 1
			lines[i] = rewritten
			report.Eyeballs = append(report.Eyeballs, *change)
		}
	}

	if !report.DirectiveReplaced {
		lines = r.insertDirective(lines, active, content, directiveValue)
		report.DirectiveInserted = true
	}

	return textscan.JoinLines(lines, ending), report, nil
}

// rawOffset maps an offset in the comment-stripped view of a line back
// to its raw-line offset. end selects which side of the boundary wins
// when the offset falls exactly between two live spans.
func rawOffset(spans []textscan.Span, off int, end bool) int {
	for _, s := range spans {
		n := s.End - s.Start
		if off < n || (end && off == n) {
			return s.Start + off
		}
		off -= n
	}
	if len(spans) > 0 {
		return spans[len(spans)-1].End
	}
	return 0
}

// insertDirective places a fresh directive immediately above the first
// line of live script. A blank line directly above that point is spent on
// the directive instead of pushing everything down; a file that is all
// comments gets the directive at line one.
func (r *Rewriter) insertDirective(lines []string, active []bool, content []string, value string) []string {
	directive := r.cfg.QC.ScaleKeyword + " " + value

	first := -1
	for i := range lines {
		if active[i] && strings.TrimSpace(content[i]) != "" {
			first = i
			break
		}
	}

	switch {
	case first < 0:
		out := make([]string, 0, len(lines)+1)
		out = append(out, directive)
		return append(out, lines...)
	case first > 0 && strings.TrimSpace(lines[first-1]) == "":
		lines[first-1] = directive
		return lines
	default:
		out := make([]string, 0, len(lines)+1)
		out = append(out, lines[:first]...)
		out = append(out, directive)
		return append(out, lines[first:]...)
	}
}

// rewriteEyeball rescales one eyeball line, or returns a nil change when
// the line is not eyeball-shaped. Position and the two size fields scale;
// the angle is a rotation and never does. Output precision is pinned
// rather than source-derived: eye geometry tolerates the rounding.
func (r *Rewriter) rewriteEyeball(line string, relative float64) (string, *EyeballChange, error) {
	m := r.eyeball.FindStringSubmatch(line)
	if m == nil {
		return line, nil, nil
	}

	decimals := r.cfg.QC.EyeballDecimals
	scaled := make(map[int]string, 5)
	for _, idx := range []int{6, 8, 10, 14, 20} { // x, y, z, diameter, iris scale
		v, err := numfmt.ScaleFixed(m[idx], relative, decimals)
		if err != nil {
			return "", nil, fmt.Errorf("eyeball field %q: %w", m[idx], err)
		}
		scaled[idx] = v
	}

	var b strings.Builder
	for idx := 1; idx < len(m); idx++ {
		if v, ok := scaled[idx]; ok {
			b.WriteString(v)
			continue
		}
		b.WriteString(m[idx])
	}
	out := strings.TrimRight(b.String(), " \t")

	return out, &EyeballChange{
		Name:   m[2],
		Before: strings.TrimRight(line, " \t"),
		After:  out,
	}, nil
}
