// Package vrdfile rescales the procedural helper-bone definition file.
// The VRD has no notion of its own scale: every number in it is whatever
// the compiler scale happened to be when it was authored. The rescaler
// therefore keeps a normalized baseline for every helper inside the file
// itself, as a comment-encoded marker block, and re-derives the live
// numbers from baseline times the requested absolute scale on every run.
package vrdfile

import (
	"regexp"
	"strconv"

	"github.com/Blaco/qc-scale-tool/internal/config"
)

// Kind tags the recognized VRD line shapes. Marker shapes are tested
// before live shapes so a marker line can never be rescaled or recounted.
type Kind int

const (
	KindOther Kind = iota
	KindComment
	KindHelper
	KindBasePos
	KindTrigger
	KindMarkerSentinel
	KindMarkerBasePos
	KindMarkerTrigger
)

// decimal literals; trigger translations may arrive in exponential
// notation from tools that emit raw floats.
const (
	plainNum = `[-+]?[0-9]*\.?[0-9]+`
	expNum   = plainNum + `(?:[eE][-+]?[0-9]+)?`
)

// TripleCapture is a recognized coordinate triple with the surrounding
// text fragments kept so the line can be rebuilt around new values.
type TripleCapture struct {
	Prefix string
	X      string
	Sep1   string
	Y      string
	Sep2   string
	Z      string
	Suffix string
}

// MarkerCapture is a parsed normalization record from the marker block.
type MarkerCapture struct {
	Helper string
	Index  int // trigger records only, zero-based
	X      string
	Y      string
	Z      string
}

// Classified is the typed result of recognizing one line.
type Classified struct {
	Kind   Kind
	Helper string         // KindHelper
	Triple *TripleCapture // KindBasePos, KindTrigger
	Marker *MarkerCapture // KindMarkerBasePos, KindMarkerTrigger
}

// Classifier holds the VRD line recognizers compiled from configuration.
type Classifier struct {
	helper     *regexp.Regexp
	basePos    *regexp.Regexp
	trigger    *regexp.Regexp
	sentinel   *regexp.Regexp
	markerBase *regexp.Regexp
	markerTrig *regexp.Regexp
	comment    *regexp.Regexp
}

// NewClassifier compiles recognizers for the configured tags.
func NewClassifier(cfg config.Config) *Classifier {
	helper := regexp.QuoteMeta(cfg.VRD.HelperTag)
	basePos := regexp.QuoteMeta(cfg.VRD.BasePosTag)
	trigger := regexp.QuoteMeta(cfg.VRD.TriggerTag)
	sentinel := regexp.QuoteMeta(cfg.VRD.SentinelTag)

	return &Classifier{
		helper:  regexp.MustCompile(`^\s*` + helper + `\s+(\S+)`),
		basePos: regexp.MustCompile(`^(.*?` + basePos + `\s+)(` + plainNum + `)(\s+)(` + plainNum + `)(\s+)(` + plainNum + `)(.*)$`),
		// The translation triple is the final three numbers of the line;
		// the greedy prefix must end on whitespace so a literal can never
		// be split in the middle.
		trigger: regexp.MustCompile(`^(\s*` + trigger + `\s+(?:.*\s)?)(` + expNum + `)(\s+)(` + expNum + `)(\s+)(` + expNum + `)(\s*)$`),

		sentinel:   regexp.MustCompile(`^\s*//\s*` + sentinel + `\s+baseline\b`),
		markerBase: regexp.MustCompile(`^\s*//\s*` + sentinel + `\s+basepos\s+(\S+)\s+(` + expNum + `)\s+(` + expNum + `)\s+(` + expNum + `)\s*$`),
		markerTrig: regexp.MustCompile(`^\s*//\s*` + sentinel + `\s+trigger\s+(\S+)\s+([0-9]+)\s+(` + expNum + `)\s+(` + expNum + `)\s+(` + expNum + `)\s*$`),
		comment:    regexp.MustCompile(`^\s*//`),
	}
}

// Classify recognizes one line. Marker shapes win over live shapes, and
// any comment that is not a marker is inert.
func (c *Classifier) Classify(line string) Classified {
	if c.sentinel.MatchString(line) {
		return Classified{Kind: KindMarkerSentinel}
	}
	if m := c.markerBase.FindStringSubmatch(line); m != nil {
		return Classified{Kind: KindMarkerBasePos, Marker: &MarkerCapture{
			Helper: m[1], X: m[2], Y: m[3], Z: m[4],
		}}
	}
	if m := c.markerTrig.FindStringSubmatch(line); m != nil {
		idx, _ := strconv.Atoi(m[2])
		return Classified{Kind: KindMarkerTrigger, Marker: &MarkerCapture{
			Helper: m[1], Index: idx, X: m[3], Y: m[4], Z: m[5],
		}}
	}
	if c.comment.MatchString(line) {
		return Classified{Kind: KindComment}
	}
	if m := c.helper.FindStringSubmatch(line); m != nil {
		return Classified{Kind: KindHelper, Helper: m[1]}
	}
	if m := c.basePos.FindStringSubmatch(line); m != nil {
		return Classified{Kind: KindBasePos, Triple: captureTriple(m)}
	}
	if m := c.trigger.FindStringSubmatch(line); m != nil {
		return Classified{Kind: KindTrigger, Triple: captureTriple(m)}
	}
	return Classified{Kind: KindOther}
}

func captureTriple(m []string) *TripleCapture {
	return &TripleCapture{
		Prefix: m[1],
		X:      m[2],
		Sep1:   m[3],
		Y:      m[4],
		Sep2:   m[5],
		Z:      m[6],
		Suffix: m[7],
	}
}
