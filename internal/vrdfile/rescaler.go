package vrdfile

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Blaco/qc-scale-tool/internal/config"
	"github.com/Blaco/qc-scale-tool/internal/numfmt"
	"github.com/Blaco/qc-scale-tool/internal/textscan"
)

// ErrMarkerDesync means the live translation lines no longer line up with
// the marker block, which can only happen when the file was hand-edited
// after the block was written. The VRD pass stops; deleting the marker
// block and re-running re-captures a fresh baseline.
var ErrMarkerDesync = errors.New("marker block does not match file content")

// Report summarizes one rescale pass.
type Report struct {
	FirstRun        bool    // no marker block existed before this run
	BasePosCount    int     // rest-position lines rewritten
	TriggerCount    int     // translation lines rewritten
	TriggerNonZero  int     // of those, entries with any non-zero axis
	AppliedScale    float64 // absolute scale the output now reflects
	NoBasePos       bool    // likely not a helper-offset file
	AllTriggersZero bool    // translations exist but carry no offsets
}

// Rescaler rewrites a VRD from its normalized baseline.
type Rescaler struct {
	cfg config.Config
	log *zap.Logger
	cls *Classifier
}

// NewRescaler builds a rescaler with recognizers for the configured tags.
func NewRescaler(cfg config.Config, log *zap.Logger) *Rescaler {
	return &Rescaler{cfg: cfg, log: log, cls: NewClassifier(cfg)}
}

// Rescale rewrites the VRD text to the new absolute scale.
//
// First run (no sentinel present): every rest-position and translation
// line is normalized by previousScale and captured into a fresh baseline,
// and the marker block is appended after the rewrite when at least one
// rest position was found. Subsequent runs load the baseline straight
// from the marker block and ignore the live numbers entirely, so repeated
// rescaling never compounds.
func (r *Rescaler) Rescale(text string, previousScale, newScale float64) (string, *Report, error) {
	ending := textscan.DetectLineEnding(text)
	lines := textscan.SplitLines(text)

	firstRun := true
	for _, line := range lines {
		if r.cls.Classify(line).Kind == KindMarkerSentinel {
			firstRun = false
			break
		}
	}

	var store *BaselineStore
	if firstRun {
		var err error
		store, err = r.capture(lines, previousScale)
		if err != nil {
			return "", nil, err
		}
		r.log.Info("no marker block found, captured baseline",
			zap.Int("helpers", len(store.restOrder)),
			zap.Float64("assumed_scale", previousScale))
	} else {
		store = LoadBaseline(lines, r.cls)
		r.log.Info("marker block found, loaded baseline",
			zap.Int("helpers", len(store.restOrder)))
	}

	report := &Report{FirstRun: firstRun, AppliedScale: newScale}
	out, err := r.rewrite(lines, store, newScale, report)
	if err != nil {
		return "", nil, err
	}

	if firstRun && store.HasRest() {
		out = append(out, store.MarkerBlock(r.cfg.VRD.SentinelTag)...)
	}

	report.NoBasePos = report.BasePosCount == 0
	report.AllTriggersZero = report.TriggerCount > 0 && report.TriggerNonZero == 0
	if report.NoBasePos {
		r.log.Warn("no rest-position lines matched; this does not look like a helper-offset file")
	}
	if report.AllTriggersZero {
		r.log.Info("all trigger translations are zero; rotations are unaffected by uniform scale")
	}

	return textscan.JoinLines(out, ending), report, nil
}

// capture builds the baseline from live content, dividing every value by
// the scale assumed to have been in effect when the file was authored.
func (r *Rescaler) capture(lines []string, previousScale float64) (*BaselineStore, error) {
	store := NewBaselineStore()
	helper := ""
	for i, line := range lines {
		switch cl := r.cls.Classify(line); cl.Kind {
		case KindHelper:
			helper = cl.Helper
		case KindBasePos:
			if helper == "" {
				continue
			}
			t, err := normalizeTriple(cl.Triple, previousScale)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			store.SetRest(helper, t)
		case KindTrigger:
			if helper == "" {
				continue
			}
			t, err := normalizeTriple(cl.Triple, previousScale)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			store.AppendTrigger(helper, t)
		}
	}
	return store, nil
}

func normalizeTriple(c *TripleCapture, previousScale float64) (Triple, error) {
	var t Triple
	for _, p := range []struct {
		in  string
		out *string
	}{{c.X, &t.X}, {c.Y, &t.Y}, {c.Z, &t.Z}} {
		v, err := normalize(p.in, previousScale)
		if err != nil {
			return Triple{}, err
		}
		*p.out = v
	}
	return t, nil
}

// rewrite re-emits every helper offset as baseline times the new absolute
// scale. Translation baselines are consumed positionally per helper: the
// nth trigger line of a helper takes the nth stored entry.
func (r *Rescaler) rewrite(lines []string, store *BaselineStore, newScale float64, report *Report) ([]string, error) {
	out := make([]string, 0, len(lines))
	helper := ""
	consumed := make(map[string]int)

	for i, line := range lines {
		cl := r.cls.Classify(line)
		switch cl.Kind {
		case KindHelper:
			helper = cl.Helper

		case KindBasePos:
			baseline, ok := store.Rest(helper)
			if helper == "" || !ok {
				break
			}
			rebuilt, err := rebuildTriple(cl.Triple, baseline, newScale)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			line = rebuilt
			report.BasePosCount++

		case KindTrigger:
			seq := store.Triggers(helper)
			if helper == "" || seq == nil {
				break
			}
			idx := consumed[helper]
			if idx >= len(seq) {
				return nil, fmt.Errorf("helper %q line %d: %d translation entries recorded, more present in file: %w",
					helper, i+1, len(seq), ErrMarkerDesync)
			}
			consumed[helper] = idx + 1
			rebuilt, err := rebuildTriple(cl.Triple, seq[idx], newScale)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			line = rebuilt
			report.TriggerCount++
			if !seq[idx].Zero() {
				report.TriggerNonZero++
			}
		}
		out = append(out, line)
	}
	return out, nil
}

// rebuildTriple re-emits a live line around the scaled baseline, keeping
// the line's own leading and trailing fragments and separators so the
// authored column layout survives.
func rebuildTriple(c *TripleCapture, baseline Triple, newScale float64) (string, error) {
	x, err := numfmt.Scale(baseline.X, newScale)
	if err != nil {
		return "", err
	}
	y, err := numfmt.Scale(baseline.Y, newScale)
	if err != nil {
		return "", err
	}
	z, err := numfmt.Scale(baseline.Z, newScale)
	if err != nil {
		return "", err
	}
	rebuilt := c.Prefix + x + c.Sep1 + y + c.Sep2 + z + c.Suffix
	return strings.TrimRight(rebuilt, " \t"), nil
}
