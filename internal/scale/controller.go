// Package scale resolves the previous model scale from QC text and
// validates a requested new scale before either rewriter runs.
package scale

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Blaco/qc-scale-tool/internal/config"
	"github.com/Blaco/qc-scale-tool/internal/numfmt"
	"github.com/Blaco/qc-scale-tool/internal/textscan"
)

// Validation failures that a prompt loop recovers from by re-prompting.
var (
	ErrNotANumber = errors.New("scale is not a number")
	ErrNearZero   = errors.New("scale is too close to zero")
	ErrUnchanged  = errors.New("scale matches the current value")
)

// Factors is the resolved scaling input for both rewriters.
type Factors struct {
	Previous float64 // scale currently in the QC file, 1.0 when absent
	New      float64 // requested absolute scale
	Relative float64 // New / Previous, applied to eyeball fields only
	Advisory bool    // |New| under the rounding-risk threshold
}

// Controller resolves and validates scale factors.
type Controller struct {
	cfg       config.Config
	log       *zap.Logger
	directive *regexp.Regexp
}

// NewController builds a controller whose directive recognizer is derived
// from the configured scale keyword.
func NewController(cfg config.Config, log *zap.Logger) *Controller {
	pat := `^\s*` + regexp.QuoteMeta(cfg.QC.ScaleKeyword) + `\s+([-+]?[0-9]*\.?[0-9]+)\s*$`
	return &Controller{
		cfg:       cfg,
		log:       log,
		directive: regexp.MustCompile(pat),
	}
}

// PreviousScale reads the scale directive out of QC text, skipping
// commented regions. Absent or malformed directives resolve to 1.0.
func (c *Controller) PreviousScale(qcText string) float64 {
	tracker := textscan.NewCommentTracker()
	for _, line := range textscan.SplitLines(qcText) {
		active := tracker.Active(line)
		m := c.directive.FindStringSubmatch(strings.TrimRight(active, " \t"))
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v == 0 {
			c.log.Warn("malformed scale directive, assuming 1.0", zap.String("line", line))
			return 1.0
		}
		c.log.Debug("found existing scale directive", zap.Float64("scale", v))
		return v
	}
	return 1.0
}

// Parse validates raw user input against the previous scale and returns
// the resolved factors. Failures are the recoverable prompt errors above.
func (c *Controller) Parse(input string, previous float64) (Factors, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return Factors{}, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}
	return c.Resolve(v, previous)
}

// Resolve validates an already-parsed new scale against the previous one.
func (c *Controller) Resolve(newScale, previous float64) (Factors, error) {
	if math.Abs(newScale) < c.cfg.Limits.MinScale {
		return Factors{}, fmt.Errorf("%w: |%v| < %v", ErrNearZero, newScale, c.cfg.Limits.MinScale)
	}
	if math.Abs(newScale-previous) < c.cfg.Limits.MinDelta {
		return Factors{}, fmt.Errorf("%w: %v", ErrUnchanged, newScale)
	}

	f := Factors{
		Previous: previous,
		New:      newScale,
		Relative: newScale / previous,
		Advisory: math.Abs(newScale) < c.cfg.Limits.RoundingAdvise,
	}
	if f.Advisory {
		c.log.Warn("very small scale may introduce rounding artifacts",
			zap.Float64("scale", newScale),
			zap.Float64("threshold", c.cfg.Limits.RoundingAdvise))
	}
	return f, nil
}

// DisplayFactor renders the relative factor for reporting, rounded to at
// most three fractional digits with trailing zeros dropped.
func (f Factors) DisplayFactor() string {
	rounded := math.Round(f.Relative*1000) / 1000
	return numfmt.FormatScale(rounded)
}

// DisplayNewScale renders the absolute new scale the way it appears in
// directives and the modelname suffix.
func (f Factors) DisplayNewScale() string {
	return numfmt.FormatScale(f.New)
}
