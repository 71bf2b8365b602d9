package vrdfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Blaco/qc-scale-tool/internal/numfmt"
)

// Triple is one normalized coordinate, stored as the decimal strings that
// will be rescaled and re-emitted. String storage keeps the authored
// precision through any number of runs.
type Triple struct {
	X, Y, Z string
}

// Zero reports whether the triple is exactly zero in every axis.
func (t Triple) Zero() bool {
	for _, v := range []string{t.X, t.Y, t.Z} {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || f != 0 {
			return false
		}
	}
	return true
}

type trigRecord struct {
	helper string
	index  int
	value  Triple
}

// BaselineStore maps each helper to its normalized rest position and its
// ordered translation sequence. The sequence order is load-bearing: it is
// how regenerated values find their way back to the right source line.
type BaselineStore struct {
	rest      map[string]Triple
	restOrder []string
	trig      map[string][]Triple
	trigSeq   []trigRecord
}

// NewBaselineStore returns an empty store.
func NewBaselineStore() *BaselineStore {
	return &BaselineStore{
		rest: make(map[string]Triple),
		trig: make(map[string][]Triple),
	}
}

// SetRest records a helper's normalized rest position. A helper has one
// meaningful rest position; later entries overwrite, keeping the first
// capture's ordering slot.
func (s *BaselineStore) SetRest(helper string, t Triple) {
	if _, seen := s.rest[helper]; !seen {
		s.restOrder = append(s.restOrder, helper)
	}
	s.rest[helper] = t
}

// AppendTrigger appends to a helper's ordered translation sequence.
func (s *BaselineStore) AppendTrigger(helper string, t Triple) {
	s.trigSeq = append(s.trigSeq, trigRecord{
		helper: helper,
		index:  len(s.trig[helper]),
		value:  t,
	})
	s.trig[helper] = append(s.trig[helper], t)
}

// Rest returns a helper's rest baseline.
func (s *BaselineStore) Rest(helper string) (Triple, bool) {
	t, ok := s.rest[helper]
	return t, ok
}

// Triggers returns a helper's translation sequence, nil when the helper
// has none.
func (s *BaselineStore) Triggers(helper string) []Triple {
	return s.trig[helper]
}

// HasRest reports whether at least one rest position was captured; the
// marker block is only ever written when this holds.
func (s *BaselineStore) HasRest() bool {
	return len(s.rest) > 0
}

// normalize divides one scaled literal back to implicit scale 1,
// preserving its decimal width. The column-space convention is stripped;
// marker records carry plain signed values.
func normalize(literal string, previousScale float64) (string, error) {
	v, err := numfmt.Scale(literal, 1/previousScale)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

// LoadBaseline reconstructs a store from the marker block's comment
// lines. Marker values are ground truth; live numbers in the file are
// never consulted once a marker block exists.
func LoadBaseline(lines []string, c *Classifier) *BaselineStore {
	s := NewBaselineStore()
	for _, line := range lines {
		switch cl := c.Classify(line); cl.Kind {
		case KindMarkerBasePos:
			s.SetRest(cl.Marker.Helper, Triple{cl.Marker.X, cl.Marker.Y, cl.Marker.Z})
		case KindMarkerTrigger:
			// Records were written in capture order, so append order
			// reproduces each helper's sequence.
			s.AppendTrigger(cl.Marker.Helper, Triple{cl.Marker.X, cl.Marker.Y, cl.Marker.Z})
		}
	}
	return s
}

// MarkerBlock serializes the store as the comment block appended to the
// VRD on the run that first establishes a baseline. The block is written
// exactly once and copied verbatim forever after.
func (s *BaselineStore) MarkerBlock(sentinelTag string) []string {
	block := []string{
		"",
		fmt.Sprintf("// %s baseline -- do not edit or remove this block", sentinelTag),
		"// Normalized helper offsets captured at first scale run; live values above are derived from these.",
	}
	for _, helper := range s.restOrder {
		t := s.rest[helper]
		block = append(block, fmt.Sprintf("// %s basepos %s %s %s %s", sentinelTag, helper, t.X, t.Y, t.Z))
	}
	if len(s.trigSeq) > 0 {
		block = append(block, "")
		for _, rec := range s.trigSeq {
			block = append(block, fmt.Sprintf("// %s trigger %s %d %s %s %s",
				sentinelTag, rec.helper, rec.index, rec.value.X, rec.value.Y, rec.value.Z))
		}
	}
	return block
}
