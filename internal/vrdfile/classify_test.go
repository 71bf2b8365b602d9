package vrdfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blaco/qc-scale-tool/internal/config"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(config.Default())

	t.Run("helper", func(t *testing.T) {
		cl := c.Classify("<helper> wrist_L forearm upperarm hand")
		assert.Equal(t, KindHelper, cl.Kind)
		assert.Equal(t, "wrist_L", cl.Helper)
	})

	t.Run("basepos keeps fragments", func(t *testing.T) {
		cl := c.Classify("<basepos> 1.296822 -2.077447  0.142106")
		require.Equal(t, KindBasePos, cl.Kind)
		want := &TripleCapture{
			Prefix: "<basepos> ",
			X:      "1.296822", Sep1: " ",
			Y: "-2.077447", Sep2: "  ",
			Z: "0.142106", Suffix: "",
		}
		if diff := cmp.Diff(want, cl.Triple); diff != "" {
			t.Errorf("capture mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("trigger takes the final three numbers", func(t *testing.T) {
		cl := c.Classify("<trigger> 90 -85.41 33.44 -44.32 1.00 2.00 3.00")
		require.Equal(t, KindTrigger, cl.Kind)
		assert.Equal(t, "<trigger> 90 -85.41 33.44 -44.32 ", cl.Triple.Prefix)
		assert.Equal(t, "1.00", cl.Triple.X)
		assert.Equal(t, "2.00", cl.Triple.Y)
		assert.Equal(t, "3.00", cl.Triple.Z)
	})

	t.Run("trigger exponential notation", func(t *testing.T) {
		cl := c.Classify("<trigger> 90 0 0 0 1.5e-2 0.0 2E3")
		require.Equal(t, KindTrigger, cl.Kind)
		assert.Equal(t, "1.5e-2", cl.Triple.X)
		assert.Equal(t, "2E3", cl.Triple.Z)
	})

	t.Run("marker shapes win over live shapes", func(t *testing.T) {
		assert.Equal(t, KindMarkerSentinel,
			c.Classify("// !qcscale baseline -- do not edit or remove this block").Kind)

		cl := c.Classify("// !qcscale basepos wrist_L 3.00 0.00 6.00")
		require.Equal(t, KindMarkerBasePos, cl.Kind)
		assert.Equal(t, "wrist_L", cl.Marker.Helper)
		assert.Equal(t, "3.00", cl.Marker.X)

		cl = c.Classify("// !qcscale trigger wrist_L 2 0.00 0.00 1.50")
		require.Equal(t, KindMarkerTrigger, cl.Kind)
		assert.Equal(t, 2, cl.Marker.Index)
		assert.Equal(t, "1.50", cl.Marker.Z)
	})

	t.Run("plain comment", func(t *testing.T) {
		assert.Equal(t, KindComment, c.Classify("// <basepos> 1 2 3").Kind)
	})

	t.Run("unrecognized", func(t *testing.T) {
		assert.Equal(t, KindOther, c.Classify("<display> 0 10 90").Kind)
		assert.Equal(t, KindOther, c.Classify("").Kind)
	})
}
