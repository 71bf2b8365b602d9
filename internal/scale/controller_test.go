package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Blaco/qc-scale-tool/internal/config"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	return NewController(config.Default(), zap.NewNop())
}

func TestPreviousScale(t *testing.T) {
	c := newController(t)

	t.Run("absent defaults to 1", func(t *testing.T) {
		assert.Equal(t, 1.0, c.PreviousScale("$modelname \"a.mdl\"\n"))
	})

	t.Run("reads existing directive", func(t *testing.T) {
		assert.Equal(t, 0.5, c.PreviousScale("// header\n$scale 0.5\n$body b \"ref\"\n"))
	})

	t.Run("negative scale", func(t *testing.T) {
		assert.Equal(t, -2.0, c.PreviousScale("$scale -2\n"))
	})

	t.Run("commented directive ignored", func(t *testing.T) {
		assert.Equal(t, 1.0, c.PreviousScale("// $scale 4\n/*\n$scale 8\n*/\n"))
	})

	t.Run("trailing comment tolerated", func(t *testing.T) {
		assert.Equal(t, 3.0, c.PreviousScale("$scale 3 // set by hand\n"))
	})
}

func TestParse(t *testing.T) {
	c := newController(t)

	t.Run("valid", func(t *testing.T) {
		f, err := c.Parse("2", 1.0)
		require.NoError(t, err)
		assert.Equal(t, 2.0, f.New)
		assert.Equal(t, 2.0, f.Relative)
		assert.False(t, f.Advisory)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := c.Parse("big", 1.0)
		assert.ErrorIs(t, err, ErrNotANumber)
	})

	t.Run("near zero", func(t *testing.T) {
		_, err := c.Parse("0.0004", 1.0)
		assert.ErrorIs(t, err, ErrNearZero)
	})

	t.Run("unchanged", func(t *testing.T) {
		_, err := c.Parse("1.0004", 1.0)
		assert.ErrorIs(t, err, ErrUnchanged)
	})

	t.Run("small but legal scale flags advisory", func(t *testing.T) {
		f, err := c.Parse("0.01", 1.0)
		require.NoError(t, err)
		assert.True(t, f.Advisory)
	})
}

func TestResolve_RelativeFactor(t *testing.T) {
	c := newController(t)
	f, err := c.Resolve(3, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 6.0, f.Relative)
}

func TestDisplayFactor(t *testing.T) {
	f := Factors{Relative: 2.0}
	assert.Equal(t, "2", f.DisplayFactor())

	f = Factors{Relative: 1.0 / 3.0}
	assert.Equal(t, "0.333", f.DisplayFactor())

	f = Factors{Relative: 2.5}
	assert.Equal(t, "2.5", f.DisplayFactor())
}
