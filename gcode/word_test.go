package gcode

import (
	"testing"

	"github.com/mastercactapus/drawbot/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWord_String(t *testing.T) {
	assert.Equal(t, "G1", Word{W: 'G', Arg: 1}.String())
	assert.Equal(t, "X10.5", Word{W: 'X', Arg: 10.5}.String())
	assert.Equal(t, "Z-5", Word{W: 'Z', Arg: -5}.String())
	assert.Equal(t, "Y0.1", Word{W: 'Y', Arg: 0.1}.String())
}

func TestBlock_String(t *testing.T) {
	b := Block{{W: 'G', Arg: 0}, {W: 'X', Arg: 1}, {W: 'Y', Arg: 2}}
	assert.Equal(t, "G0 X1 Y2", b.String())
}

func TestPositionWords(t *testing.T) {
	_, err := PositionWords(coord.Vec3{})
	assert.ErrorIs(t, err, ErrIncompletePosition)

	cases := map[string]coord.Vec3{
		"X1":          {X: coord.Axis(1)},
		"Y2":          {Y: coord.Axis(2)},
		"Z3":          {Z: coord.Axis(3)},
		"X1 Z3":       {X: coord.Axis(1), Z: coord.Axis(3)},
		"X1 Y2.25 Z3": coord.XYZ(1, 2.25, 3),
	}
	for expected, p := range cases {
		s, err := PositionWords(p)
		require.NoError(t, err)
		assert.Equal(t, expected, s)
	}
}
