package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	lines, err := Parse(`
; header comment
g21
G90 (absolute)
G1X10 y-2.5 ; draw
$H

G28 X Y
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"G21", "G90", "G1 X10 Y-2.5", "$H", "G28 X Y"}, lines)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("G1 X10\n#5=3\n")
	assert.Error(t, err)
}

func TestParse_RoundTrip(t *testing.T) {
	lines, err := Program(nil, GRBL)
	require.NoError(t, err)

	var data string
	for _, ln := range lines {
		data += ln + "\n"
	}
	assert.Equal(t, lines, MustParse(data))
}
