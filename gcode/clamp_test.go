package gcode

import (
	"testing"

	"github.com/mastercactapus/drawbot/coord"
	"github.com/stretchr/testify/assert"
)

func TestClampMovements_Absolute(t *testing.T) {
	bed := coord.Vec2D{X: 100, Y: 100}
	res := ClampMovements([]Movement{
		{Dest: coord.Vec2D{X: 150, Y: 50}, PenDown: true},
		{Dest: coord.Vec2D{X: -1, Y: 200}},
		{Dest: coord.Vec2D{X: 20, Y: 30}},
	}, bed, Absolute)

	assert.Equal(t, []Movement{
		{Dest: coord.Vec2D{X: 100, Y: 50}, PenDown: true},
		{Dest: coord.Vec2D{X: 0, Y: 100}},
		{Dest: coord.Vec2D{X: 20, Y: 30}},
	}, res)
}

func TestClampMovements_Relative(t *testing.T) {
	bed := coord.Vec2D{X: 100, Y: 100}
	res := ClampMovements([]Movement{
		{Dest: coord.Vec2D{X: 150, Y: 50}},
		// from the clamped (100,50), not (150,50)
		{Dest: coord.Vec2D{X: -10, Y: 10}},
		{Dest: coord.Vec2D{X: 0, Y: 100}},
	}, bed, Relative)

	assert.Equal(t, []Movement{
		{Dest: coord.Vec2D{X: 100, Y: 50}},
		{Dest: coord.Vec2D{X: -10, Y: 10}},
		{Dest: coord.Vec2D{X: 0, Y: 40}},
	}, res)

	ops, final, err := Translate(res, Relative)
	assert.NoError(t, err)
	assert.Len(t, ops, 3)
	assert.True(t, final.Equal(coord.XY(90, 100)))
}

func TestClampMovements_DoesNotModifyInput(t *testing.T) {
	in := []Movement{{Dest: coord.Vec2D{X: 500, Y: 500}}}
	ClampMovements(in, coord.Vec2D{X: 10, Y: 10}, Absolute)
	assert.Equal(t, coord.Vec2D{X: 500, Y: 500}, in[0].Dest)
}
