package gcode

import (
	"testing"

	"github.com/mastercactapus/drawbot/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countOps(ops []Operation) (activate, deactivate int) {
	for _, op := range ops {
		switch op.(type) {
		case Activate:
			activate++
		case Deactivate:
			deactivate++
		}
	}
	return activate, deactivate
}

func TestTranslate_Square(t *testing.T) {
	movements := []Movement{
		{Dest: coord.Vec2D{X: 0, Y: 0}},
		{Dest: coord.Vec2D{X: 10, Y: 0}, PenDown: true},
		{Dest: coord.Vec2D{X: 10, Y: 10}, PenDown: true},
		{Dest: coord.Vec2D{X: 0, Y: 0}},
	}

	ops, final, err := Translate(movements, Absolute)
	require.NoError(t, err)
	assert.Equal(t, []Operation{
		LinearMove{Target: coord.XY(0, 0)},
		Activate{},
		LinearDraw{Target: coord.XY(10, 0)},
		LinearDraw{Target: coord.XY(10, 10)},
		Deactivate{},
		LinearMove{Target: coord.XY(0, 0)},
	}, ops)
	assert.True(t, final.Equal(coord.XY(0, 0)))

	a, d := countOps(ops)
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, d)
}

func TestTranslate_LongRun(t *testing.T) {
	var movements []Movement
	for run := 0; run < 3; run++ {
		movements = append(movements, Movement{Dest: coord.Vec2D{X: float32(run)}})
		for i := 0; i < 20; i++ {
			movements = append(movements, Movement{Dest: coord.Vec2D{X: float32(run), Y: float32(i)}, PenDown: true})
		}
	}

	ops, _, err := Translate(movements, Absolute)
	require.NoError(t, err)
	a, d := countOps(ops)
	assert.Equal(t, 3, a)
	assert.Equal(t, 2, d)
}

func TestTranslate_Relative(t *testing.T) {
	movements := []Movement{
		{Dest: coord.Vec2D{X: 5, Y: 5}},
		{Dest: coord.Vec2D{X: 5, Y: 0}, PenDown: true},
		{Dest: coord.Vec2D{X: -2, Y: 1}, PenDown: true},
	}
	ops, final, err := Translate(movements, Relative)
	require.NoError(t, err)
	assert.Equal(t, []Operation{
		LinearMove{Target: coord.XY(5, 5)},
		Activate{},
		LinearDraw{Target: coord.XY(10, 5)},
		LinearDraw{Target: coord.XY(8, 6)},
	}, ops)
	assert.True(t, final.Equal(coord.XY(8, 6)))
}

func TestTranslate_Empty(t *testing.T) {
	ops, final, err := Translate(nil, Absolute)
	require.NoError(t, err)
	assert.Empty(t, ops)
	assert.True(t, final.Equal(coord.XY(0, 0)))
}
