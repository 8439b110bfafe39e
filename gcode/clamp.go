package gcode

import "github.com/mastercactapus/drawbot/coord"

func clamp(v, max float32) float32 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// ClampMovements bounds every destination to the bed, [0,bed.X] by [0,bed.Y].
//
// In Relative mode each emitted delta is measured from the previous
// clamped position, so later movements stay relative to where the
// machine actually is.
func ClampMovements(movements []Movement, bed coord.Vec2D, mode Position) []Movement {
	res := make([]Movement, len(movements))
	var pos coord.Vec2D
	for i, m := range movements {
		dest := m.Dest
		if mode == Relative {
			dest = pos.Add(dest)
		}
		dest = coord.Vec2D{X: clamp(dest.X, bed.X), Y: clamp(dest.Y, bed.Y)}

		res[i] = m
		if mode == Relative {
			res[i].Dest = dest.Sub(pos)
		} else {
			res[i].Dest = dest
		}
		pos = dest
	}
	return res
}
