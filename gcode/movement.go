package gcode

import (
	"fmt"

	"github.com/mastercactapus/drawbot/coord"
)

// Movement is one segment of a drawing path.
type Movement struct {
	Dest    coord.Vec2D `json:"dest"`
	PenDown bool        `json:"pen_down"`
}

// Translate converts movements into operations, inserting an Activate or
// Deactivate only when the pen state changes.
//
// Destinations are interpreted according to mode, starting from the origin
// with the pen up. The final absolute position is returned for chaining.
func Translate(movements []Movement, mode Position) ([]Operation, coord.Vec3, error) {
	var active bool
	pos := coord.XY(0, 0)

	ops := make([]Operation, 0, len(movements)+2)
	for i, m := range movements {
		dest := m.Dest.Vec3()
		if mode == Relative {
			var err error
			dest, err = pos.Add(dest)
			if err != nil {
				return nil, pos, fmt.Errorf("movement %d: %w", i, err)
			}
		}

		switch {
		case active && m.PenDown:
			ops = append(ops, LinearDraw{Target: dest})
		case active && !m.PenDown:
			ops = append(ops, Deactivate{}, LinearMove{Target: dest})
			active = false
		case !active && m.PenDown:
			ops = append(ops, Activate{}, LinearDraw{Target: dest})
			active = true
		default:
			ops = append(ops, LinearMove{Target: dest})
		}

		pos = dest
	}

	return ops, pos, nil
}
