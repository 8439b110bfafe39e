package gcode

import (
	"errors"
	"fmt"

	"github.com/mastercactapus/drawbot/coord"
)

// ErrNoProgramTemplate is returned when a flavor has no preamble or footer defined.
var ErrNoProgramTemplate = errors.New("no program template for flavor")

// Preamble returns the operations that start every program for f.
func Preamble(f Flavor) ([]Operation, error) {
	switch f {
	case GRBL:
		return []Operation{
			SetUnits{Units: Millimeters},
			SetPositionMode{Mode: Absolute},
			Deactivate{},
			LinearMove{Target: coord.XY(0, 0)},
			SetCurrentPosition{Current: coord.XY(0, 0)},
		}, nil
	case Marlin:
		return nil, fmt.Errorf("%w: preamble for %s", ErrNoProgramTemplate, f)
	}
	return nil, checkFlavor(f)
}

// Footer returns the operations that end every program for f.
func Footer(f Flavor) ([]Operation, error) {
	switch f {
	case GRBL:
		return []Operation{
			Deactivate{},
			LinearMove{Target: coord.XY(0, 0)},
			EndProgram{},
		}, nil
	case Marlin:
		return nil, fmt.Errorf("%w: footer for %s", ErrNoProgramTemplate, f)
	}
	return nil, checkFlavor(f)
}

// Program renders a complete job: preamble, ops, then footer.
//
// It fails as a whole; a partial program is never returned.
func Program(ops []Operation, f Flavor) ([]string, error) {
	pre, err := Preamble(f)
	if err != nil {
		return nil, err
	}
	post, err := Footer(f)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, group := range []struct {
		name string
		ops  []Operation
	}{
		{"preamble", pre},
		{"job", ops},
		{"footer", post},
	} {
		l, err := RenderAll(group.ops, f)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", group.name, err)
		}
		lines = append(lines, l...)
	}
	return lines, nil
}
