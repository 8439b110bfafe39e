package gcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mastercactapus/drawbot/coord"
)

// ErrUnsupportedOperation is returned when an operation has no
// rendering for the selected flavor.
var ErrUnsupportedOperation = errors.New("operation not supported by flavor")

const (
	// spindle power used to drive the pen servo
	penDownPower = 254
	penUpPower   = 65

	// dwell after a pen servo change
	penSettleMillis = 300

	// virtual Z travel used by flavors without a pen servo
	penLift = 5
)

func unsupported(op Operation, f Flavor) error {
	return fmt.Errorf("%w: %s on %s", ErrUnsupportedOperation, op.Name(), f)
}

func checkFlavor(f Flavor) error {
	if f != GRBL && f != Marlin {
		return fmt.Errorf("%w: %d", ErrUnknownFlavor, int(f))
	}
	return nil
}

func renderMotion(g float32, feedrate uint32, target coord.Vec3) ([]string, error) {
	pos, err := positionBlock(target)
	if err != nil {
		return nil, err
	}
	line := Word{W: 'G', Arg: g}.String()
	if feedrate > 0 {
		// integer, so it is not rounded through float32
		line += " F" + strconv.FormatUint(uint64(feedrate), 10)
	}
	return []string{line + " " + pos.String()}, nil
}

func renderDwell(ms uint32) string {
	return "G4 P" + strconv.FormatUint(uint64(ms), 10)
}

func renderSpindle(power int) string {
	return "M3 S" + strconv.Itoa(power)
}

// Render returns the command lines for op in the given flavor.
func Render(op Operation, f Flavor) ([]string, error) {
	err := checkFlavor(f)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, errors.New("nil operation")
	}

	switch op := op.(type) {
	case LinearMove:
		return renderMotion(0, op.Feedrate, op.Target)
	case LinearDraw:
		return renderMotion(1, op.Feedrate, op.Target)
	case Pause:
		return []string{renderDwell(op.Milliseconds)}, nil
	case SetUnits:
		if op.Units == Inches {
			return []string{"G20"}, nil
		}
		return []string{"G21"}, nil
	case SetPositionMode:
		if op.Mode == Relative {
			return []string{"G91"}, nil
		}
		return []string{"G90"}, nil
	case SetCurrentPosition:
		pos, err := PositionWords(op.Current)
		if err != nil {
			return nil, err
		}
		return []string{"G92 " + pos}, nil
	case SetXY:
		return []string{"G17"}, nil
	case Activate:
		switch f {
		case GRBL:
			return []string{renderSpindle(penDownPower), renderDwell(penSettleMillis)}, nil
		case Marlin:
			return Render(LinearMove{Target: coord.XYZ(0, 0, -penLift)}, f)
		}
	case Deactivate:
		switch f {
		case GRBL:
			return []string{renderSpindle(penUpPower), renderDwell(penSettleMillis)}, nil
		case Marlin:
			return Render(LinearMove{Target: coord.XYZ(0, 0, penLift)}, f)
		}
	case Home:
		switch f {
		case GRBL:
			// grbl homing cycle always runs every configured axis
			return []string{"$H"}, nil
		case Marlin:
			parts := []string{"G28"}
			if op.X {
				parts = append(parts, "X")
			}
			if op.Y {
				parts = append(parts, "Y")
			}
			if op.Z {
				parts = append(parts, "Z")
			}
			return []string{strings.Join(parts, " ")}, nil
		}
	case StepperControl:
		switch f {
		case GRBL:
			return nil, unsupported(op, f)
		case Marlin:
			return renderSteppers(op), nil
		}
	case EndProgram:
		switch f {
		case GRBL:
			return []string{"M5", "M2"}, nil
		case Marlin:
			return []string{"M5"}, nil
		}
	}

	return nil, unsupported(op, f)
}

func renderSteppers(op StepperControl) []string {
	enable := []string{"M17"}
	disable := []string{"M18"}
	add := func(axis string, s StepperState) {
		if s == StepperDisabled {
			disable = append(disable, axis)
		} else {
			enable = append(enable, axis)
		}
	}
	add("X", op.X)
	add("Y", op.Y)
	add("Z", op.Z)

	var lines []string
	if len(disable) > 1 {
		lines = append(lines, strings.Join(disable, " "))
	}
	if len(enable) > 1 {
		lines = append(lines, strings.Join(enable, " "))
	}
	return lines
}

// RenderAll renders every operation in order. Nothing is returned
// if any operation fails to render.
func RenderAll(ops []Operation, f Flavor) ([]string, error) {
	lines := make([]string, 0, len(ops))
	for i, op := range ops {
		l, err := Render(op, f)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		lines = append(lines, l...)
	}
	return lines, nil
}
