package gcode

import "github.com/mastercactapus/drawbot/coord"

// Operation is a single flavor-independent machine instruction.
//
// The set of operations is closed; every implementation lives in this file.
type Operation interface {
	Name() string
	isOperation()
}

// Position selects how coordinates are interpreted.
type Position int

const (
	Absolute Position = iota
	Relative
)

func (p Position) String() string {
	if p == Relative {
		return "relative"
	}
	return "absolute"
}

// Units selects the length unit of coordinates.
type Units int

const (
	Millimeters Units = iota
	Inches
)

// StepperState is the requested state of a single stepper driver.
type StepperState int

const (
	StepperEnabled StepperState = iota
	StepperDisabled
)

// LinearMove is a rapid (pen-up) move. A zero Feedrate is omitted.
type LinearMove struct {
	Target   coord.Vec3
	Feedrate uint32
}

// LinearDraw is a controlled-feed (pen-down) move. A zero Feedrate is omitted.
type LinearDraw struct {
	Target   coord.Vec3
	Feedrate uint32
}

type Pause struct {
	Milliseconds uint32
}

type SetPositionMode struct {
	Mode Position
}

type SetCurrentPosition struct {
	Current coord.Vec3
}

type SetUnits struct {
	Units Units
}

// Activate lowers the pen.
type Activate struct{}

// Deactivate lifts the pen.
type Deactivate struct{}

type Home struct {
	X, Y, Z bool
}

type StepperControl struct {
	X, Y, Z StepperState
}

type EndProgram struct{}

// SetXY selects the XY plane. It has no effect on a 2.5-axis machine.
type SetXY struct{}

func (LinearMove) Name() string         { return "LinearMove" }
func (LinearDraw) Name() string         { return "LinearDraw" }
func (Pause) Name() string              { return "Pause" }
func (SetPositionMode) Name() string    { return "SetPositionMode" }
func (SetCurrentPosition) Name() string { return "SetCurrentPosition" }
func (SetUnits) Name() string           { return "SetUnits" }
func (Activate) Name() string           { return "Activate" }
func (Deactivate) Name() string         { return "Deactivate" }
func (Home) Name() string               { return "Home" }
func (StepperControl) Name() string     { return "StepperControl" }
func (EndProgram) Name() string         { return "EndProgram" }
func (SetXY) Name() string              { return "SetXY" }

func (LinearMove) isOperation()         {}
func (LinearDraw) isOperation()         {}
func (Pause) isOperation()              {}
func (SetPositionMode) isOperation()    {}
func (SetCurrentPosition) isOperation() {}
func (SetUnits) isOperation()           {}
func (Activate) isOperation()           {}
func (Deactivate) isOperation()         {}
func (Home) isOperation()               {}
func (StepperControl) isOperation()     {}
func (EndProgram) isOperation()         {}
func (SetXY) isOperation()              {}
