package gcode

import (
	"math"

	"github.com/mastercactapus/drawbot/coord"
)

const mmPerInch = 25.4

// Analysis summarizes the effect of a sequence of operations.
type Analysis struct {
	Operations    int `json:"operations"`
	Activations   int `json:"activations"`
	Deactivations int `json:"deactivations"`

	// Distances are in millimeters of XY travel.
	DrawDistance float64 `json:"draw_distance"`
	MoveDistance float64 `json:"move_distance"`

	// Extents are in machine coordinates.
	Min coord.Vec2D `json:"min"`
	Max coord.Vec2D `json:"max"`

	Final   coord.Vec2D `json:"final"`
	PenDown bool        `json:"pen_down"`
}

// VM will track machine state while interpreting operations.
type VM struct {
	pos coord.Vec2D
	wco coord.Vec2D

	mode   Position
	units  Units
	active bool

	stat Analysis
}

// NewVM constructs a new VM at the origin with the pen up, in
// absolute millimeter mode.
func NewVM() *VM {
	return &VM{}
}

func (vm VM) Inches() bool         { return vm.units == Inches }
func (vm VM) RelativeMotion() bool { return vm.mode == Relative }
func (vm VM) Active() bool         { return vm.active }

func (vm VM) WPos() coord.Vec2D { return vm.pos.Sub(vm.wco) }
func (vm VM) MPos() coord.Vec2D { return vm.pos }
func (vm VM) WCO() coord.Vec2D  { return vm.wco }

// applyAxes sets the present axes of t on p, scaled by mul.
func applyAxes(p coord.Vec2D, t coord.Vec3, mul float32) coord.Vec2D {
	if t.X != nil {
		p.X = *t.X * mul
	}
	if t.Y != nil {
		p.Y = *t.Y * mul
	}
	return p
}

func (vm *VM) moveTo(target coord.Vec3, draw bool) {
	mul := float32(1)
	if vm.Inches() {
		mul = mmPerInch
	}

	next := vm.pos
	if vm.RelativeMotion() {
		next = next.Add(applyAxes(coord.Vec2D{}, target, mul))
	} else {
		next = applyAxes(vm.WPos(), target, mul).Add(vm.wco)
	}

	dist := vm.pos.DistanceTo(next)
	if draw {
		vm.stat.DrawDistance += dist
	} else {
		vm.stat.MoveDistance += dist
	}
	vm.pos = next
	vm.stat.Min.X = float32(math.Min(float64(vm.stat.Min.X), float64(next.X)))
	vm.stat.Min.Y = float32(math.Min(float64(vm.stat.Min.Y), float64(next.Y)))
	vm.stat.Max.X = float32(math.Max(float64(vm.stat.Max.X), float64(next.X)))
	vm.stat.Max.Y = float32(math.Max(float64(vm.stat.Max.Y), float64(next.Y)))
}

// Run applies a single operation.
func (vm *VM) Run(op Operation) {
	vm.stat.Operations++
	switch op := op.(type) {
	case LinearMove:
		vm.moveTo(op.Target, false)
	case LinearDraw:
		vm.moveTo(op.Target, true)
	case SetPositionMode:
		vm.mode = op.Mode
	case SetUnits:
		vm.units = op.Units
	case SetCurrentPosition:
		// the current machine position becomes the given work position
		work := applyAxes(vm.WPos(), op.Current, 1)
		vm.wco = vm.pos.Sub(work)
	case Activate:
		vm.active = true
		vm.stat.Activations++
	case Deactivate:
		vm.active = false
		vm.stat.Deactivations++
	case Home:
		all := !op.X && !op.Y && !op.Z
		if all || op.X {
			vm.pos.X = 0
		}
		if all || op.Y {
			vm.pos.Y = 0
		}
	}
}

// Analysis returns the summary of every operation run so far.
func (vm VM) Analysis() Analysis {
	a := vm.stat
	a.Final = vm.pos
	a.PenDown = vm.active
	return a
}

// Simulate runs ops on a fresh VM and returns the result.
func Simulate(ops []Operation) Analysis {
	vm := NewVM()
	for _, op := range ops {
		vm.Run(op)
	}
	return vm.Analysis()
}
