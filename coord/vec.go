package coord

import (
	"errors"
	"math"
)

// ErrAxisMismatch is returned when vector arithmetic pairs a present axis
// with an absent one.
var ErrAxisMismatch = errors.New("axis presence mismatch")

// Vec2D is a point on the bed plane.
type Vec2D struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Add will add the target values to p.
func (p Vec2D) Add(target Vec2D) Vec2D {
	p.X += target.X
	p.Y += target.Y
	return p
}

// Sub will subtract the target values from p.
func (p Vec2D) Sub(target Vec2D) Vec2D {
	p.X -= target.X
	p.Y -= target.Y
	return p
}

// Vec3 returns p with Z left absent.
func (p Vec2D) Vec3() Vec3 {
	return XY(p.X, p.Y)
}

// DistanceTo will return the 2D distance from p to target.
func (p Vec2D) DistanceTo(target Vec2D) float64 {
	return math.Hypot(float64(target.X-p.X), float64(target.Y-p.Y))
}

// Vec3 is a position where any axis may be left unspecified.
// A nil axis is absent, not zero.
type Vec3 struct {
	X, Y, Z *float32
}

// Axis returns a pointer suitable for a Vec3 field.
func Axis(v float32) *float32 { return &v }

// XY returns a Vec3 with X and Y present.
func XY(x, y float32) Vec3 {
	return Vec3{X: Axis(x), Y: Axis(y)}
}

// XYZ returns a Vec3 with all axes present.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{X: Axis(x), Y: Axis(y), Z: Axis(z)}
}

// Empty reports if no axis is present.
func (p Vec3) Empty() bool {
	return p.X == nil && p.Y == nil && p.Z == nil
}

// Equal reports if both vectors have the same axes present with equal values.
func (p Vec3) Equal(b Vec3) bool {
	return axisEqual(p.X, b.X) && axisEqual(p.Y, b.Y) && axisEqual(p.Z, b.Z)
}

func axisEqual(a, b *float32) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func combine(a, b *float32, op func(a, b float32) float32) (*float32, error) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a == nil || b == nil:
		return nil, ErrAxisMismatch
	}
	return Axis(op(*a, *b)), nil
}

func apply(p, target Vec3, op func(a, b float32) float32) (res Vec3, err error) {
	res.X, err = combine(p.X, target.X, op)
	if err != nil {
		return Vec3{}, err
	}
	res.Y, err = combine(p.Y, target.Y, op)
	if err != nil {
		return Vec3{}, err
	}
	res.Z, err = combine(p.Z, target.Z, op)
	if err != nil {
		return Vec3{}, err
	}
	return res, nil
}

// Add will add the target values to p.
//
// Each axis must be present on both sides or absent on both sides,
// otherwise ErrAxisMismatch is returned.
func (p Vec3) Add(target Vec3) (Vec3, error) {
	return apply(p, target, func(a, b float32) float32 { return a + b })
}

// Sub will subtract the target values from p, with the same
// presence rules as Add.
func (p Vec3) Sub(target Vec3) (Vec3, error) {
	return apply(p, target, func(a, b float32) float32 { return a - b })
}
