package gcode

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mastercactapus/drawbot/coord"
)

// ErrIncompletePosition is returned when a position has no axis set.
var ErrIncompletePosition = errors.New("at least one axis must be provided")

// Word is a single letter/number pair, like `G1` or `X10.5`.
type Word struct {
	W   byte
	Arg float32
}

// formatFloat returns the shortest representation that
// reads back to the same float32.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func (w Word) String() string {
	return string(w.W) + formatFloat(w.Arg)
}

// Block is a set of words rendered on one line.
type Block []Word

func (b Block) String() string {
	parts := make([]string, len(b))
	for i, w := range b {
		parts[i] = w.String()
	}
	return strings.Join(parts, " ")
}

func positionBlock(p coord.Vec3) (Block, error) {
	if p.Empty() {
		return nil, ErrIncompletePosition
	}
	b := make(Block, 0, 3)
	if p.X != nil {
		b = append(b, Word{W: 'X', Arg: *p.X})
	}
	if p.Y != nil {
		b = append(b, Word{W: 'Y', Arg: *p.Y})
	}
	if p.Z != nil {
		b = append(b, Word{W: 'Z', Arg: *p.Z})
	}
	return b, nil
}

// PositionWords renders the position token of p, e.g. `X10 Y2.5`.
//
// It returns ErrIncompletePosition if every axis is absent.
func PositionWords(p coord.Vec3) (string, error) {
	b, err := positionBlock(p)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
