package gcode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFlavor is returned for a flavor name or value that is not supported.
var ErrUnknownFlavor = errors.New("unknown gcode flavor")

// Flavor is a controller dialect.
type Flavor int

const (
	GRBL Flavor = iota + 1
	Marlin
)

func (f Flavor) String() string {
	switch f {
	case GRBL:
		return "GRBL"
	case Marlin:
		return "Marlin"
	}
	return "unknown"
}

// ParseFlavor returns the flavor matching name, ignoring case.
func ParseFlavor(name string) (Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grbl":
		return GRBL, nil
	case "marlin":
		return Marlin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFlavor, name)
}

func (f Flavor) MarshalText() ([]byte, error) {
	if f != GRBL && f != Marlin {
		return nil, ErrUnknownFlavor
	}
	return []byte(f.String()), nil
}

func (f *Flavor) UnmarshalText(data []byte) error {
	val, err := ParseFlavor(string(data))
	if err != nil {
		return err
	}
	*f = val
	return nil
}
