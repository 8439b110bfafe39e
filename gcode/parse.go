package gcode

import (
	"bytes"
	"io"
)

// Parse returns every line of a G-code program, normalized by Parser.
func Parse(data string) ([]string, error) {
	r := NewParser(bytes.NewBufferString(data))
	var lines []string
	for {
		ln, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

func MustParse(data string) []string {
	lines, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return lines
}
